package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/scenario"
	"equitylens/internal/services"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert the scenario's instruments at its priced round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.load()
			if err != nil {
				return err
			}
			if sc.Round == nil {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario has no round to convert at")
			}
			instruments, err := sc.TypedInstruments()
			if err != nil {
				return err
			}

			result, err := a.conversions.Convert(cmd.Context(), sc.CapTable, instruments, *sc.Round)
			if err != nil {
				return err
			}

			out := conversionOutput{
				CapTable:    result.CapTable,
				Details:     result.Details,
				Summary:     result.Summary,
				Instruments: scenario.SpecsFrom(result.Instruments),
			}
			return a.render(cmd, out, func(w *tableWriter) { w.conversion(out) })
		},
	}
}

func newWaterfallCmd(a *app) *cobra.Command {
	var valuation string

	cmd := &cobra.Command{
		Use:   "waterfall",
		Short: "Distribute one exit valuation through the preference stack",
		Long:  "Distribute one exit valuation. When the scenario has a round, its instruments are converted first and the exit runs on the post-round cap table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exit, err := decimal.NewFromString(valuation)
			if err != nil {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "--valuation must be a number")
			}
			sc, err := a.load()
			if err != nil {
				return err
			}

			eval, err := a.postRound(cmd, sc)
			if err != nil {
				return err
			}
			d, err := a.waterfalls.Distribute(cmd.Context(), eval.CapTable, sc.Tiers, exit)
			if err != nil {
				return err
			}
			return a.render(cmd, d, func(w *tableWriter) { w.distribution(d) })
		},
	}
	cmd.Flags().StringVar(&valuation, "valuation", "", "exit valuation to distribute")
	_ = cmd.MarkFlagRequired("valuation")
	return cmd
}

func newCurveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Build a payout curve across the scenario's exit valuations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.load()
			if err != nil {
				return err
			}
			if len(sc.Valuations) == 0 {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario has no exit_valuations")
			}

			eval, err := a.scenarios.Evaluate(cmd.Context(), sc)
			if err != nil {
				return err
			}
			return a.render(cmd, eval.Curve, func(w *tableWriter) { w.curve(eval.Curve) })
		},
	}
}

func newEvaluateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Convert at the round (if any), then build the payout curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.load()
			if err != nil {
				return err
			}
			eval, err := a.scenarios.Evaluate(cmd.Context(), sc)
			if err != nil {
				return err
			}
			return a.render(cmd, eval, func(w *tableWriter) { w.evaluation(eval) })
		},
	}
}

// postRound evaluates only the financing part of a scenario.
func (a *app) postRound(cmd *cobra.Command, sc *scenario.Scenario) (*services.ScenarioEvaluation, error) {
	financing := *sc
	financing.Valuations = nil
	return a.scenarios.Evaluate(cmd.Context(), &financing)
}
