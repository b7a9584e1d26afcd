// Command equitycalc evaluates a YAML scenario file from the command line:
// convert instruments at the scenario's round, distribute a single exit, or
// build a payout curve across the scenario's exit valuations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/logger"
	"equitylens/internal/metrics"
	"equitylens/internal/scenario"
	"equitylens/internal/services"
)

const (
	outputJSON = "json"
	outputText = "text"
)

// options are the flags shared by every subcommand.
type options struct {
	file      string
	output    string
	workers   int
	maxPoints int
	verbose   bool
}

// app holds what a subcommand needs after flags are parsed.
type app struct {
	opts        *options
	conversions services.ConversionServicer
	waterfalls  services.WaterfallServicer
	scenarios   services.ScenarioServicer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "equitycalc",
		Short:         "Model SAFE and note conversions and exit waterfalls",
		Long:          "equitycalc reads a scenario file (cap table, convertible instruments, priced round, preference tiers, and exit valuations) and prints conversion and waterfall results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env := "production"
			if !opts.verbose {
				env = "test"
			}
			logger.Init(env)

			if opts.output != outputJSON && opts.output != outputText {
				return apperrors.WithMessage(apperrors.ErrInvalidInput,
					fmt.Sprintf("unknown output format %q (want %s or %s)", opts.output, outputJSON, outputText))
			}

			// The CLI runs once and exits, so nothing scrapes metrics.
			var m *metrics.Metrics
			a.conversions = services.NewConversionService(m)
			a.waterfalls = services.NewWaterfallService(m, opts.workers, opts.maxPoints)
			a.scenarios = services.NewScenarioService(a.conversions, a.waterfalls)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "scenario YAML file")
	flags.StringVarP(&opts.output, "output", "o", outputText, "output format: json or text")
	flags.IntVar(&opts.workers, "workers", 4, "concurrent waterfall runs when building a curve")
	flags.IntVar(&opts.maxPoints, "max-points", 200, "maximum exit valuations per curve")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log engine activity to stderr")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newConvertCmd(a),
		newWaterfallCmd(a),
		newCurveCmd(a),
		newEvaluateCmd(a),
	)
	return root
}

// load reads and normalizes the scenario named by --file.
func (a *app) load() (*scenario.Scenario, error) {
	return scenario.Load(a.opts.file)
}

// describe formats an error for the terminal, prefixing application errors
// with their code.
func describe(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return fmt.Sprintf("error: %s: %s", appErr.Code, appErr.Message)
	}
	return fmt.Sprintf("error: %v", err)
}
