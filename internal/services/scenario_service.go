package services

import (
	"context"

	"equitylens/internal/logger"
	"equitylens/internal/scenario"
)

// scenarioService chains a financing event and an exit curve.
type scenarioService struct {
	conversions ConversionServicer
	waterfalls  WaterfallServicer
}

// NewScenarioService creates a new ScenarioServicer.
func NewScenarioService(conversions ConversionServicer, waterfalls WaterfallServicer) ScenarioServicer {
	return &scenarioService{conversions: conversions, waterfalls: waterfalls}
}

// Evaluate converts the scenario's instruments when it has a round, then runs
// the payout curve on the resulting table when it has exit valuations.
func (s *scenarioService) Evaluate(ctx context.Context, sc *scenario.Scenario) (*ScenarioEvaluation, error) {
	eval := &ScenarioEvaluation{Name: sc.Name, CapTable: sc.CapTable}

	if sc.Round != nil {
		instruments, err := sc.TypedInstruments()
		if err != nil {
			return nil, err
		}
		result, err := s.conversions.Convert(ctx, sc.CapTable, instruments, *sc.Round)
		if err != nil {
			return nil, err
		}
		eval.Conversion = result
		eval.Instruments = scenario.SpecsFrom(result.Instruments)
		eval.CapTable = result.CapTable
	}

	if len(sc.Valuations) > 0 {
		curve, err := s.waterfalls.PayoutCurve(ctx, eval.CapTable, sc.Tiers, sc.Valuations)
		if err != nil {
			return nil, err
		}
		eval.Curve = curve
	}

	logger.Get().Infow("scenario evaluated",
		"name", sc.Name,
		"converted", eval.Conversion != nil,
		"valuations", len(sc.Valuations),
	)
	return eval, nil
}
