package services

import (
	"context"

	"github.com/shopspring/decimal"

	"equitylens/internal/conversion"
	"equitylens/internal/models"
	"equitylens/internal/scenario"
	"equitylens/internal/waterfall"
)

// ConversionServicer defines the contract for converting SAFEs and notes at a priced round.
type ConversionServicer interface {
	Convert(ctx context.Context, table models.CapTable, instruments []models.Instrument, round models.PricedRound) (*conversion.Result, error)
}

// CurvePoint is the distribution at one exit valuation.
type CurvePoint struct {
	ExitValuation decimal.Decimal         `json:"exit_valuation"`
	Distribution  *waterfall.Distribution `json:"distribution"`
}

// PayoutCurve is a waterfall evaluated across ascending exit valuations.
// Breakeven maps a stakeholder name to the lowest evaluated valuation at
// which that stakeholder is paid anything; stakeholders never paid are absent.
type PayoutCurve struct {
	Points    []CurvePoint               `json:"points"`
	Breakeven map[string]decimal.Decimal `json:"breakeven"`
}

// WaterfallServicer defines the contract for exit distributions.
type WaterfallServicer interface {
	Distribute(ctx context.Context, table models.CapTable, tiers []models.PreferenceTier, exitValuation decimal.Decimal) (*waterfall.Distribution, error)
	PayoutCurve(ctx context.Context, table models.CapTable, tiers []models.PreferenceTier, valuations []decimal.Decimal) (*PayoutCurve, error)
}

// ScenarioEvaluation is a financing event (optional) followed by an exit curve.
type ScenarioEvaluation struct {
	Name        string                    `json:"name,omitempty"`
	Conversion  *conversion.Result        `json:"conversion,omitempty"`
	Instruments []scenario.InstrumentSpec `json:"instruments,omitempty"`
	CapTable    models.CapTable           `json:"cap_table"`
	Curve       *PayoutCurve              `json:"curve,omitempty"`
}

// ScenarioServicer defines the contract for evaluating whole scenarios.
type ScenarioServicer interface {
	Evaluate(ctx context.Context, s *scenario.Scenario) (*ScenarioEvaluation, error)
}
