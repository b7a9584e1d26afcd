package models

import "github.com/shopspring/decimal"

// WaterfallStage names the phase of a distribution run that produced a step.
type WaterfallStage string

const (
	StagePreference    WaterfallStage = "preference"
	StageConversion    WaterfallStage = "conversion"
	StageParticipation WaterfallStage = "participation"
)

// WaterfallStep is an append-only audit record of one allocation.
type WaterfallStep struct {
	Stage          WaterfallStage  `json:"stage"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Recipients     []string        `json:"recipients"`
	RemainingAfter decimal.Decimal `json:"remaining_after"`
}

// StakeholderPayout is one stakeholder's share of a single exit.
type StakeholderPayout struct {
	StakeholderID string           `json:"stakeholder_id"`
	Name          string           `json:"name"`
	ShareClass    ShareClass       `json:"share_class"`
	TierID        string           `json:"tier_id,omitempty"`
	Payout        decimal.Decimal  `json:"payout"`
	PayoutPct     float64          `json:"payout_pct"`
	Investment    *decimal.Decimal `json:"investment,omitempty"`
	ROI           *float64         `json:"roi,omitempty"`
	Converted     bool             `json:"converted"`
}
