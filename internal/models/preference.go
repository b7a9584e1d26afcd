package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
)

// PreferenceTier is one series of preferred stock with its liquidation terms.
// Tiers with the same Seniority rank pari passu; rank 1 is paid first.
type PreferenceTier struct {
	ID                  string           `json:"id" yaml:"id" binding:"required"`
	Name                string           `json:"name" yaml:"name"`
	Seniority           int              `json:"seniority" yaml:"seniority" binding:"gte=1"`
	Investment          decimal.Decimal  `json:"investment" yaml:"investment" binding:"gt=0"`
	LiquidationMultiple decimal.Decimal  `json:"liquidation_multiple" yaml:"liquidation_multiple"`
	Participating       bool             `json:"participating" yaml:"participating"`
	ParticipationCap    *decimal.Decimal `json:"participation_cap,omitempty" yaml:"participation_cap,omitempty"`
	StakeholderIDs      []string         `json:"stakeholder_ids" yaml:"stakeholder_ids"`
}

// Preference is the amount owed before junior classes see anything.
func (p PreferenceTier) Preference() decimal.Decimal {
	return p.Investment.Mul(p.LiquidationMultiple)
}

// CapAmount is the ceiling on total proceeds for a capped participating tier.
// ok is false when the tier is uncapped.
func (p PreferenceTier) CapAmount() (amount decimal.Decimal, ok bool) {
	if !p.Participating || p.ParticipationCap == nil {
		return decimal.Zero, false
	}
	return p.Investment.Mul(*p.ParticipationCap), true
}

// Validate checks the tier's own terms. Membership against a cap table is
// checked by ValidateTiers.
func (p PreferenceTier) Validate() error {
	if p.ID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier, "tier id is required")
	}
	if p.Seniority < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
			fmt.Sprintf("tier %q seniority must be at least 1", p.ID))
	}
	if !p.Investment.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
			fmt.Sprintf("tier %q investment must be positive", p.ID))
	}
	if p.LiquidationMultiple.LessThan(decimal.NewFromInt(1)) {
		return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
			fmt.Sprintf("tier %q liquidation multiple must be at least 1", p.ID))
	}
	if p.ParticipationCap != nil {
		if !p.Participating {
			return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
				fmt.Sprintf("tier %q has a participation cap but does not participate", p.ID))
		}
		if p.ParticipationCap.LessThan(decimal.NewFromInt(1)) {
			return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
				fmt.Sprintf("tier %q participation cap must be at least 1", p.ID))
		}
		// The preference alone must fit under the cap.
		if p.ParticipationCap.LessThan(p.LiquidationMultiple) {
			return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
				fmt.Sprintf("tier %q participation cap is below its liquidation multiple", p.ID))
		}
	}
	if len(p.StakeholderIDs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
			fmt.Sprintf("tier %q has no stakeholders", p.ID))
	}
	return nil
}

// ValidateTiers checks every tier against the cap table: terms are valid,
// tier ids are unique, every member exists, and no stakeholder sits in two tiers.
func ValidateTiers(table CapTable, tiers []PreferenceTier) error {
	tierIDs := make(map[string]struct{}, len(tiers))
	owner := make(map[string]string)
	for _, tier := range tiers {
		if err := tier.Validate(); err != nil {
			return err
		}
		if _, dup := tierIDs[tier.ID]; dup {
			return apperrors.WithMessage(apperrors.ErrInvalidPreferenceTier,
				fmt.Sprintf("duplicate tier id %q", tier.ID))
		}
		tierIDs[tier.ID] = struct{}{}

		for _, id := range tier.StakeholderIDs {
			if _, ok := table.Lookup(id); !ok {
				return apperrors.WithMessage(apperrors.ErrUnknownStakeholder,
					fmt.Sprintf("tier %q references unknown stakeholder %q", tier.ID, id))
			}
			if prev, taken := owner[id]; taken {
				return apperrors.WithMessage(apperrors.ErrDuplicateTierMember,
					fmt.Sprintf("stakeholder %q is in tiers %q and %q", id, prev, tier.ID))
			}
			owner[id] = tier.ID
		}
	}
	return nil
}
