// Package conversion turns outstanding SAFEs and convertible notes into
// preferred equity when a priced round closes.
//
// All instruments in one call are priced against the pre-round share count,
// so the order of the instrument list never changes the outcome.
package conversion

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
	"equitylens/internal/uuid"
)

// PriceSource records which term set the conversion price.
type PriceSource string

const (
	PriceSourceCap      PriceSource = "cap"
	PriceSourceDiscount PriceSource = "discount"
)

// Detail describes how a single instrument converted.
type Detail struct {
	InstrumentID     string                `json:"instrument_id"`
	InstrumentType   models.InstrumentType `json:"instrument_type"`
	InvestorName     string                `json:"investor_name"`
	StakeholderID    string                `json:"stakeholder_id"`
	Principal        decimal.Decimal       `json:"principal"`
	AccruedInterest  decimal.Decimal       `json:"accrued_interest"`
	ConversionAmount decimal.Decimal       `json:"conversion_amount"`
	CapPrice         *decimal.Decimal      `json:"cap_price,omitempty"`
	DiscountPrice    *decimal.Decimal      `json:"discount_price,omitempty"`
	ConversionPrice  decimal.Decimal       `json:"conversion_price"`
	PriceSource      PriceSource           `json:"price_source"`
	SharesIssued     int64                 `json:"shares_issued"`
	// RoundingResidual is the part of ConversionAmount not covered by whole shares.
	RoundingResidual decimal.Decimal `json:"rounding_residual"`
	PastMaturity     bool            `json:"past_maturity,omitempty"`
}

// Summary aggregates a conversion batch.
type Summary struct {
	InstrumentsConverted  int             `json:"instruments_converted"`
	InstrumentsSkipped    int             `json:"instruments_skipped"`
	TotalConversionAmount decimal.Decimal `json:"total_conversion_amount"`
	TotalSharesIssued     int64           `json:"total_shares_issued"`
	PreRoundShares        int64           `json:"pre_round_shares"`
	PostRoundShares       int64           `json:"post_round_shares"`
	DilutionPct           float64         `json:"dilution_pct"`
	TotalRoundingResidual decimal.Decimal `json:"total_rounding_residual"`
}

// Result is everything Convert produces. Instruments holds copies of the
// input instruments with converted ones flipped to InstrumentStatusConverted.
type Result struct {
	CapTable    models.CapTable     `json:"cap_table"`
	Details     []Detail            `json:"details"`
	Summary     Summary             `json:"summary"`
	Instruments []models.Instrument `json:"-"`
}

// StakeholderID is the id minted for the stakeholder an instrument converts into.
func StakeholderID(instrumentID string) string {
	return uuid.Derive("instrument:" + instrumentID)
}

// Convert prices every outstanding instrument against the round and issues
// the resulting preferred shares. Inputs are never modified.
func Convert(table models.CapTable, instruments []models.Instrument, round models.PricedRound) (*Result, error) {
	if err := validate(table, instruments, round); err != nil {
		return nil, err
	}

	preRound := table.TotalShares
	updated := table.Clone()
	result := &Result{
		Details:     make([]Detail, 0, len(instruments)),
		Instruments: make([]models.Instrument, 0, len(instruments)),
	}
	summary := Summary{
		TotalConversionAmount: decimal.Zero,
		TotalRoundingResidual: decimal.Zero,
		PreRoundShares:        preRound,
	}

	for _, inst := range instruments {
		if inst.Terms().Status != models.InstrumentStatusOutstanding {
			summary.InstrumentsSkipped++
			result.Instruments = append(result.Instruments, inst)
			continue
		}

		detail := convertOne(inst, preRound, round)
		result.Details = append(result.Details, detail)
		result.Instruments = append(result.Instruments, inst.WithStatus(models.InstrumentStatusConverted))

		updated.Stakeholders = append(updated.Stakeholders, models.Stakeholder{
			ID:         detail.StakeholderID,
			Name:       detail.InvestorName,
			Role:       models.RoleInvestor,
			Shares:     detail.SharesIssued,
			ShareClass: models.ShareClassPreferred,
		})

		summary.InstrumentsConverted++
		summary.TotalSharesIssued += detail.SharesIssued
		summary.TotalConversionAmount = summary.TotalConversionAmount.Add(detail.ConversionAmount)
		summary.TotalRoundingResidual = summary.TotalRoundingResidual.Add(detail.RoundingResidual)
	}

	updated.TotalShares = preRound + summary.TotalSharesIssued
	updated.Recompute()

	summary.PostRoundShares = updated.TotalShares
	summary.DilutionPct = models.Percent(summary.TotalSharesIssued, updated.TotalShares)

	result.CapTable = updated
	result.Summary = summary
	return result, nil
}

func validate(table models.CapTable, instruments []models.Instrument, round models.PricedRound) error {
	if !round.PricePerShare.IsPositive() {
		return apperrors.ErrInvalidRoundPrice
	}
	if table.TotalShares <= 0 {
		return apperrors.ErrInvalidShareCount
	}
	if err := table.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(instruments))
	for _, inst := range instruments {
		if inst == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInstrument, "instrument is nil")
		}
		if err := inst.Validate(); err != nil {
			return err
		}
		id := inst.Terms().ID
		if _, dup := seen[id]; dup {
			return apperrors.WithMessage(apperrors.ErrInvalidInstrument, fmt.Sprintf("duplicate instrument id %q", id))
		}
		seen[id] = struct{}{}
		if _, clash := table.Lookup(StakeholderID(id)); clash {
			return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
				fmt.Sprintf("instrument %q has already been converted into this cap table", id))
		}
	}
	return nil
}

func convertOne(inst models.Instrument, preRound int64, round models.PricedRound) Detail {
	terms := inst.Terms()
	asOf := round.EffectiveDate
	amount := inst.ConversionAmount(asOf)
	interest := inst.AccruedInterest(asOf)

	detail := Detail{
		InstrumentID:     terms.ID,
		InstrumentType:   inst.Kind(),
		InvestorName:     terms.InvestorName,
		StakeholderID:    StakeholderID(terms.ID),
		Principal:        amount.Sub(interest),
		AccruedInterest:  interest,
		ConversionAmount: amount,
	}

	switch v := inst.(type) {
	case models.ConvertibleNote:
		detail.PastMaturity = v.MaturityMonths > 0 && asOf.After(v.MaturityDate())
	case *models.ConvertibleNote:
		detail.PastMaturity = v.MaturityMonths > 0 && asOf.After(v.MaturityDate())
	}

	quote := Price(terms, preRound, round.PricePerShare)
	detail.CapPrice = quote.CapPrice
	detail.DiscountPrice = quote.DiscountPrice
	detail.ConversionPrice = quote.Price
	detail.PriceSource = quote.Source

	shares := quote.SharesFor(amount)
	detail.SharesIssued = shares.IntPart()
	detail.RoundingResidual = amount.Sub(quote.Cost(shares))
	if detail.RoundingResidual.IsNegative() {
		detail.RoundingResidual = decimal.Zero
	}
	return detail
}
