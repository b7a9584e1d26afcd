package models

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
)

// InstrumentType discriminates the convertible instrument variants.
type InstrumentType string

const (
	InstrumentTypeSAFE            InstrumentType = "safe"
	InstrumentTypeConvertibleNote InstrumentType = "convertible_note"
)

// InstrumentStatus tracks the lifecycle of a convertible instrument.
type InstrumentStatus string

const (
	InstrumentStatusOutstanding InstrumentStatus = "outstanding"
	InstrumentStatusConverted   InstrumentStatus = "converted"
	InstrumentStatusCancelled   InstrumentStatus = "cancelled"
)

// InterestType selects how a convertible note accrues interest.
type InterestType string

const (
	InterestSimple   InterestType = "simple"
	InterestCompound InterestType = "compound"
)

// daysPerMonth is the average Gregorian month length. Measuring elapsed time
// in these units keeps accrual stable near month boundaries.
const daysPerMonth = 365.25 / 12

var hundred = decimal.NewFromInt(100)

// InstrumentTerms holds the fields every convertible instrument shares.
type InstrumentTerms struct {
	ID           string           `json:"id"`
	InvestorName string           `json:"investor_name"`
	Status       InstrumentStatus `json:"status"`
	ValuationCap *decimal.Decimal `json:"valuation_cap,omitempty"`
	DiscountPct  *decimal.Decimal `json:"discount_pct,omitempty"`
}

// Instrument is a convertible security awaiting a priced round.
type Instrument interface {
	Terms() InstrumentTerms
	Kind() InstrumentType
	// ConversionAmount is the dollar amount that converts into equity as of the given date.
	ConversionAmount(asOf time.Time) decimal.Decimal
	// AccruedInterest is the interest component of ConversionAmount; zero for SAFEs.
	AccruedInterest(asOf time.Time) decimal.Decimal
	Validate() error
	// WithStatus returns a copy of the instrument carrying the new status.
	WithStatus(status InstrumentStatus) Instrument
}

func (t InstrumentTerms) validate() error {
	if t.ID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument, "instrument id is required")
	}
	switch t.Status {
	case InstrumentStatusOutstanding, InstrumentStatusConverted, InstrumentStatusCancelled:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("instrument %q has unknown status %q", t.ID, t.Status))
	}
	if t.ValuationCap == nil && t.DiscountPct == nil {
		return apperrors.WithMessage(apperrors.ErrMissingPricingTerms,
			fmt.Sprintf("instrument %q has neither a valuation cap nor a discount", t.ID))
	}
	if t.ValuationCap != nil && !t.ValuationCap.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("instrument %q valuation cap must be positive", t.ID))
	}
	// A 100% discount would price the round at zero.
	if t.DiscountPct != nil && (t.DiscountPct.IsNegative() || t.DiscountPct.GreaterThanOrEqual(hundred)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("instrument %q discount must be in [0, 100)", t.ID))
	}
	return nil
}

// SAFE is a simple agreement for future equity. It accrues no interest.
type SAFE struct {
	InstrumentTerms
	Investment decimal.Decimal `json:"investment"`
}

func (s SAFE) Terms() InstrumentTerms { return s.InstrumentTerms }
func (s SAFE) Kind() InstrumentType   { return InstrumentTypeSAFE }

func (s SAFE) ConversionAmount(time.Time) decimal.Decimal { return s.Investment }
func (s SAFE) AccruedInterest(time.Time) decimal.Decimal  { return decimal.Zero }

func (s SAFE) Validate() error {
	if err := s.InstrumentTerms.validate(); err != nil {
		return err
	}
	if !s.Investment.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("SAFE %q investment must be positive", s.ID))
	}
	return nil
}

func (s SAFE) WithStatus(status InstrumentStatus) Instrument {
	s.Status = status
	return s
}

// ConvertibleNote is debt that converts into equity together with its accrued interest.
type ConvertibleNote struct {
	InstrumentTerms
	Principal       decimal.Decimal `json:"principal"`
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	InterestType    InterestType    `json:"interest_type"`
	IssueDate       time.Time       `json:"issue_date"`
	MaturityMonths  int             `json:"maturity_months"`
}

func (n ConvertibleNote) Terms() InstrumentTerms { return n.InstrumentTerms }
func (n ConvertibleNote) Kind() InstrumentType   { return InstrumentTypeConvertibleNote }

func (n ConvertibleNote) ConversionAmount(asOf time.Time) decimal.Decimal {
	return n.Principal.Add(n.AccruedInterest(asOf))
}

// AccruedInterest applies simple or compound interest over the months between
// IssueDate and asOf. A non-positive elapsed period accrues nothing.
func (n ConvertibleNote) AccruedInterest(asOf time.Time) decimal.Decimal {
	months := ElapsedMonths(n.IssueDate, asOf)
	if months <= 0 {
		return decimal.Zero
	}
	rate := n.InterestRatePct.Div(hundred)
	years := decimal.NewFromFloat(months / 12)

	if n.InterestType == InterestCompound {
		r, _ := rate.Float64()
		growth := math.Pow(1+r, months/12) - 1
		return n.Principal.Mul(decimal.NewFromFloat(growth))
	}
	return n.Principal.Mul(rate).Mul(years)
}

// MaturityDate is IssueDate plus MaturityMonths calendar months.
func (n ConvertibleNote) MaturityDate() time.Time {
	return n.IssueDate.AddDate(0, n.MaturityMonths, 0)
}

func (n ConvertibleNote) Validate() error {
	if err := n.InstrumentTerms.validate(); err != nil {
		return err
	}
	if !n.Principal.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("note %q principal must be positive", n.ID))
	}
	if n.InterestRatePct.IsNegative() || n.InterestRatePct.GreaterThan(hundred) {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("note %q interest rate must be in [0, 100]", n.ID))
	}
	if n.InterestType != InterestSimple && n.InterestType != InterestCompound {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("note %q has unknown interest type %q", n.ID, n.InterestType))
	}
	if n.IssueDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("note %q issue date is required", n.ID))
	}
	if n.MaturityMonths < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("note %q maturity cannot be negative", n.ID))
	}
	return nil
}

func (n ConvertibleNote) WithStatus(status InstrumentStatus) Instrument {
	n.Status = status
	return n
}

// ElapsedMonths measures whole days between start and end in average-length
// months. It is negative when end precedes start.
func ElapsedMonths(start, end time.Time) float64 {
	days := math.Floor(end.Sub(start).Hours() / 24)
	return days / daysPerMonth
}

// PricedRound is the financing event that triggers conversion.
type PricedRound struct {
	Name               string          `json:"name" yaml:"name"`
	PricePerShare      decimal.Decimal `json:"price_per_share" yaml:"price_per_share"`
	EffectiveDate      time.Time       `json:"effective_date" yaml:"effective_date"`
	PreMoneyValuation  decimal.Decimal `json:"pre_money_valuation" yaml:"pre_money_valuation"`
	PostMoneyValuation decimal.Decimal `json:"post_money_valuation" yaml:"post_money_valuation"`
}
