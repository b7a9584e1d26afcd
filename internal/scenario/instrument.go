package scenario

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
)

// InstrumentSpec is the flat, type-tagged wire form of a convertible
// instrument. SAFE-only and note-only fields are ignored for the other type.
type InstrumentSpec struct {
	Type         models.InstrumentType   `json:"type" yaml:"type" binding:"required,instrument_type"`
	ID           string                  `json:"id" yaml:"id" binding:"required"`
	InvestorName string                  `json:"investor_name" yaml:"investor_name" binding:"required"`
	Status       models.InstrumentStatus `json:"status,omitempty" yaml:"status,omitempty" binding:"omitempty,instrument_status"`
	ValuationCap *decimal.Decimal        `json:"valuation_cap,omitempty" yaml:"valuation_cap,omitempty"`
	DiscountPct  *decimal.Decimal        `json:"discount_pct,omitempty" yaml:"discount_pct,omitempty"`

	// SAFE
	Investment *decimal.Decimal `json:"investment,omitempty" yaml:"investment,omitempty"`

	// convertible note
	Principal       *decimal.Decimal    `json:"principal,omitempty" yaml:"principal,omitempty"`
	InterestRatePct *decimal.Decimal    `json:"interest_rate_pct,omitempty" yaml:"interest_rate_pct,omitempty"`
	InterestType    models.InterestType `json:"interest_type,omitempty" yaml:"interest_type,omitempty" binding:"omitempty,interest_type"`
	IssueDate       *time.Time          `json:"issue_date,omitempty" yaml:"issue_date,omitempty"`
	MaturityMonths  int                 `json:"maturity_months,omitempty" yaml:"maturity_months,omitempty"`
}

// Instrument builds the typed instrument. Status defaults to outstanding.
// Term validation is left to the conversion engine.
func (s InstrumentSpec) Instrument() (models.Instrument, error) {
	terms := models.InstrumentTerms{
		ID:           s.ID,
		InvestorName: s.InvestorName,
		Status:       s.Status,
		ValuationCap: s.ValuationCap,
		DiscountPct:  s.DiscountPct,
	}
	if terms.Status == "" {
		terms.Status = models.InstrumentStatusOutstanding
	}

	switch s.Type {
	case models.InstrumentTypeSAFE:
		return models.SAFE{InstrumentTerms: terms, Investment: deref(s.Investment)}, nil
	case models.InstrumentTypeConvertibleNote:
		note := models.ConvertibleNote{
			InstrumentTerms: terms,
			Principal:       deref(s.Principal),
			InterestRatePct: deref(s.InterestRatePct),
			InterestType:    s.InterestType,
			MaturityMonths:  s.MaturityMonths,
		}
		if note.InterestType == "" {
			note.InterestType = models.InterestSimple
		}
		if s.IssueDate != nil {
			note.IssueDate = *s.IssueDate
		}
		return note, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInstrument,
			fmt.Sprintf("instrument %q has unknown type %q", s.ID, s.Type))
	}
}

// Instruments converts a list of specs, stopping at the first bad entry.
func Instruments(specs []InstrumentSpec) ([]models.Instrument, error) {
	out := make([]models.Instrument, 0, len(specs))
	for _, spec := range specs {
		inst, err := spec.Instrument()
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// SpecFrom flattens a typed instrument back into its wire form.
func SpecFrom(inst models.Instrument) InstrumentSpec {
	terms := inst.Terms()
	spec := InstrumentSpec{
		Type:         inst.Kind(),
		ID:           terms.ID,
		InvestorName: terms.InvestorName,
		Status:       terms.Status,
		ValuationCap: terms.ValuationCap,
		DiscountPct:  terms.DiscountPct,
	}

	switch v := inst.(type) {
	case models.SAFE:
		spec.Investment = &v.Investment
	case *models.SAFE:
		spec.Investment = &v.Investment
	case models.ConvertibleNote:
		fillNote(&spec, v)
	case *models.ConvertibleNote:
		fillNote(&spec, *v)
	}
	return spec
}

// SpecsFrom flattens a list of instruments.
func SpecsFrom(instruments []models.Instrument) []InstrumentSpec {
	out := make([]InstrumentSpec, 0, len(instruments))
	for _, inst := range instruments {
		out = append(out, SpecFrom(inst))
	}
	return out
}

func fillNote(spec *InstrumentSpec, n models.ConvertibleNote) {
	spec.Principal = &n.Principal
	spec.InterestRatePct = &n.InterestRatePct
	spec.InterestType = n.InterestType
	spec.IssueDate = &n.IssueDate
	spec.MaturityMonths = n.MaturityMonths
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
