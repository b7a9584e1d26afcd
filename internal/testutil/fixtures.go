// Package testutil provides cap table fixtures and assertions shared by the
// engine, service, and handler tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"equitylens/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec returning a pointer, for optional terms.
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// Date builds a UTC midnight timestamp.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewStakeholder creates a stakeholder with a unique id.
func NewStakeholder(name string, role models.StakeholderRole, class models.ShareClass, shares int64) models.Stakeholder {
	return models.Stakeholder{
		ID:         fmt.Sprintf("sh-%d", nextID()),
		Name:       name,
		Role:       role,
		Shares:     shares,
		ShareClass: class,
	}
}

// NewCapTable builds a table whose total equals the issued shares, with
// ownership already recomputed.
func NewCapTable(stakeholders ...models.Stakeholder) models.CapTable {
	table := models.CapTable{Stakeholders: stakeholders}
	table.TotalShares = table.IssuedShares()
	table.Recompute()
	return table
}

// FounderInvestorTable is the two-line table used throughout the docs:
// a founder with 7,000,000 common shares and an investor with 3,000,000
// preferred shares. The investor's id is "investor".
func FounderInvestorTable() models.CapTable {
	return NewCapTable(
		models.Stakeholder{ID: "founder", Name: "Founder", Role: models.RoleFounder, Shares: 7_000_000, ShareClass: models.ShareClassCommon},
		models.Stakeholder{ID: "investor", Name: "Investor", Role: models.RoleInvestor, Shares: 3_000_000, ShareClass: models.ShareClassPreferred},
	)
}

// SeriesATier is a 1x non-participating senior tier over the given stakeholders.
func SeriesATier(investment string, stakeholderIDs ...string) models.PreferenceTier {
	return models.PreferenceTier{
		ID:                  fmt.Sprintf("tier-%d", nextID()),
		Name:                "Series A",
		Seniority:           1,
		Investment:          Dec(investment),
		LiquidationMultiple: Dec("1"),
		StakeholderIDs:      stakeholderIDs,
	}
}

// NewSAFE creates an outstanding SAFE. Empty cap or discount strings leave the term unset.
func NewSAFE(investor, investment, valuationCap, discountPct string) models.SAFE {
	return models.SAFE{
		InstrumentTerms: terms(investor, valuationCap, discountPct),
		Investment:      Dec(investment),
	}
}

// NewNote creates an outstanding convertible note.
func NewNote(investor, principal, ratePct string, interest models.InterestType, issued time.Time, valuationCap, discountPct string) models.ConvertibleNote {
	return models.ConvertibleNote{
		InstrumentTerms: terms(investor, valuationCap, discountPct),
		Principal:       Dec(principal),
		InterestRatePct: Dec(ratePct),
		InterestType:    interest,
		IssueDate:       issued,
		MaturityMonths:  24,
	}
}

func terms(investor, valuationCap, discountPct string) models.InstrumentTerms {
	t := models.InstrumentTerms{
		ID:           fmt.Sprintf("inst-%d", nextID()),
		InvestorName: investor,
		Status:       models.InstrumentStatusOutstanding,
	}
	if valuationCap != "" {
		t.ValuationCap = DecPtr(valuationCap)
	}
	if discountPct != "" {
		t.DiscountPct = DecPtr(discountPct)
	}
	return t
}

// NewRound creates a priced round at the given price per share.
func NewRound(price string, effective time.Time) models.PricedRound {
	return models.PricedRound{
		Name:          "Series A",
		PricePerShare: Dec(price),
		EffectiveDate: effective,
	}
}
