// Package waterfall distributes exit proceeds across a cap table according to
// a stack of liquidation preferences.
//
// A run is four stages executed in order, each a pure function of the
// previous stage's result:
//
//	A  pay preferences by seniority, pari passu within a rank
//	B  let non-participating tiers convert when common is worth more
//	C  share what is left pro rata, honoring participation caps
//	D  finalize per-stakeholder percentages and ROI
package waterfall

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
)

// Distribution is the full outcome of one exit valuation.
type Distribution struct {
	ExitValuation  decimal.Decimal            `json:"exit_valuation"`
	Payouts        []models.StakeholderPayout `json:"payouts"`
	Steps          []models.WaterfallStep     `json:"steps"`
	CommonPct      float64                    `json:"common_pct"`
	PreferredPct   float64                    `json:"preferred_pct"`
	ConvertedTiers []string                   `json:"converted_tiers"`
	// Unallocated is non-zero only when nobody is eligible for the remainder,
	// e.g. every share sits in a converted tier and TotalShares exceeds the issued count.
	Unallocated decimal.Decimal `json:"unallocated"`
}

// Total sums every payout.
func (d *Distribution) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range d.Payouts {
		total = total.Add(d.Payouts[i].Payout)
	}
	return total
}

// PayoutFor returns the payout of the named stakeholder.
func (d *Distribution) PayoutFor(stakeholderID string) (models.StakeholderPayout, bool) {
	for i := range d.Payouts {
		if d.Payouts[i].StakeholderID == stakeholderID {
			return d.Payouts[i], true
		}
	}
	return models.StakeholderPayout{}, false
}

// book is the read-only view of the inputs every stage works from.
type book struct {
	table         models.CapTable
	exitValuation decimal.Decimal
	// tiers sorted by seniority, input order preserved within a rank
	tiers      []models.PreferenceTier
	tierOf     map[string]string
	tierShares map[string]int64
	names      map[string]string
}

func newBook(table models.CapTable, tiers []models.PreferenceTier, exitValuation decimal.Decimal) *book {
	b := &book{
		table:         table,
		exitValuation: exitValuation,
		tiers:         make([]models.PreferenceTier, len(tiers)),
		tierOf:        make(map[string]string),
		tierShares:    make(map[string]int64, len(tiers)),
		names:         make(map[string]string, len(table.Stakeholders)),
	}
	copy(b.tiers, tiers)
	sort.SliceStable(b.tiers, func(i, j int) bool { return b.tiers[i].Seniority < b.tiers[j].Seniority })

	for i := range table.Stakeholders {
		b.names[table.Stakeholders[i].ID] = table.Stakeholders[i].Name
	}
	for _, tier := range b.tiers {
		for _, id := range tier.StakeholderIDs {
			b.tierOf[id] = tier.ID
		}
		b.tierShares[tier.ID] = table.SharesOf(tier.StakeholderIDs)
	}
	return b
}

// memberClaims weights a tier's members by their shares.
func (b *book) memberClaims(tier models.PreferenceTier) []claim {
	claims := make([]claim, 0, len(tier.StakeholderIDs))
	for _, id := range tier.StakeholderIDs {
		s, _ := b.table.Lookup(id)
		claims = append(claims, claim{key: id, weight: s.Shares})
	}
	return claims
}

// memberNames lists a tier's members for step records.
func (b *book) memberNames(tier models.PreferenceTier) []string {
	out := make([]string, 0, len(tier.StakeholderIDs))
	for _, id := range tier.StakeholderIDs {
		out = append(out, b.names[id])
	}
	return out
}

// commonHolders are stakeholders outside every tier, in cap table order.
func (b *book) commonHolders() []models.Stakeholder {
	out := make([]models.Stakeholder, 0, len(b.table.Stakeholders))
	for _, s := range b.table.Stakeholders {
		if _, inTier := b.tierOf[s.ID]; !inTier {
			out = append(out, s)
		}
	}
	return out
}

// Distribute runs the waterfall for a single exit valuation. It fails with a
// configuration error for a negative valuation or inconsistent tiers; a zero
// valuation or an empty share base simply yields zero payouts.
func Distribute(table models.CapTable, tiers []models.PreferenceTier, exitValuation decimal.Decimal) (*Distribution, error) {
	if exitValuation.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrNegativeExitValuation,
			fmt.Sprintf("exit valuation %s is negative", exitValuation.String()))
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if err := models.ValidateTiers(table, tiers); err != nil {
		return nil, err
	}

	b := newBook(table, tiers, exitValuation)

	prefs := payPreferences(b)
	election := electConversions(b, prefs)
	participation := participate(b, election)
	return finalize(b, election, participation), nil
}
