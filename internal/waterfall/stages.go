package waterfall

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"equitylens/internal/models"
)

// preferenceResult is the output of stage A.
type preferenceResult struct {
	paid      map[string]decimal.Decimal // tier id -> preference received
	remaining decimal.Decimal
	steps     []models.WaterfallStep
}

// payPreferences walks seniority ranks from 1 upward. A rank that can be paid
// in full is; a rank that cannot splits whatever is left in proportion to
// each tier's preference and ends the stage.
func payPreferences(b *book) preferenceResult {
	res := preferenceResult{
		paid:      make(map[string]decimal.Decimal, len(b.tiers)),
		remaining: b.exitValuation,
	}

	for start := 0; start < len(b.tiers); {
		if !res.remaining.IsPositive() {
			break
		}
		end := start
		for end < len(b.tiers) && b.tiers[end].Seniority == b.tiers[start].Seniority {
			end++
		}
		rank := b.tiers[start:end]
		start = end

		owed := decimal.Zero
		for _, tier := range rank {
			owed = owed.Add(tier.Preference())
		}

		if res.remaining.GreaterThanOrEqual(owed) {
			for _, tier := range rank {
				amount := tier.Preference()
				res.paid[tier.ID] = amount
				res.remaining = res.remaining.Sub(amount)
				res.steps = append(res.steps, models.WaterfallStep{
					Stage:          models.StagePreference,
					Description:    fmt.Sprintf("%s liquidation preference (%sx) paid in full", tier.Name, tier.LiquidationMultiple.String()),
					Amount:         amount,
					Recipients:     b.memberNames(tier),
					RemainingAfter: res.remaining,
				})
			}
			continue
		}

		shares := splitByPreference(res.remaining, rank)
		for _, tier := range rank {
			amount := shares[tier.ID]
			res.paid[tier.ID] = amount
			res.steps = append(res.steps, models.WaterfallStep{
				Stage:          models.StagePreference,
				Description:    fmt.Sprintf("%s paid %s of %s preference pari passu (seniority %d)", tier.Name, amount.StringFixed(2), tier.Preference().StringFixed(2), tier.Seniority),
				Amount:         amount,
				Recipients:     b.memberNames(tier),
				RemainingAfter: decimal.Zero,
			})
		}
		res.remaining = decimal.Zero
	}
	return res
}

// splitByPreference divides amount across a rank in proportion to each tier's
// preference. The last tier absorbs the rounding remainder.
func splitByPreference(amount decimal.Decimal, rank []models.PreferenceTier) map[string]decimal.Decimal {
	owed := decimal.Zero
	for _, tier := range rank {
		owed = owed.Add(tier.Preference())
	}
	out := make(map[string]decimal.Decimal, len(rank))
	allocated := decimal.Zero
	for i, tier := range rank {
		if i == len(rank)-1 {
			out[tier.ID] = amount.Sub(allocated)
			break
		}
		part := amount.Mul(tier.Preference()).Div(owed)
		out[tier.ID] = part
		allocated = allocated.Add(part)
	}
	return out
}

// electionResult is the output of stage B.
type electionResult struct {
	retained  map[string]decimal.Decimal // tier id -> preference kept (zero once converted)
	converted map[string]bool
	pool      decimal.Decimal
	steps     []models.WaterfallStep
}

// electConversions gives every non-participating tier the choice between its
// stage A payout and its as-converted share of the whole exit. A tier converts
// only when the as-converted value is strictly greater; its preference then
// returns to the pool.
func electConversions(b *book, prefs preferenceResult) electionResult {
	res := electionResult{
		retained:  make(map[string]decimal.Decimal, len(prefs.paid)),
		converted: make(map[string]bool),
		pool:      prefs.remaining,
		steps:     append([]models.WaterfallStep(nil), prefs.steps...),
	}
	for id, amount := range prefs.paid {
		res.retained[id] = amount
	}

	for _, tier := range b.tiers {
		if tier.Participating {
			continue
		}
		received := prefs.paid[tier.ID]
		asConverted := b.table.OwnershipFraction(tier.StakeholderIDs).Mul(b.exitValuation)
		if !asConverted.GreaterThan(received) {
			continue
		}

		res.converted[tier.ID] = true
		res.retained[tier.ID] = decimal.Zero
		res.pool = res.pool.Add(received)
		res.steps = append(res.steps, models.WaterfallStep{
			Stage: models.StageConversion,
			Description: fmt.Sprintf("%s converts to common: as-converted value %s exceeds preference %s",
				tier.Name, asConverted.StringFixed(2), received.StringFixed(2)),
			Amount:         received,
			Recipients:     b.memberNames(tier),
			RemainingAfter: res.pool,
		})
	}
	return res
}

// participationResult is the output of stage C.
type participationResult struct {
	payouts     map[string]decimal.Decimal // stakeholder id -> total payout
	unallocated decimal.Decimal
	steps       []models.WaterfallStep
}

// participate hands out the pool. Converted tiers take their ownership
// fraction of the whole exit (scaled down pari passu if the pool cannot cover
// it). The rest goes pro rata by shares to common holders and participating
// tiers; a capped tier's overflow goes to common holders only.
func participate(b *book, election electionResult) participationResult {
	res := participationResult{
		payouts: make(map[string]decimal.Decimal, len(b.table.Stakeholders)),
		steps:   append([]models.WaterfallStep(nil), election.steps...),
	}
	remaining := election.pool

	// Preferences kept through stage B belong to the tier members.
	for _, tier := range b.tiers {
		if kept := election.retained[tier.ID]; kept.IsPositive() {
			addInto(res.payouts, splitProRata(kept, b.memberClaims(tier)))
		}
	}

	remaining = payConverted(b, election, remaining, &res)

	commons := b.commonHolders()
	var claims []claim
	for _, s := range commons {
		claims = append(claims, claim{key: s.ID, weight: s.Shares})
	}
	var participating []models.PreferenceTier
	for _, tier := range b.tiers {
		if tier.Participating {
			participating = append(participating, tier)
			claims = append(claims, claim{key: tierKey(tier.ID), weight: b.tierShares[tier.ID]})
		}
	}

	if !remaining.IsPositive() {
		res.unallocated = decimal.Zero
		return res
	}
	if sumWeights(claims) == 0 {
		res.unallocated = remaining
		return res
	}

	shares := splitProRata(remaining, claims)

	commonTotal := decimal.Zero
	var commonNames []string
	for _, s := range commons {
		amount := shares[s.ID]
		res.payouts[s.ID] = res.payouts[s.ID].Add(amount)
		commonTotal = commonTotal.Add(amount)
		commonNames = append(commonNames, s.Name)
	}
	if commonTotal.IsPositive() {
		remaining = remaining.Sub(commonTotal)
		res.steps = append(res.steps, models.WaterfallStep{
			Stage:          models.StageParticipation,
			Description:    "Common holders share remaining proceeds pro rata",
			Amount:         commonTotal,
			Recipients:     commonNames,
			RemainingAfter: remaining,
		})
	}

	excess := decimal.Zero
	var uncapped []models.PreferenceTier
	for _, tier := range participating {
		amount := shares[tierKey(tier.ID)]
		description := fmt.Sprintf("%s participates pro rata", tier.Name)

		if ceiling, capped := tier.CapAmount(); capped {
			headroom := ceiling.Sub(election.retained[tier.ID])
			if headroom.IsNegative() {
				headroom = decimal.Zero
			}
			if amount.GreaterThan(headroom) {
				excess = excess.Add(amount.Sub(headroom))
				amount = headroom
				description = fmt.Sprintf("%s participates pro rata, capped at %sx", tier.Name, tier.ParticipationCap.String())
			}
		} else {
			uncapped = append(uncapped, tier)
		}

		if !amount.IsPositive() {
			continue
		}
		addInto(res.payouts, splitProRata(amount, b.memberClaims(tier)))
		remaining = remaining.Sub(amount)
		res.steps = append(res.steps, models.WaterfallStep{
			Stage:          models.StageParticipation,
			Description:    description,
			Amount:         amount,
			Recipients:     b.memberNames(tier),
			RemainingAfter: remaining,
		})
	}

	if excess.IsPositive() {
		remaining = redistributeExcess(b, excess, commons, uncapped, remaining, &res)
	}
	res.unallocated = remaining
	return res
}

// payConverted pays every converted tier its ownership fraction of the exit
// and returns what is left of the pool.
func payConverted(b *book, election electionResult, pool decimal.Decimal, res *participationResult) decimal.Decimal {
	want := make(map[string]decimal.Decimal)
	total := decimal.Zero
	var converted []models.PreferenceTier
	for _, tier := range b.tiers {
		if !election.converted[tier.ID] {
			continue
		}
		amount := b.table.OwnershipFraction(tier.StakeholderIDs).Mul(b.exitValuation)
		want[tier.ID] = amount
		total = total.Add(amount)
		converted = append(converted, tier)
	}
	if len(converted) == 0 {
		return pool
	}

	// Scaled shares are all taken against the pool as it stood before any
	// converted tier was paid; the last tier absorbs the rounding remainder.
	available := pool
	allocated := decimal.Zero
	scaled := total.GreaterThan(available)
	for i, tier := range converted {
		amount := want[tier.ID]
		if scaled {
			if i == len(converted)-1 {
				amount = available.Sub(allocated)
			} else {
				amount = amount.Mul(available).Div(total)
			}
		}
		if amount.GreaterThan(pool) {
			amount = pool
		}
		allocated = allocated.Add(amount)
		if amount.IsPositive() {
			addInto(res.payouts, splitProRata(amount, b.memberClaims(tier)))
		}
		pool = pool.Sub(amount)

		description := fmt.Sprintf("%s receives its as-converted share of the exit", tier.Name)
		if scaled {
			description += " (scaled to available proceeds)"
		}
		res.steps = append(res.steps, models.WaterfallStep{
			Stage:          models.StageParticipation,
			Description:    description,
			Amount:         amount,
			Recipients:     b.memberNames(tier),
			RemainingAfter: pool,
		})
	}
	return pool
}

// redistributeExcess hands capped overflow to common holders. Without any
// common shares it falls back to uncapped participating tiers.
func redistributeExcess(b *book, excess decimal.Decimal, commons []models.Stakeholder, uncapped []models.PreferenceTier, remaining decimal.Decimal, res *participationResult) decimal.Decimal {
	var claims []claim
	var names []string
	for _, s := range commons {
		claims = append(claims, claim{key: s.ID, weight: s.Shares})
		names = append(names, s.Name)
	}
	target := "common holders"

	if sumWeights(claims) == 0 {
		claims, names = nil, nil
		for _, tier := range uncapped {
			claims = append(claims, claim{key: tierKey(tier.ID), weight: b.tierShares[tier.ID]})
			names = append(names, b.memberNames(tier)...)
		}
		target = "uncapped participating tiers"
		if sumWeights(claims) == 0 {
			return remaining
		}
	}

	parts := splitProRata(excess, claims)
	for key, amount := range parts {
		if tierID, ok := strings.CutPrefix(key, tierKeyPrefix); ok {
			for _, tier := range uncapped {
				if tier.ID == tierID {
					addInto(res.payouts, splitProRata(amount, b.memberClaims(tier)))
				}
			}
			continue
		}
		res.payouts[key] = res.payouts[key].Add(amount)
	}

	remaining = remaining.Sub(excess)
	res.steps = append(res.steps, models.WaterfallStep{
		Stage:          models.StageParticipation,
		Description:    "Participation above cap redistributed to " + target,
		Amount:         excess,
		Recipients:     names,
		RemainingAfter: remaining,
	})
	return remaining
}

const tierKeyPrefix = "tier:"

// tierKey keeps tier claims apart from stakeholder claims in one split.
func tierKey(id string) string { return tierKeyPrefix + id }

// finalize builds per-stakeholder payouts in cap table order (stage D).
func finalize(b *book, election electionResult, participation participationResult) *Distribution {
	d := &Distribution{
		ExitValuation: b.exitValuation,
		Payouts:       make([]models.StakeholderPayout, 0, len(b.table.Stakeholders)),
		Steps:         participation.steps,
		Unallocated:   participation.unallocated,
	}
	if d.Steps == nil {
		d.Steps = []models.WaterfallStep{}
	}

	investments := make(map[string]decimal.Decimal)
	for _, tier := range b.tiers {
		addInto(investments, splitProRata(tier.Investment, b.memberClaims(tier)))
		if election.converted[tier.ID] {
			d.ConvertedTiers = append(d.ConvertedTiers, tier.ID)
		}
	}
	if d.ConvertedTiers == nil {
		d.ConvertedTiers = []string{}
	}

	commonTotal, preferredTotal := decimal.Zero, decimal.Zero
	for _, s := range b.table.Stakeholders {
		amount := participation.payouts[s.ID]
		p := models.StakeholderPayout{
			StakeholderID: s.ID,
			Name:          s.Name,
			ShareClass:    s.ShareClass,
			Payout:        amount,
			PayoutPct:     ratioPct(amount, b.exitValuation),
		}

		tierID, inTier := b.tierOf[s.ID]
		if inTier {
			p.TierID = tierID
			p.Converted = election.converted[tierID]
			invested := investments[s.ID]
			p.Investment = &invested
			if invested.IsPositive() {
				roi, _ := amount.Div(invested).Float64()
				p.ROI = &roi
			}
		}

		if inTier && !p.Converted {
			preferredTotal = preferredTotal.Add(amount)
		} else {
			commonTotal = commonTotal.Add(amount)
		}
		d.Payouts = append(d.Payouts, p)
	}

	distributed := commonTotal.Add(preferredTotal)
	d.CommonPct = ratioPct(commonTotal, distributed)
	d.PreferredPct = ratioPct(preferredTotal, distributed)
	return d
}

// ratioPct is part/whole*100 with a zero guard.
func ratioPct(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
