package conversion

import (
	"github.com/shopspring/decimal"

	"equitylens/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Quote is the outcome of the best-of-both pricing rule for one instrument.
type Quote struct {
	CapPrice      *decimal.Decimal
	DiscountPrice *decimal.Decimal
	Price         decimal.Decimal
	Source        PriceSource

	// capital and preRound keep the cap price as an exact ratio so share
	// counts are not skewed by a rounded per-share price.
	capital  decimal.Decimal
	preRound decimal.Decimal
}

// Price applies the best-of-both rule: the cap price (cap / pre-round shares)
// and the discount price (round price * (1 - discount/100)) are both computed
// when their terms exist and the lower one wins. Equal prices resolve to the cap.
// The caller guarantees preRound > 0 and at least one of cap/discount is set.
func Price(terms models.InstrumentTerms, preRound int64, roundPrice decimal.Decimal) Quote {
	var q Quote
	pre := decimal.NewFromInt(preRound)

	if terms.ValuationCap != nil {
		capPrice := terms.ValuationCap.Div(pre)
		q.CapPrice = &capPrice
	}
	if terms.DiscountPct != nil {
		discountPrice := roundPrice.Mul(decimal.NewFromInt(1).Sub(terms.DiscountPct.Div(hundred)))
		q.DiscountPrice = &discountPrice
	}

	switch {
	case q.CapPrice != nil && q.DiscountPrice != nil:
		// Compare cap/pre against the discount price without dividing.
		if terms.ValuationCap.LessThanOrEqual(q.DiscountPrice.Mul(pre)) {
			q.useCap(*terms.ValuationCap, pre)
		} else {
			q.useDiscount()
		}
	case q.CapPrice != nil:
		q.useCap(*terms.ValuationCap, pre)
	default:
		q.useDiscount()
	}
	return q
}

func (q *Quote) useCap(capital, pre decimal.Decimal) {
	q.Price = *q.CapPrice
	q.Source = PriceSourceCap
	q.capital = capital
	q.preRound = pre
}

func (q *Quote) useDiscount() {
	q.Price = *q.DiscountPrice
	q.Source = PriceSourceDiscount
}

// SharesFor returns floor(amount / price) as a whole number of shares.
func (q Quote) SharesFor(amount decimal.Decimal) decimal.Decimal {
	if q.Source == PriceSourceCap {
		return amount.Mul(q.preRound).Div(q.capital).Floor()
	}
	if !q.Price.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(q.Price).Floor()
}

// Cost is what the given number of shares is worth at the quoted price.
func (q Quote) Cost(shares decimal.Decimal) decimal.Decimal {
	if q.Source == PriceSourceCap {
		return shares.Mul(q.capital).Div(q.preRound)
	}
	return shares.Mul(q.Price)
}
