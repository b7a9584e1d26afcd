package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"equitylens/internal/models"
	"equitylens/internal/testutil"
)

func TestPrice_BestOfBoth(t *testing.T) {
	tests := []struct {
		name       string
		cap        string
		discount   string
		roundPrice string
		preRound   int64
		wantPrice  string
		wantSource PriceSource
	}{
		{"cap_only", "5000000", "", "1.00", 10_000_000, "0.5", PriceSourceCap},
		{"discount_only", "", "20", "1.00", 10_000_000, "0.8", PriceSourceDiscount},
		{"cap_lower", "4000000", "20", "1.00", 10_000_000, "0.4", PriceSourceCap},
		{"discount_lower", "9000000", "20", "1.00", 10_000_000, "0.8", PriceSourceDiscount},
		{"tie_goes_to_cap", "8000000", "20", "1.00", 10_000_000, "0.8", PriceSourceCap},
		{"zero_discount", "", "0", "2.50", 10_000_000, "2.5", PriceSourceDiscount},
		{"cap_above_round_price", "50000000", "", "1.00", 10_000_000, "5", PriceSourceCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := models.InstrumentTerms{ID: "x", Status: models.InstrumentStatusOutstanding}
			if tt.cap != "" {
				terms.ValuationCap = testutil.DecPtr(tt.cap)
			}
			if tt.discount != "" {
				terms.DiscountPct = testutil.DecPtr(tt.discount)
			}

			q := Price(terms, tt.preRound, testutil.Dec(tt.roundPrice))

			assert.True(t, q.Price.Equal(testutil.Dec(tt.wantPrice)), "price: want %s got %s", tt.wantPrice, q.Price)
			assert.Equal(t, tt.wantSource, q.Source)
			if q.CapPrice != nil && q.DiscountPrice != nil {
				lower := *q.CapPrice
				if q.DiscountPrice.LessThan(lower) {
					lower = *q.DiscountPrice
				}
				assert.True(t, q.Price.Equal(lower))
			}
		})
	}
}

func TestQuote_SharesForUsesExactCapRatio(t *testing.T) {
	terms := models.InstrumentTerms{ID: "x", ValuationCap: testutil.DecPtr("3000000")}
	q := Price(terms, 9_000_000, testutil.Dec("1"))

	// cap price is 1/3; 100000 / (1/3) is exactly 300000 shares.
	assert.Equal(t, int64(300_000), q.SharesFor(testutil.Dec("100000")).IntPart())
	assert.True(t, q.Cost(testutil.Dec("300000")).Equal(testutil.Dec("100000")))
}
