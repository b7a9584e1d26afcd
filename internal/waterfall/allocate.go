package waterfall

import "github.com/shopspring/decimal"

// claim is a weighted entitlement to part of a pool.
type claim struct {
	key    string
	weight int64
}

// splitProRata divides amount across claims in proportion to weight. When
// every weight is zero the amount is split equally. The last claim absorbs
// the rounding remainder, so the parts always sum to amount exactly.
func splitProRata(amount decimal.Decimal, claims []claim) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(claims))
	if len(claims) == 0 {
		return out
	}

	var total int64
	for _, c := range claims {
		total += c.weight
	}

	allocated := decimal.Zero
	for i, c := range claims {
		if i == len(claims)-1 {
			out[c.key] = out[c.key].Add(amount.Sub(allocated))
			break
		}
		var part decimal.Decimal
		if total > 0 {
			part = amount.Mul(decimal.NewFromInt(c.weight)).Div(decimal.NewFromInt(total))
		} else {
			part = amount.Div(decimal.NewFromInt(int64(len(claims))))
		}
		out[c.key] = out[c.key].Add(part)
		allocated = allocated.Add(part)
	}
	return out
}

// sumWeights totals the weight of claims.
func sumWeights(claims []claim) int64 {
	var total int64
	for _, c := range claims {
		total += c.weight
	}
	return total
}

// addInto accumulates src into dst.
func addInto(dst, src map[string]decimal.Decimal) {
	for k, v := range src {
		dst[k] = dst[k].Add(v)
	}
}
