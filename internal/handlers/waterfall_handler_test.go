package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
	"equitylens/internal/services"
	"equitylens/internal/waterfall"
)

func setupWaterfallRouter(handler *WaterfallHandler) *gin.Engine {
	r := gin.New()
	r.POST("/waterfall", handler.Distribute)
	r.POST("/waterfall/curve", handler.Curve)
	return r
}

func TestWaterfallHandler_Distribute(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotTiers []models.PreferenceTier
		var gotValuation decimal.Decimal
		svc := &mockWaterfallService{
			distributeFn: func(_ context.Context, _ models.CapTable, tiers []models.PreferenceTier, v decimal.Decimal) (*waterfall.Distribution, error) {
				gotTiers, gotValuation = tiers, v
				return &waterfall.Distribution{ExitValuation: v, CommonPct: 100}, nil
			},
		}
		r := setupWaterfallRouter(NewWaterfallHandler(svc))

		rec := doRequest(r, "POST", "/waterfall",
			`{"cap_table":`+capTableJSON+`,"tiers":`+tiersJSON+`,"exit_valuation":50000000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(gotTiers) != 1 || gotTiers[0].ID != "series-a" {
			t.Errorf("unexpected tiers: %+v", gotTiers)
		}
		if !gotValuation.Equal(decimal.NewFromInt(50_000_000)) {
			t.Errorf("expected valuation 50000000, got %s", gotValuation)
		}
		if parseJSON(t, rec)["common_pct"].(float64) != 100 {
			t.Error("expected common_pct 100")
		}
	})

	t.Run("accepts zero valuation", func(t *testing.T) {
		r := setupWaterfallRouter(NewWaterfallHandler(&mockWaterfallService{}))

		rec := doRequest(r, "POST", "/waterfall", `{"cap_table":`+capTableJSON+`,"exit_valuation":0}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing valuation", func(t *testing.T) {
		r := setupWaterfallRouter(NewWaterfallHandler(&mockWaterfallService{}))

		rec := doRequest(r, "POST", "/waterfall", `{"cap_table":`+capTableJSON+`}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on zero tier investment", func(t *testing.T) {
		r := setupWaterfallRouter(NewWaterfallHandler(&mockWaterfallService{}))

		rec := doRequest(r, "POST", "/waterfall",
			`{"cap_table":`+capTableJSON+`,"tiers":[{"id":"t","seniority":1,"investment":"0","liquidation_multiple":"1","stakeholder_ids":["investor"]}],"exit_valuation":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 422 on negative valuation", func(t *testing.T) {
		svc := &mockWaterfallService{
			distributeFn: func(context.Context, models.CapTable, []models.PreferenceTier, decimal.Decimal) (*waterfall.Distribution, error) {
				return nil, apperrors.ErrNegativeExitValuation
			},
		}
		r := setupWaterfallRouter(NewWaterfallHandler(svc))

		rec := doRequest(r, "POST", "/waterfall", `{"cap_table":`+capTableJSON+`,"exit_valuation":-1}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NEGATIVE_EXIT_VALUATION")
	})

	t.Run("returns 500 on unexpected error", func(t *testing.T) {
		svc := &mockWaterfallService{
			distributeFn: func(context.Context, models.CapTable, []models.PreferenceTier, decimal.Decimal) (*waterfall.Distribution, error) {
				return nil, errors.New("boom")
			},
		}
		r := setupWaterfallRouter(NewWaterfallHandler(svc))

		rec := doRequest(r, "POST", "/waterfall", `{"cap_table":`+capTableJSON+`,"exit_valuation":1}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestWaterfallHandler_Curve(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var got []decimal.Decimal
		svc := &mockWaterfallService{
			payoutCurveFn: func(_ context.Context, _ models.CapTable, _ []models.PreferenceTier, valuations []decimal.Decimal) (*services.PayoutCurve, error) {
				got = valuations
				return &services.PayoutCurve{
					Breakeven: map[string]decimal.Decimal{"Investor": decimal.NewFromInt(1_000_000)},
				}, nil
			},
		}
		r := setupWaterfallRouter(NewWaterfallHandler(svc))

		rec := doRequest(r, "POST", "/waterfall/curve",
			`{"cap_table":`+capTableJSON+`,"tiers":`+tiersJSON+`,"exit_valuations":["1000000",50000000]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 valuations, got %d", len(got))
		}
		breakeven := parseJSON(t, rec)["breakeven"].(map[string]interface{})
		if breakeven["Investor"] != "1000000" {
			t.Errorf("expected Investor breakeven 1000000, got %v", breakeven["Investor"])
		}
	})

	t.Run("returns 400 on empty valuations", func(t *testing.T) {
		r := setupWaterfallRouter(NewWaterfallHandler(&mockWaterfallService{}))

		rec := doRequest(r, "POST", "/waterfall/curve", `{"cap_table":`+capTableJSON+`,"exit_valuations":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on too many valuations", func(t *testing.T) {
		svc := &mockWaterfallService{
			payoutCurveFn: func(context.Context, models.CapTable, []models.PreferenceTier, []decimal.Decimal) (*services.PayoutCurve, error) {
				return nil, apperrors.ErrTooManyValuations
			},
		}
		r := setupWaterfallRouter(NewWaterfallHandler(svc))

		rec := doRequest(r, "POST", "/waterfall/curve", `{"cap_table":`+capTableJSON+`,"exit_valuations":[1,2,3]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TOO_MANY_VALUATIONS")
	})
}
