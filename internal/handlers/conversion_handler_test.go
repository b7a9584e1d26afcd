package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"equitylens/internal/conversion"
	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
)

func setupConversionRouter(handler *ConversionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/conversions", handler.Convert)
	return r
}

const convertBody = `{"cap_table":` + capTableJSON + `,` +
	`"instruments":[{"type":"safe","id":"safe-1","investor_name":"Angel","investment":"100000","valuation_cap":"5000000"},` +
	`{"type":"convertible_note","id":"note-1","investor_name":"Bridge","principal":"50000","interest_rate_pct":"5",` +
	`"interest_type":"simple","issue_date":"2024-01-01T00:00:00Z","discount_pct":"20"}],` +
	`"round":{"name":"Series A","price_per_share":"1.00","effective_date":"2024-07-01T00:00:00Z"}}`

func TestConversionHandler_Convert(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotTable models.CapTable
		var gotInstruments []models.Instrument
		svc := &mockConversionService{
			convertFn: func(_ context.Context, table models.CapTable, instruments []models.Instrument, round models.PricedRound) (*conversion.Result, error) {
				gotTable, gotInstruments = table, instruments
				return &conversion.Result{
					CapTable:    table,
					Summary:     conversion.Summary{InstrumentsConverted: 2},
					Instruments: instruments,
				}, nil
			},
		}
		r := setupConversionRouter(NewConversionHandler(svc))

		rec := doRequest(r, "POST", "/conversions", convertBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotTable.TotalShares != 10_000_000 {
			t.Errorf("expected total shares to default to 10000000, got %d", gotTable.TotalShares)
		}
		if len(gotInstruments) != 2 {
			t.Fatalf("expected 2 instruments, got %d", len(gotInstruments))
		}
		if _, ok := gotInstruments[1].(models.ConvertibleNote); !ok {
			t.Errorf("expected second instrument to be a note, got %T", gotInstruments[1])
		}

		result := parseJSON(t, rec)
		instruments := result["instruments"].([]interface{})
		first := instruments[0].(map[string]interface{})
		if first["type"] != "safe" || first["status"] != "outstanding" {
			t.Errorf("unexpected instrument in response: %v", first)
		}
		summary := result["summary"].(map[string]interface{})
		if summary["instruments_converted"].(float64) != 2 {
			t.Errorf("expected 2 converted, got %v", summary["instruments_converted"])
		}
	})

	t.Run("returns 400 on unknown instrument type", func(t *testing.T) {
		r := setupConversionRouter(NewConversionHandler(&mockConversionService{}))

		rec := doRequest(r, "POST", "/conversions",
			`{"cap_table":`+capTableJSON+`,"instruments":[{"type":"warrant","id":"w","investor_name":"X"}],"round":{"price_per_share":"1"}}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad stakeholder role", func(t *testing.T) {
		r := setupConversionRouter(NewConversionHandler(&mockConversionService{}))

		rec := doRequest(r, "POST", "/conversions",
			`{"cap_table":{"stakeholders":[{"id":"a","role":"janitor","shares":1,"share_class":"common"}]},"round":{"price_per_share":"1"}}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 422 on configuration error", func(t *testing.T) {
		svc := &mockConversionService{
			convertFn: func(context.Context, models.CapTable, []models.Instrument, models.PricedRound) (*conversion.Result, error) {
				return nil, apperrors.ErrMissingPricingTerms
			},
		}
		r := setupConversionRouter(NewConversionHandler(svc))

		rec := doRequest(r, "POST", "/conversions", convertBody)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MISSING_PRICING_TERMS")
	})
}
