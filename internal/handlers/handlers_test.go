package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"equitylens/internal/conversion"
	"equitylens/internal/models"
	"equitylens/internal/scenario"
	"equitylens/internal/services"
	"equitylens/internal/validator"
	"equitylens/internal/waterfall"
)

// --- mock services ---

type mockConversionService struct {
	convertFn func(ctx context.Context, table models.CapTable, instruments []models.Instrument, round models.PricedRound) (*conversion.Result, error)
}

func (m *mockConversionService) Convert(ctx context.Context, table models.CapTable, instruments []models.Instrument, round models.PricedRound) (*conversion.Result, error) {
	if m.convertFn != nil {
		return m.convertFn(ctx, table, instruments, round)
	}
	return &conversion.Result{CapTable: table}, nil
}

var _ services.ConversionServicer = (*mockConversionService)(nil)

type mockWaterfallService struct {
	distributeFn  func(ctx context.Context, table models.CapTable, tiers []models.PreferenceTier, exitValuation decimal.Decimal) (*waterfall.Distribution, error)
	payoutCurveFn func(ctx context.Context, table models.CapTable, tiers []models.PreferenceTier, valuations []decimal.Decimal) (*services.PayoutCurve, error)
}

func (m *mockWaterfallService) Distribute(ctx context.Context, table models.CapTable, tiers []models.PreferenceTier, exitValuation decimal.Decimal) (*waterfall.Distribution, error) {
	if m.distributeFn != nil {
		return m.distributeFn(ctx, table, tiers, exitValuation)
	}
	return &waterfall.Distribution{ExitValuation: exitValuation}, nil
}

func (m *mockWaterfallService) PayoutCurve(ctx context.Context, table models.CapTable, tiers []models.PreferenceTier, valuations []decimal.Decimal) (*services.PayoutCurve, error) {
	if m.payoutCurveFn != nil {
		return m.payoutCurveFn(ctx, table, tiers, valuations)
	}
	return &services.PayoutCurve{Breakeven: map[string]decimal.Decimal{}}, nil
}

var _ services.WaterfallServicer = (*mockWaterfallService)(nil)

type mockScenarioService struct {
	evaluateFn func(ctx context.Context, s *scenario.Scenario) (*services.ScenarioEvaluation, error)
}

func (m *mockScenarioService) Evaluate(ctx context.Context, s *scenario.Scenario) (*services.ScenarioEvaluation, error) {
	if m.evaluateFn != nil {
		return m.evaluateFn(ctx, s)
	}
	return &services.ScenarioEvaluation{Name: s.Name, CapTable: s.CapTable}, nil
}

var _ services.ScenarioServicer = (*mockScenarioService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// capTableJSON is a founder with 7M common shares and an investor with 3M
// preferred shares; total_shares is omitted and defaults to the issued count.
const capTableJSON = `{"stakeholders":[` +
	`{"id":"founder","name":"Founder","role":"founder","shares":7000000,"share_class":"common"},` +
	`{"id":"investor","name":"Investor","role":"investor","shares":3000000,"share_class":"preferred"}]}`

const tiersJSON = `[{"id":"series-a","name":"Series A","seniority":1,"investment":"5000000",` +
	`"liquidation_multiple":"1","stakeholder_ids":["investor"]}]`
