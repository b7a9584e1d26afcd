package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "equitylens/internal/errors"
)

const scenarioYAML = `
name: Seed to Series A
cap_table:
  stakeholders:
    - id: founder
      name: Founder
      role: founder
      shares: 7000000
      share_class: common
    - id: investor
      name: Investor
      role: investor
      shares: 3000000
      share_class: preferred
instruments:
  - type: safe
    id: safe-1
    investor_name: Angel
    investment: 100000
    valuation_cap: 5000000
round:
  price_per_share: "1.00"
  effective_date: 2025-01-01
tiers:
  - id: series-a
    name: Series A
    seniority: 1
    investment: 5000000
    liquidation_multiple: 1
    stakeholder_ids: [investor]
exit_valuations: [50000000, 3000000]
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	path := writeScenario(t, scenarioYAML)

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "convert", "--file", path, "--output", "json")
		require.NoError(t, err)

		var result struct {
			Summary struct {
				InstrumentsConverted int   `json:"instruments_converted"`
				TotalSharesIssued    int64 `json:"total_shares_issued"`
				PostRoundShares      int64 `json:"post_round_shares"`
			} `json:"summary"`
			Instruments []struct {
				Status string `json:"status"`
			} `json:"instruments"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 1, result.Summary.InstrumentsConverted)
		assert.Equal(t, int64(200_000), result.Summary.TotalSharesIssued)
		assert.Equal(t, int64(10_200_000), result.Summary.PostRoundShares)
		require.Len(t, result.Instruments, 1)
		assert.Equal(t, "converted", result.Instruments[0].Status)
	})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "convert", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "== Conversions ==")
		assert.Contains(t, out, "Angel")
		assert.Contains(t, out, "200000")
	})

	t.Run("without_round", func(t *testing.T) {
		noRound := writeScenario(t, `
cap_table:
  stakeholders:
    - {id: founder, name: Founder, role: founder, shares: 100, share_class: common}
`)
		_, err := execute(t, "convert", "--file", noRound)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestWaterfall(t *testing.T) {
	path := writeScenario(t, scenarioYAML)

	t.Run("distributes_post_round_table", func(t *testing.T) {
		out, err := execute(t, "waterfall", "--file", path, "--valuation", "50000000", "-o", "json")
		require.NoError(t, err)

		var d struct {
			ConvertedTiers []string `json:"converted_tiers"`
			Payouts        []struct {
				Name string `json:"name"`
			} `json:"payouts"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &d))
		assert.Equal(t, []string{"series-a"}, d.ConvertedTiers)
		require.Len(t, d.Payouts, 3)
		assert.Equal(t, "Angel", d.Payouts[2].Name)
	})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "waterfall", "--file", path, "--valuation", "3000000")
		require.NoError(t, err)
		assert.Contains(t, out, "== Exit at 3000000.00 ==")
		assert.Contains(t, out, "== Steps ==")
	})

	t.Run("rejects_bad_valuation", func(t *testing.T) {
		_, err := execute(t, "waterfall", "--file", path, "--valuation", "lots")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects_negative_valuation", func(t *testing.T) {
		_, err := execute(t, "waterfall", "--file", path, "--valuation=-5")
		assert.ErrorIs(t, err, apperrors.ErrNegativeExitValuation)
	})

	t.Run("requires_valuation", func(t *testing.T) {
		_, err := execute(t, "waterfall", "--file", path)
		assert.Error(t, err)
	})
}

func TestCurve(t *testing.T) {
	path := writeScenario(t, scenarioYAML)

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "curve", "--file", path, "--output", "json", "--workers", "2")
		require.NoError(t, err)

		var c struct {
			Points []struct {
				ExitValuation string `json:"exit_valuation"`
			} `json:"points"`
			Breakeven map[string]string `json:"breakeven"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &c))
		require.Len(t, c.Points, 2)
		assert.Equal(t, "3000000", c.Points[0].ExitValuation)
		assert.Equal(t, "3000000", c.Breakeven["Investor"])
		assert.Equal(t, "50000000", c.Breakeven["Founder"])
	})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "curve", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "== Payout curve ==")
		assert.Contains(t, out, "== Breakeven ==")
	})

	t.Run("max_points", func(t *testing.T) {
		_, err := execute(t, "curve", "--file", path, "--max-points", "1")
		assert.ErrorIs(t, err, apperrors.ErrTooManyValuations)
	})
}

func TestEvaluate(t *testing.T) {
	path := writeScenario(t, scenarioYAML)

	out, err := execute(t, "evaluate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario: Seed to Series A")
	assert.Contains(t, out, "== Cap table ==")
	assert.Contains(t, out, "== Payout curve ==")
}

func TestRootFlags(t *testing.T) {
	path := writeScenario(t, scenarioYAML)

	t.Run("unknown_output", func(t *testing.T) {
		_, err := execute(t, "evaluate", "--file", path, "--output", "xml")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := execute(t, "evaluate", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("file_required", func(t *testing.T) {
		_, err := execute(t, "evaluate")
		assert.Error(t, err)
	})
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "error: TOO_MANY_VALUATIONS: too many",
		describe(apperrors.WithMessage(apperrors.ErrTooManyValuations, "too many")))
	assert.Equal(t, "error: boom", describe(errors.New("boom")))
}
