package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/logger"
	"equitylens/internal/metrics"
	"equitylens/internal/models"
	"equitylens/internal/waterfall"
)

// waterfallService runs the waterfall engine, alone or across a curve.
type waterfallService struct {
	metrics   *metrics.Metrics
	workers   int
	maxPoints int
}

// NewWaterfallService creates a new WaterfallServicer. workers bounds curve
// concurrency and maxPoints bounds the number of valuations per curve; values
// below 1 fall back to 1 worker and no limit respectively.
func NewWaterfallService(m *metrics.Metrics, workers, maxPoints int) WaterfallServicer {
	if workers < 1 {
		workers = 1
	}
	return &waterfallService{metrics: m, workers: workers, maxPoints: maxPoints}
}

// Distribute runs the waterfall for a single exit valuation.
func (s *waterfallService) Distribute(
	ctx context.Context,
	table models.CapTable,
	tiers []models.PreferenceTier,
	exitValuation decimal.Decimal,
) (*waterfall.Distribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCanceled, err)
	}

	d, err := s.run(table, tiers, exitValuation)
	if err != nil {
		return nil, err
	}

	logger.Named(metrics.EngineWaterfall).Debugw("waterfall distributed",
		"exit_valuation", exitValuation.String(),
		"converted_tiers", len(d.ConvertedTiers),
		"common_pct", d.CommonPct,
		"preferred_pct", d.PreferredPct,
	)
	return d, nil
}

func (s *waterfallService) run(table models.CapTable, tiers []models.PreferenceTier, exitValuation decimal.Decimal) (*waterfall.Distribution, error) {
	start := time.Now()
	d, err := waterfall.Distribute(table, tiers, exitValuation)
	s.metrics.RecordEngineRun(metrics.EngineWaterfall, err, time.Since(start))
	if err != nil {
		return nil, classify(err)
	}
	s.metrics.AddTiersConverted(len(d.ConvertedTiers))
	return d, nil
}

// PayoutCurve evaluates every valuation independently on a bounded worker
// pool. Valuations are sorted ascending and de-duplicated first. The first
// engine error or a canceled context aborts the remaining work.
func (s *waterfallService) PayoutCurve(
	ctx context.Context,
	table models.CapTable,
	tiers []models.PreferenceTier,
	valuations []decimal.Decimal,
) (*PayoutCurve, error) {
	if len(valuations) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one exit valuation is required")
	}

	sorted := sortedValuations(valuations)
	if s.maxPoints > 0 && len(sorted) > s.maxPoints {
		return nil, apperrors.WithMessage(apperrors.ErrTooManyValuations,
			fmt.Sprintf("%d distinct exit valuations requested, the limit is %d", len(sorted), s.maxPoints))
	}
	points := make([]CurvePoint, len(sorted))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, v := range sorted {
		if gctx.Err() != nil {
			break
		}
		i, v := i, v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := s.run(table, tiers, v)
			if err != nil {
				return err
			}
			points[i] = CurvePoint{ExitValuation: v, Distribution: d}
			return nil
		})
	}

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	s.metrics.RecordEngineRun(metrics.EngineCurve, err, time.Since(start))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.ErrCanceled, err)
		}
		return nil, err
	}

	curve := &PayoutCurve{Points: points, Breakeven: breakeven(points)}
	logger.Named(metrics.EngineCurve).Infow("payout curve evaluated",
		"points", len(points),
		"workers", s.workers,
		"duration", time.Since(start),
	)
	return curve, nil
}

// sortedValuations returns an ascending copy without duplicates.
func sortedValuations(in []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })

	uniq := out[:0]
	for i, v := range out {
		if i > 0 && v.Equal(uniq[len(uniq)-1]) {
			continue
		}
		uniq = append(uniq, v)
	}
	return uniq
}

// breakeven records, per stakeholder name, the first point with a positive payout.
// points must be in ascending valuation order.
func breakeven(points []CurvePoint) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, p := range points {
		for _, payout := range p.Distribution.Payouts {
			if _, seen := out[payout.Name]; seen {
				continue
			}
			if payout.Payout.IsPositive() {
				out[payout.Name] = p.ExitValuation
			}
		}
	}
	return out
}
