package services

import (
	"context"
	"time"

	"equitylens/internal/conversion"
	apperrors "equitylens/internal/errors"
	"equitylens/internal/logger"
	"equitylens/internal/metrics"
	"equitylens/internal/models"
)

// conversionService runs the conversion engine and records the outcome.
type conversionService struct {
	metrics *metrics.Metrics
}

// NewConversionService creates a new ConversionServicer. m may be nil.
func NewConversionService(m *metrics.Metrics) ConversionServicer {
	return &conversionService{metrics: m}
}

// Convert converts every outstanding instrument at the given round.
func (s *conversionService) Convert(
	ctx context.Context,
	table models.CapTable,
	instruments []models.Instrument,
	round models.PricedRound,
) (*conversion.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCanceled, err)
	}

	start := time.Now()
	result, err := conversion.Convert(table, instruments, round)
	s.metrics.RecordEngineRun(metrics.EngineConversion, err, time.Since(start))
	if err != nil {
		return nil, classify(err)
	}
	s.metrics.AddInstrumentsConverted(result.Summary.InstrumentsConverted)

	logger.Named(metrics.EngineConversion).Infow("instruments converted",
		"round", round.Name,
		"converted", result.Summary.InstrumentsConverted,
		"skipped", result.Summary.InstrumentsSkipped,
		"shares_issued", result.Summary.TotalSharesIssued,
		"dilution_pct", result.Summary.DilutionPct,
	)
	return result, nil
}

// classify keeps AppErrors intact and wraps anything else as internal.
func classify(err error) error {
	if _, ok := err.(*apperrors.AppError); ok {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
