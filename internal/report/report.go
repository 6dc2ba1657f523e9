// Package report assembles risk reports: the requested key figures of a
// portfolio on the last day of a window, plus the cumulative return series
// over the whole window.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/logger"
	"riskreport/internal/metrics"
	"riskreport/internal/models"
	"riskreport/internal/risk"
)

// Settings selects what a report covers.
type Settings struct {
	PortfolioName string    `json:"portfolio"`
	DateFrom      date.Date `json:"date_from"`
	DateTo        date.Date `json:"date_to"`
	KeyFigures    []string  `json:"key_figures"`
}

// Validate checks the settings before anything is computed.
func (s Settings) Validate() error {
	if s.PortfolioName == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "portfolio is required")
	}
	if s.DateFrom.IsZero() || s.DateTo.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date_from and date_to are required")
	}
	if s.DateFrom.After(s.DateTo) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("date_from %s is after date_to %s", s.DateFrom, s.DateTo))
	}
	for _, kf := range s.KeyFigures {
		if !models.IsSupportedKeyFigure(kf) {
			return apperrors.WithMessage(apperrors.ErrUnsupportedKeyFigure,
				fmt.Sprintf("Key figure %s is not supported.", kf))
		}
	}
	return nil
}

// Report is the result of a report run.
type Report struct {
	Portfolio         string                  `json:"portfolio"`
	DateFrom          date.Date               `json:"date_from"`
	DateTo            date.Date               `json:"date_to"`
	KeyFigures        map[string]float64      `json:"key_figures"`
	CumulativeReturns []risk.CumulativeReturn `json:"cumulative_returns"`
}

// Generator is the subset of *risk.Generator used to build reports.
type Generator interface {
	MarketValue(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error)
	Return1D(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error)
	Volatility3MAnn(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error)
	CumulativeReturns(ctx context.Context, portfolioName string, from, to date.Date) ([]risk.CumulativeReturn, error)
}

// Servicer produces reports. It is implemented by *Service and faked in
// handler tests.
type Servicer interface {
	Generate(ctx context.Context, settings Settings) (*Report, error)
}

// Service runs reports against a Generator.
type Service struct {
	gen Generator
}

// NewService creates a report Service.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Generate evaluates every requested key figure on DateTo, in the requested
// order, then the cumulative returns over [DateFrom, DateTo]. Any failure
// aborts the run and no report is returned.
func (s *Service) Generate(ctx context.Context, settings Settings) (rep *Report, err error) {
	runID := newRunID()
	log := logger.Named("report").With("run_id", runID, "portfolio", settings.PortfolioName)
	started := time.Now()
	defer func() {
		metrics.ReportFinished(err, time.Since(started))
		if err != nil {
			log.Errorw("risk report failed", "error", err, "elapsed", time.Since(started))
		}
	}()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	log.Infow("risk report started",
		"date_from", settings.DateFrom, "date_to", settings.DateTo, "key_figures", settings.KeyFigures)

	rep = &Report{
		Portfolio:  settings.PortfolioName,
		DateFrom:   settings.DateFrom,
		DateTo:     settings.DateTo,
		KeyFigures: make(map[string]float64, len(settings.KeyFigures)),
	}
	for _, name := range settings.KeyFigures {
		v, err := s.evaluate(ctx, name, settings)
		if err != nil {
			return nil, err
		}
		rep.KeyFigures[name] = v.Value()
	}

	series, err := s.gen.CumulativeReturns(ctx, settings.PortfolioName, settings.DateFrom, settings.DateTo)
	if err != nil {
		return nil, err
	}
	rep.CumulativeReturns = series

	log.Infow("risk report finished", "elapsed", time.Since(started), "points", len(series))
	return rep, nil
}

func (s *Service) evaluate(ctx context.Context, name string, settings Settings) (*models.KeyFigureValue, error) {
	switch name {
	case models.KeyFigureMarketValue:
		return s.gen.MarketValue(ctx, settings.PortfolioName, settings.DateTo)
	case models.KeyFigureReturn1D:
		return s.gen.Return1D(ctx, settings.PortfolioName, settings.DateTo)
	case models.KeyFigureVolatility3M:
		return s.gen.Volatility3MAnn(ctx, settings.PortfolioName, settings.DateTo)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedKeyFigure,
			fmt.Sprintf("Key figure %s is not supported.", name))
	}
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
