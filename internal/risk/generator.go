// Package risk computes and persists the portfolio key figures: market value,
// one-day return, trailing annualized volatility and cumulative returns.
//
// Every figure is derived from scratch on each call. A one-day return needs
// the market values of the day and of the day before, and a volatility needs
// the 90 one-day returns of its trailing window, so a single volatility
// recomputes and stores 180 market values and 90 returns. Every computed
// value is written to the store before it is returned.
package risk

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/logger"
	"riskreport/internal/metrics"
	"riskreport/internal/models"
	"riskreport/internal/store"
)

// WriteMode selects how computed values are stored.
type WriteMode string

const (
	// WriteModeInsert adds a new row for every computed value, so repeated
	// runs leave several rows for the same date, entity and key figure.
	WriteModeInsert WriteMode = "insert"
	// WriteModeUpsert updates the row with the same date, entity and key
	// figure when one exists.
	WriteModeUpsert WriteMode = "upsert"
)

// ParseWriteMode validates a write mode name.
func ParseWriteMode(s string) (WriteMode, error) {
	switch m := WriteMode(s); m {
	case WriteModeInsert, WriteModeUpsert:
		return m, nil
	default:
		return "", apperrors.WithMessage(apperrors.ErrConfiguration,
			fmt.Sprintf("unknown key figure write mode %q, want insert or upsert", s))
	}
}

// MarketValuer computes the market value of a portfolio on a date. Return
// computations obtain their market values through it, which makes it the
// place to plug in a memoizing strategy.
type MarketValuer interface {
	MarketValue(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error)
}

// Generator computes key figures for named portfolios.
type Generator struct {
	conn   store.Connector
	mode   WriteMode
	values MarketValuer
	log    *zap.SugaredLogger

	// steps serializes each evaluate-and-persist step per portfolio, key
	// figure and date.
	steps keyedMutex
}

// Option configures a Generator.
type Option func(*Generator)

// WithWriteMode sets how computed values are stored. The default is
// WriteModeInsert.
func WithWriteMode(mode WriteMode) Option {
	return func(g *Generator) { g.mode = mode }
}

// WithMarketValuer replaces the source of market values used by return
// computations. By default the Generator uses itself.
func WithMarketValuer(mv MarketValuer) Option {
	return func(g *Generator) { g.values = mv }
}

// NewGenerator creates a Generator reading from and writing to conn.
func NewGenerator(conn store.Connector, opts ...Option) *Generator {
	g := &Generator{
		conn: conn,
		mode: WriteModeInsert,
		log:  logger.Named("risk"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.values == nil {
		g.values = g
	}
	return g
}

// MarketValue computes the sum of the market values of all positions of the
// portfolio that are valid on the given date. Every such position needs a
// price for its instrument on exactly that date.
func (g *Generator) MarketValue(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error) {
	defer g.steps.lock(figureKey(portfolioName, models.KeyFigureMarketValue, on))()

	var result *models.KeyFigureValue
	err := g.conn.WithConnection(ctx, func(gw store.Gateway) error {
		portfolio, err := portfolioByName(ctx, gw, portfolioName)
		if err != nil {
			return err
		}
		kf, err := keyFigureByName(ctx, gw, models.KeyFigureMarketValue)
		if err != nil {
			return err
		}
		positions, err := gw.ListPositions(ctx, store.PositionFilter{Date: on, Portfolio: portfolio})
		if err != nil {
			return err
		}

		total := 0.0
		for _, pos := range positions {
			prices, err := gw.ListPrices(ctx, store.PriceFilter{Instrument: pos.Instrument(), From: on, To: on})
			if err != nil {
				return err
			}
			if len(prices) == 0 {
				return apperrors.WithMessage(apperrors.ErrMissingPrice,
					fmt.Sprintf("no price for instrument %q on %s", pos.Instrument().Name(), on))
			}
			mv, err := pos.MarketValue(prices[0].Value())
			if err != nil {
				return err
			}
			total += mv
		}

		v, err := models.NewKeyFigureValue(0, on, total, models.RefTypePortfolio, portfolio, kf)
		if err != nil {
			return err
		}
		if err := g.persist(ctx, gw, v); err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.log.Debugw("market value computed", "portfolio", portfolioName, "date", on, "value", result.Value())
	return result, nil
}

// MarketValueRange computes MarketValue for every calendar day in [from, to].
func (g *Generator) MarketValueRange(ctx context.Context, portfolioName string, from, to date.Date) ([]*models.KeyFigureValue, error) {
	return eachDay(ctx, from, to, func(d date.Date) (*models.KeyFigureValue, error) {
		return g.values.MarketValue(ctx, portfolioName, d)
	})
}

// Return1D computes mv(on)/mv(on-1) - 1. Both market values are recomputed
// and stored.
func (g *Generator) Return1D(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error) {
	defer g.steps.lock(figureKey(portfolioName, models.KeyFigureReturn1D, on))()

	values, err := g.MarketValueRange(ctx, portfolioName, on.Add(-1), on)
	if err != nil {
		return nil, err
	}
	previous, current := values[0], values[1]

	r, err := OneDayReturn(previous.Value(), current.Value())
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrZeroMarketValue,
			fmt.Sprintf("market value of portfolio %q on %s is zero", portfolioName, previous.Date()))
	}

	var result *models.KeyFigureValue
	err = g.conn.WithConnection(ctx, func(gw store.Gateway) error {
		kf, err := keyFigureByName(ctx, gw, models.KeyFigureReturn1D)
		if err != nil {
			return err
		}
		v, err := models.NewKeyFigureValue(0, on, r, previous.RefType(), previous.Reference(), kf)
		if err != nil {
			return err
		}
		if err := g.persist(ctx, gw, v); err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.log.Debugw("one-day return computed", "portfolio", portfolioName, "date", on, "value", r)
	return result, nil
}

// Return1DRange computes Return1D for every calendar day in [from, to], which
// stores market values from from-1 through to.
func (g *Generator) Return1DRange(ctx context.Context, portfolioName string, from, to date.Date) ([]*models.KeyFigureValue, error) {
	return eachDay(ctx, from, to, func(d date.Date) (*models.KeyFigureValue, error) {
		return g.Return1D(ctx, portfolioName, d)
	})
}

// Volatility3MAnn computes the annualized standard deviation of the log
// returns over the VolatilityWindowDays days ending on the given date.
func (g *Generator) Volatility3MAnn(ctx context.Context, portfolioName string, on date.Date) (*models.KeyFigureValue, error) {
	defer g.steps.lock(figureKey(portfolioName, models.KeyFigureVolatility3M, on))()

	returns, err := g.Return1DRange(ctx, portfolioName, on.Add(-(VolatilityWindowDays - 1)), on)
	if err != nil {
		return nil, err
	}
	logReturns, err := LogReturns(valuesOf(returns))
	if err != nil {
		return nil, err
	}
	vol, err := AnnualizedVolatility(logReturns)
	if err != nil {
		return nil, err
	}

	var result *models.KeyFigureValue
	err = g.conn.WithConnection(ctx, func(gw store.Gateway) error {
		portfolio, err := portfolioByName(ctx, gw, portfolioName)
		if err != nil {
			return err
		}
		kf, err := keyFigureByName(ctx, gw, models.KeyFigureVolatility3M)
		if err != nil {
			return err
		}
		v, err := models.NewKeyFigureValue(0, on, vol, models.RefTypePortfolio, portfolio, kf)
		if err != nil {
			return err
		}
		if err := g.persist(ctx, gw, v); err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.log.Debugw("volatility computed", "portfolio", portfolioName, "date", on, "value", vol, "observations", len(logReturns))
	return result, nil
}

// CumulativeReturn is the compounded return from the start of a series up to
// and including Date. It encodes to JSON as a [date, value] pair.
type CumulativeReturn struct {
	Date  date.Date
	Value float64
}

// MarshalJSON implements json.Marshaler.
func (c CumulativeReturn) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Date, c.Value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CumulativeReturn) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("cumulative return: expected [date, value], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Date); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Value)
}

// CumulativeReturns computes the one-day returns for every day in
// [from, to] and compounds them, one entry per day in ascending order.
func (g *Generator) CumulativeReturns(ctx context.Context, portfolioName string, from, to date.Date) ([]CumulativeReturn, error) {
	returns, err := g.Return1DRange(ctx, portfolioName, from, to)
	if err != nil {
		return nil, err
	}
	compounded := Compound(valuesOf(returns))
	series := make([]CumulativeReturn, len(returns))
	for i, r := range returns {
		series[i] = CumulativeReturn{Date: r.Date(), Value: compounded[i]}
	}
	return series, nil
}

func (g *Generator) persist(ctx context.Context, gw store.Gateway, v *models.KeyFigureValue) error {
	var err error
	switch g.mode {
	case WriteModeUpsert:
		err = gw.UpsertKeyFigureValue(ctx, v)
	default:
		err = gw.InsertKeyFigureValue(ctx, v)
	}
	if err != nil {
		return err
	}
	metrics.KeyFigurePersisted(v.KeyFigure().Name(), string(g.mode))
	return nil
}

func portfolioByName(ctx context.Context, gw store.Gateway, name string) (*models.Portfolio, error) {
	p, ok, err := gw.GetPortfolioByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrPortfolioNotFound, fmt.Sprintf("portfolio %q not found", name))
	}
	return p, nil
}

func keyFigureByName(ctx context.Context, gw store.Gateway, name string) (*models.KeyFigure, error) {
	kf, ok, err := gw.GetKeyFigureByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrKeyFigureNotFound, fmt.Sprintf("key figure %q not found", name))
	}
	return kf, nil
}

func eachDay(ctx context.Context, from, to date.Date, fn func(date.Date) (*models.KeyFigureValue, error)) ([]*models.KeyFigureValue, error) {
	var out []*models.KeyFigureValue
	for d := range date.Range(from, to) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func valuesOf(values []*models.KeyFigureValue) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.Value()
	}
	return out
}
