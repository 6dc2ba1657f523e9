package store

import (
	"context"

	"riskreport/internal/date"
	"riskreport/internal/models"
)

// PositionFilter selects positions. Zero fields do not filter.
type PositionFilter struct {
	// Date keeps positions whose [DateFrom, DateTo] interval contains it.
	Date date.Date
	// Portfolio keeps positions belonging to the portfolio with the same id.
	Portfolio *models.Portfolio
}

// PriceFilter selects prices. Zero fields do not filter; From and To are
// inclusive and independent of each other.
type PriceFilter struct {
	Instrument models.Instrument
	From       date.Date
	To         date.Date
}

// KeyFigureValueFilter selects key figure values. Zero fields do not filter.
type KeyFigureValueFilter struct {
	KeyFigure   *models.KeyFigure
	RefType     models.RefType
	ReferenceID int64
	From        date.Date
	To          date.Date
}

// Gateway translates between table rows and entities. Lookups with no match
// return ok == false and a nil error. Every list call reads the full table and
// resolves references afresh; nothing is cached between calls.
type Gateway interface {
	ListInstrumentTypes(ctx context.Context) ([]*models.InstrumentType, error)

	ListInstruments(ctx context.Context) ([]models.Instrument, error)
	GetInstrument(ctx context.Context, id int64) (models.Instrument, bool, error)
	GetInstrumentByName(ctx context.Context, name string) (models.Instrument, bool, error)

	ListPortfolios(ctx context.Context) ([]*models.Portfolio, error)
	GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, bool, error)
	GetPortfolioByName(ctx context.Context, name string) (*models.Portfolio, bool, error)

	ListPositions(ctx context.Context, filter PositionFilter) ([]*models.Position, error)
	ListPrices(ctx context.Context, filter PriceFilter) ([]*models.Price, error)

	ListKeyFigures(ctx context.Context) ([]*models.KeyFigure, error)
	GetKeyFigure(ctx context.Context, id int64) (*models.KeyFigure, bool, error)
	GetKeyFigureByName(ctx context.Context, name string) (*models.KeyFigure, bool, error)
	ListKeyFigureRefTypes(ctx context.Context) ([]models.RefType, error)

	ListKeyFigureValues(ctx context.Context, filter KeyFigureValueFilter) ([]*models.KeyFigureValue, error)
	// InsertKeyFigureValue stores v as a new row and assigns the new id to v.
	InsertKeyFigureValue(ctx context.Context, v *models.KeyFigureValue) error
	// UpsertKeyFigureValue updates the row with the same date, ref type,
	// reference and key figure, or inserts one. The row id is assigned to v.
	UpsertKeyFigureValue(ctx context.Context, v *models.KeyFigureValue) error
	DeleteKeyFigureValues(ctx context.Context) (int64, error)
}

// Connector hands out a Gateway bound to one database connection for the
// duration of fn. The connection is released when fn returns, whether or not
// it failed.
type Connector interface {
	WithConnection(ctx context.Context, fn func(Gateway) error) error
}
