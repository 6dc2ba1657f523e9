package services

import (
	"context"

	"riskreport/internal/date"
	"riskreport/internal/models"
	"riskreport/internal/pagination"
)

// KeyFigureValueQuery holds optional filter parameters for listing key figure
// values. Zero fields do not filter.
type KeyFigureValueQuery struct {
	KeyFigure   string
	PortfolioID int64 // shorthand for RefType Portfolio with that reference
	RefType     models.RefType
	ReferenceID int64
	From        date.Date
	To          date.Date
}

// CatalogServicer defines the read side of the stored risk data plus the
// purge of computed key figure values.
type CatalogServicer interface {
	ListPortfolios(ctx context.Context) ([]PortfolioView, error)
	ListPositions(ctx context.Context, portfolioID int64, on date.Date) ([]PositionView, error)
	ListInstruments(ctx context.Context) ([]InstrumentView, error)
	ListPrices(ctx context.Context, instrumentID int64, from, to date.Date, page pagination.PageRequest) (*pagination.PageResponse[PriceView], error)
	ListKeyFigures(ctx context.Context) ([]KeyFigureView, error)
	ListKeyFigureRefTypes(ctx context.Context) ([]RefTypeView, error)
	ListKeyFigureValues(ctx context.Context, query KeyFigureValueQuery, page pagination.PageRequest) (*pagination.PageResponse[KeyFigureValueView], error)
	PurgeKeyFigureValues(ctx context.Context) (int64, error)
}
