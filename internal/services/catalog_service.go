package services

import (
	"context"
	"fmt"

	"riskreport/internal/date"
	apperrors "riskreport/internal/errors"
	"riskreport/internal/models"
	"riskreport/internal/pagination"
	"riskreport/internal/store"
)

// catalogService serves stored risk data through the store gateway.
type catalogService struct {
	conn store.Connector
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(conn store.Connector) CatalogServicer {
	return &catalogService{conn: conn}
}

// ListPortfolios returns all portfolios ordered by id.
func (s *catalogService) ListPortfolios(ctx context.Context) ([]PortfolioView, error) {
	var out []PortfolioView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		portfolios, err := gw.ListPortfolios(ctx)
		if err != nil {
			return err
		}
		out = make([]PortfolioView, 0, len(portfolios))
		for _, p := range portfolios {
			out = append(out, PortfolioView{ID: p.ID(), Name: p.Name()})
		}
		return nil
	})
	return out, err
}

// ListPositions returns the positions of a portfolio, restricted to those
// held on the given date unless it is zero.
func (s *catalogService) ListPositions(ctx context.Context, portfolioID int64, on date.Date) ([]PositionView, error) {
	var out []PositionView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		portfolio, ok, err := gw.GetPortfolio(ctx, portfolioID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.WithMessage(apperrors.ErrPortfolioNotFound, fmt.Sprintf("portfolio %d not found", portfolioID))
		}
		positions, err := gw.ListPositions(ctx, store.PositionFilter{Date: on, Portfolio: portfolio})
		if err != nil {
			return err
		}
		out = make([]PositionView, 0, len(positions))
		for _, p := range positions {
			out = append(out, newPositionView(p))
		}
		return nil
	})
	return out, err
}

// ListInstruments returns all instruments ordered by id.
func (s *catalogService) ListInstruments(ctx context.Context) ([]InstrumentView, error) {
	var out []InstrumentView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		instruments, err := gw.ListInstruments(ctx)
		if err != nil {
			return err
		}
		out = make([]InstrumentView, 0, len(instruments))
		for _, i := range instruments {
			out = append(out, newInstrumentView(i))
		}
		return nil
	})
	return out, err
}

// ListPrices returns a page of an instrument's prices within [from, to].
func (s *catalogService) ListPrices(ctx context.Context, instrumentID int64, from, to date.Date, page pagination.PageRequest) (*pagination.PageResponse[PriceView], error) {
	var views []PriceView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		instrument, ok, err := gw.GetInstrument(ctx, instrumentID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.WithMessage(apperrors.ErrInstrumentNotFound, fmt.Sprintf("instrument %d not found", instrumentID))
		}
		prices, err := gw.ListPrices(ctx, store.PriceFilter{Instrument: instrument, From: from, To: to})
		if err != nil {
			return err
		}
		views = make([]PriceView, 0, len(prices))
		for _, p := range prices {
			views = append(views, PriceView{ID: p.ID(), InstrumentID: instrumentID, Date: p.Date(), Price: p.Value()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := pagination.Slice(views, page)
	return &resp, nil
}

// ListKeyFigures returns all key figures and whether they can be computed.
func (s *catalogService) ListKeyFigures(ctx context.Context) ([]KeyFigureView, error) {
	var out []KeyFigureView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		figures, err := gw.ListKeyFigures(ctx)
		if err != nil {
			return err
		}
		out = make([]KeyFigureView, 0, len(figures))
		for _, kf := range figures {
			out = append(out, KeyFigureView{ID: kf.ID(), Name: kf.Name(), Supported: models.IsSupportedKeyFigure(kf.Name())})
		}
		return nil
	})
	return out, err
}

// ListKeyFigureRefTypes returns the ref types stored in the lookup table.
func (s *catalogService) ListKeyFigureRefTypes(ctx context.Context) ([]RefTypeView, error) {
	var out []RefTypeView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		refTypes, err := gw.ListKeyFigureRefTypes(ctx)
		if err != nil {
			return err
		}
		out = make([]RefTypeView, 0, len(refTypes))
		for _, r := range refTypes {
			out = append(out, RefTypeView{ID: int64(r), Name: r.String()})
		}
		return nil
	})
	return out, err
}

// ListKeyFigureValues returns a page of stored key figure values. A portfolio
// filter restricts the result to values computed against that portfolio.
func (s *catalogService) ListKeyFigureValues(ctx context.Context, query KeyFigureValueQuery, page pagination.PageRequest) (*pagination.PageResponse[KeyFigureValueView], error) {
	var views []KeyFigureValueView
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		filter := store.KeyFigureValueFilter{From: query.From, To: query.To}
		if query.KeyFigure != "" {
			kf, ok, err := gw.GetKeyFigureByName(ctx, query.KeyFigure)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.WithMessage(apperrors.ErrKeyFigureNotFound, fmt.Sprintf("key figure %q not found", query.KeyFigure))
			}
			filter.KeyFigure = kf
		}
		filter.RefType, filter.ReferenceID = query.RefType, query.ReferenceID
		if query.PortfolioID != 0 {
			filter.RefType, filter.ReferenceID = models.RefTypePortfolio, query.PortfolioID
		}
		values, err := gw.ListKeyFigureValues(ctx, filter)
		if err != nil {
			return err
		}
		views = make([]KeyFigureValueView, 0, len(values))
		for _, v := range values {
			views = append(views, newKeyFigureValueView(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := pagination.Slice(views, page)
	return &resp, nil
}

// PurgeKeyFigureValues deletes every stored key figure value and returns how
// many rows were removed.
func (s *catalogService) PurgeKeyFigureValues(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn.WithConnection(ctx, func(gw store.Gateway) error {
		var err error
		n, err = gw.DeleteKeyFigureValues(ctx)
		return err
	})
	return n, err
}
