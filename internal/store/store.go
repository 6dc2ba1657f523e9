// Package store is the gateway between the relational tables and the entity
// model. It reads whole tables, resolves foreign keys into entities and
// filters in memory. It is the only package that touches persisted state.
package store

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"gorm.io/gorm"

	apperrors "riskreport/internal/errors"
	"riskreport/internal/models"
)

// Store opens gateways on a gorm database.
type Store struct {
	db *gorm.DB
}

// New creates a Store backed by db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithConnection pins one connection from the pool for the duration of fn.
func (s *Store) WithConnection(ctx context.Context, fn func(Gateway) error) error {
	return s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(&gateway{db: conn})
	})
}

// gateway implements Gateway on top of a single gorm session.
type gateway struct {
	db *gorm.DB
}

func (g *gateway) scan(ctx context.Context, dest any) error {
	if err := g.db.WithContext(ctx).Order("id ASC").Find(dest).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func dataIntegrity(format string, args ...any) error {
	return apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf(format, args...))
}

func (g *gateway) ListInstrumentTypes(ctx context.Context) ([]*models.InstrumentType, error) {
	var rows []InstrumentTypeRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	types := make([]*models.InstrumentType, 0, len(rows))
	for _, r := range rows {
		t, err := models.NewInstrumentType(r.ID, r.Name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}
		types = append(types, t)
	}
	return types, nil
}

func (g *gateway) ListInstruments(ctx context.Context) ([]models.Instrument, error) {
	var rows []InstrumentRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	instruments := make([]models.Instrument, 0, len(rows))
	for _, r := range rows {
		inst, err := models.NewInstrument(r.ID, r.Name, models.InstrumentTypeID(r.InstrumentTypeID))
		if err != nil {
			if errors.Is(err, apperrors.ErrUnknownInstrumentType) {
				return nil, err
			}
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}
		instruments = append(instruments, inst)
	}
	return instruments, nil
}

func (g *gateway) GetInstrument(ctx context.Context, id int64) (models.Instrument, bool, error) {
	return findFirst(ctx, g.ListInstruments, func(i models.Instrument) bool { return i.ID() == id })
}

func (g *gateway) GetInstrumentByName(ctx context.Context, name string) (models.Instrument, bool, error) {
	return findFirst(ctx, g.ListInstruments, func(i models.Instrument) bool { return i.Name() == name })
}

func (g *gateway) ListPortfolios(ctx context.Context) ([]*models.Portfolio, error) {
	var rows []PortfolioRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	portfolios := make([]*models.Portfolio, 0, len(rows))
	for _, r := range rows {
		p, err := models.NewPortfolio(r.ID, r.Name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, nil
}

func (g *gateway) GetPortfolio(ctx context.Context, id int64) (*models.Portfolio, bool, error) {
	return findFirst(ctx, g.ListPortfolios, func(p *models.Portfolio) bool { return p.ID() == id })
}

func (g *gateway) GetPortfolioByName(ctx context.Context, name string) (*models.Portfolio, bool, error) {
	return findFirst(ctx, g.ListPortfolios, func(p *models.Portfolio) bool { return p.Name() == name })
}

func (g *gateway) ListPositions(ctx context.Context, filter PositionFilter) ([]*models.Position, error) {
	var rows []PositionRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*models.Position{}, nil
	}

	portfolios, err := g.ListPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	instruments, err := g.ListInstruments(ctx)
	if err != nil {
		return nil, err
	}
	portfolioByID := indexByID(portfolios)
	instrumentByID := indexByID(instruments)

	positions := make([]*models.Position, 0, len(rows))
	for _, r := range rows {
		portfolio, ok := portfolioByID[r.PortfolioID]
		if !ok {
			return nil, dataIntegrity("position %d references unknown portfolio %d", r.ID, r.PortfolioID)
		}
		instrument, ok := instrumentByID[r.InstrumentID]
		if !ok {
			return nil, dataIntegrity("position %d references unknown instrument %d", r.ID, r.InstrumentID)
		}
		pos, err := models.CreatePosition(r.ID, portfolio, instrument, r.DateFrom, r.DateTo, r.Quantity)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}

		if !filter.Date.IsZero() && !pos.Covers(filter.Date) {
			continue
		}
		if filter.Portfolio != nil && pos.Portfolio().ID() != filter.Portfolio.ID() {
			continue
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (g *gateway) ListPrices(ctx context.Context, filter PriceFilter) ([]*models.Price, error) {
	var rows []PriceRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*models.Price{}, nil
	}

	instruments, err := g.ListInstruments(ctx)
	if err != nil {
		return nil, err
	}
	instrumentByID := indexByID(instruments)

	prices := make([]*models.Price, 0)
	for _, r := range rows {
		if filter.Instrument != nil && r.InstrumentID != filter.Instrument.ID() {
			continue
		}
		if !filter.From.IsZero() && r.PriceDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.PriceDate.After(filter.To) {
			continue
		}
		instrument, ok := instrumentByID[r.InstrumentID]
		if !ok {
			return nil, dataIntegrity("price %d references unknown instrument %d", r.ID, r.InstrumentID)
		}
		p, err := models.NewPrice(r.ID, instrument, r.PriceDate, r.Price)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

func (g *gateway) ListKeyFigures(ctx context.Context) ([]*models.KeyFigure, error) {
	var rows []KeyFigureRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	figures := make([]*models.KeyFigure, 0, len(rows))
	for _, r := range rows {
		kf, err := models.NewKeyFigure(r.ID, r.Name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}
		figures = append(figures, kf)
	}
	return figures, nil
}

func (g *gateway) GetKeyFigure(ctx context.Context, id int64) (*models.KeyFigure, bool, error) {
	return findFirst(ctx, g.ListKeyFigures, func(k *models.KeyFigure) bool { return k.ID() == id })
}

func (g *gateway) GetKeyFigureByName(ctx context.Context, name string) (*models.KeyFigure, bool, error) {
	return findFirst(ctx, g.ListKeyFigures, func(k *models.KeyFigure) bool { return k.Name() == name })
}

// ListKeyFigureRefTypes reads the lookup table and checks that it agrees with
// the RefType enumeration.
func (g *gateway) ListKeyFigureRefTypes(ctx context.Context) ([]models.RefType, error) {
	var rows []KeyFigureRefTypeRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	refTypes := make([]models.RefType, 0, len(rows))
	for _, r := range rows {
		rt := models.RefType(r.ID)
		if !rt.Valid() || rt.String() != r.Name {
			return nil, dataIntegrity("key figure ref type %d %q does not match a known ref type", r.ID, r.Name)
		}
		refTypes = append(refTypes, rt)
	}
	return refTypes, nil
}

func (g *gateway) ListKeyFigureValues(ctx context.Context, filter KeyFigureValueFilter) ([]*models.KeyFigureValue, error) {
	var rows []KeyFigureValueRow
	if err := g.scan(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*models.KeyFigureValue{}, nil
	}

	figures, err := g.ListKeyFigures(ctx)
	if err != nil {
		return nil, err
	}
	figureByID := indexByID(figures)
	refs := &referenceResolver{g: g}

	values := make([]*models.KeyFigureValue, 0)
	for _, r := range rows {
		if filter.KeyFigure != nil && r.KeyFigureID != filter.KeyFigure.ID() {
			continue
		}
		if filter.RefType != 0 && r.KeyFigureRefTypeID != int64(filter.RefType) {
			continue
		}
		if filter.ReferenceID != 0 && r.ReferenceEntityID != filter.ReferenceID {
			continue
		}
		if !filter.From.IsZero() && r.KeyFigureDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.KeyFigureDate.After(filter.To) {
			continue
		}

		kf, ok := figureByID[r.KeyFigureID]
		if !ok {
			return nil, dataIntegrity("key figure value %d references unknown key figure %d", r.ID, r.KeyFigureID)
		}
		refType := models.RefType(r.KeyFigureRefTypeID)
		reference, err := refs.resolve(ctx, refType, r.ReferenceEntityID)
		if err != nil {
			return nil, err
		}
		v, err := models.NewKeyFigureValue(r.ID, r.KeyFigureDate, r.Value, refType, reference, kf)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func (g *gateway) InsertKeyFigureValue(ctx context.Context, v *models.KeyFigureValue) error {
	row, err := toKeyFigureValueRow(v)
	if err != nil {
		return err
	}
	row.ID = 0

	res := g.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, res.Error)
	}
	if res.RowsAffected != 1 {
		return apperrors.WithMessage(apperrors.ErrPersistence,
			fmt.Sprintf("insert of key figure value affected %d rows, expected 1", res.RowsAffected))
	}
	return v.SetID(row.ID)
}

func (g *gateway) UpsertKeyFigureValue(ctx context.Context, v *models.KeyFigureValue) error {
	row, err := toKeyFigureValueRow(v)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockNaturalKey(tx, row); err != nil {
			return err
		}

		var existing KeyFigureValueRow
		err := tx.Where("key_figure_date = ? AND key_figure_ref_type_id = ? AND reference_entity_id = ? AND key_figure_id = ?",
			row.KeyFigureDate, row.KeyFigureRefTypeID, row.ReferenceEntityID, row.KeyFigureID).
			Order("id ASC").
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (&gateway{db: tx}).InsertKeyFigureValue(ctx, v)
		}
		if err != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, err)
		}

		res := tx.Model(&existing).Update("value", row.Value)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrPersistence, res.Error)
		}
		if res.RowsAffected > 1 {
			return apperrors.WithMessage(apperrors.ErrPersistence,
				fmt.Sprintf("update of key figure value %d affected %d rows", existing.ID, res.RowsAffected))
		}
		return v.SetID(existing.ID)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}

// lockNaturalKey takes a transaction-scoped advisory lock on PostgreSQL so
// that concurrent upserts of the same value cannot both insert. SQLite
// already allows a single writer.
func lockNaturalKey(tx *gorm.DB, row KeyFigureValueRow) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", naturalKeyHash(row)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}

func naturalKeyHash(row KeyFigureValueRow) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|%d", row.KeyFigureDate, row.KeyFigureRefTypeID, row.ReferenceEntityID, row.KeyFigureID)
	return int64(h.Sum64())
}

func (g *gateway) DeleteKeyFigureValues(ctx context.Context) (int64, error) {
	res := g.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&KeyFigureValueRow{})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrPersistence, res.Error)
	}
	return res.RowsAffected, nil
}

func toKeyFigureValueRow(v *models.KeyFigureValue) (KeyFigureValueRow, error) {
	if v == nil {
		return KeyFigureValueRow{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "key figure value is required")
	}
	if v.Reference().ID() == 0 || v.KeyFigure().ID() == 0 {
		return KeyFigureValueRow{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"key figure value must reference a stored entity and a stored key figure")
	}
	return KeyFigureValueRow{
		ID:                 v.ID(),
		KeyFigureDate:      v.Date(),
		Value:              v.Value(),
		KeyFigureRefTypeID: int64(v.RefType()),
		ReferenceEntityID:  v.Reference().ID(),
		KeyFigureID:        v.KeyFigure().ID(),
	}, nil
}

// referenceResolver loads each referenced table at most once per list call.
type referenceResolver struct {
	g           *gateway
	instruments map[int64]models.Instrument
	positions   map[int64]*models.Position
	portfolios  map[int64]*models.Portfolio
}

func (r *referenceResolver) resolve(ctx context.Context, refType models.RefType, id int64) (models.Entity, error) {
	var (
		entity models.Entity
		found  bool
	)
	switch refType {
	case models.RefTypeInstrument:
		if r.instruments == nil {
			list, err := r.g.ListInstruments(ctx)
			if err != nil {
				return nil, err
			}
			r.instruments = indexByID(list)
		}
		entity, found = r.instruments[id]
	case models.RefTypePosition:
		if r.positions == nil {
			list, err := r.g.ListPositions(ctx, PositionFilter{})
			if err != nil {
				return nil, err
			}
			r.positions = indexByID(list)
		}
		entity, found = r.positions[id]
	case models.RefTypePortfolio:
		if r.portfolios == nil {
			list, err := r.g.ListPortfolios(ctx)
			if err != nil {
				return nil, err
			}
			r.portfolios = indexByID(list)
		}
		entity, found = r.portfolios[id]
	default:
		return nil, dataIntegrity("unknown key figure ref type %d", int64(refType))
	}
	if !found {
		return nil, dataIntegrity("%s %d referenced by a key figure value does not exist", refType, id)
	}
	return entity, nil
}

func indexByID[E models.Entity](entities []E) map[int64]E {
	m := make(map[int64]E, len(entities))
	for _, e := range entities {
		if _, dup := m[e.ID()]; !dup {
			m[e.ID()] = e
		}
	}
	return m
}

func findFirst[E any](ctx context.Context, list func(context.Context) ([]E, error), match func(E) bool) (E, bool, error) {
	var zero E
	all, err := list(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, e := range all {
		if match(e) {
			return e, true, nil
		}
	}
	return zero, false, nil
}
