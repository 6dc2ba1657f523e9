package services

import (
	"riskreport/internal/date"
	"riskreport/internal/models"
)

// PortfolioView is the API representation of a portfolio.
type PortfolioView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// InstrumentView is the API representation of an instrument.
type InstrumentView struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	InstrumentTypeID int64  `json:"instrument_type_id"`
	InstrumentType   string `json:"instrument_type"`
}

// PositionView is the API representation of a position.
type PositionView struct {
	ID           int64     `json:"id"`
	PortfolioID  int64     `json:"portfolio_id"`
	InstrumentID int64     `json:"instrument_id"`
	Instrument   string    `json:"instrument"`
	DateFrom     date.Date `json:"date_from"`
	DateTo       date.Date `json:"date_to"`
	Quantity     float64   `json:"quantity"`
}

// PriceView is the API representation of a price.
type PriceView struct {
	ID           int64     `json:"id"`
	InstrumentID int64     `json:"instrument_id"`
	Date         date.Date `json:"price_date"`
	Price        float64   `json:"price"`
}

// KeyFigureView is the API representation of a key figure.
type KeyFigureView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Supported bool   `json:"supported"`
}

// RefTypeView is the API representation of a key figure ref type.
type RefTypeView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// KeyFigureValueView is the API representation of a computed key figure value.
type KeyFigureValueView struct {
	ID          int64     `json:"id"`
	Date        date.Date `json:"key_figure_date"`
	Value       float64   `json:"value"`
	KeyFigure   string    `json:"key_figure"`
	RefType     string    `json:"ref_type"`
	ReferenceID int64     `json:"reference_entity_id"`
	Reference   string    `json:"reference"`
}

func instrumentTypeName(id models.InstrumentTypeID) string {
	switch id {
	case models.InstrumentTypeEquity:
		return string(models.KindEquity)
	case models.InstrumentTypeBond:
		return string(models.KindBond)
	}
	return ""
}

func newInstrumentView(i models.Instrument) InstrumentView {
	return InstrumentView{
		ID:               i.ID(),
		Name:             i.Name(),
		InstrumentTypeID: int64(i.TypeID()),
		InstrumentType:   instrumentTypeName(i.TypeID()),
	}
}

func newPositionView(p *models.Position) PositionView {
	return PositionView{
		ID:           p.ID(),
		PortfolioID:  p.Portfolio().ID(),
		InstrumentID: p.Instrument().ID(),
		Instrument:   p.Instrument().Name(),
		DateFrom:     p.DateFrom(),
		DateTo:       p.DateTo(),
		Quantity:     p.Quantity(),
	}
}

func newKeyFigureValueView(v *models.KeyFigureValue) KeyFigureValueView {
	return KeyFigureValueView{
		ID:          v.ID(),
		Date:        v.Date(),
		Value:       v.Value(),
		KeyFigure:   v.KeyFigure().Name(),
		RefType:     v.RefType().String(),
		ReferenceID: v.Reference().ID(),
		Reference:   describe(v.Reference()),
	}
}

// describe names an entity for display: its name when it has one, otherwise
// its string form.
func describe(e models.Entity) string {
	switch e := e.(type) {
	case interface{ Name() string }:
		return e.Name()
	case interface{ String() string }:
		return e.String()
	}
	return string(e.Kind())
}
