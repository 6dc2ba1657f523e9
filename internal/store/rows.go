package store

import "riskreport/internal/date"

// Row types mirror the tables one to one. They are exported so that test
// helpers can migrate and seed an in-memory database with gorm.

type InstrumentTypeRow struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;not null"`
}

func (InstrumentTypeRow) TableName() string { return "InstrumentType" }

type InstrumentRow struct {
	ID               int64  `gorm:"column:id;primaryKey"`
	Name             string `gorm:"column:name;not null"`
	InstrumentTypeID int64  `gorm:"column:instrument_type_id;not null"`
}

func (InstrumentRow) TableName() string { return "Instrument" }

type PortfolioRow struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;not null"`
}

func (PortfolioRow) TableName() string { return "Portfolio" }

type PositionRow struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	DateFrom     date.Date `gorm:"column:date_from;not null"`
	DateTo       date.Date `gorm:"column:date_to;not null"`
	PortfolioID  int64     `gorm:"column:portfolio_id;not null"`
	InstrumentID int64     `gorm:"column:instrument_id;not null"`
	Quantity     float64   `gorm:"column:quantity;not null"`
}

func (PositionRow) TableName() string { return "Position" }

type PriceRow struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	InstrumentID int64     `gorm:"column:instrument_id;not null"`
	PriceDate    date.Date `gorm:"column:price_date;not null"`
	Price        float64   `gorm:"column:price;not null"`
}

func (PriceRow) TableName() string { return "Prices" }

type KeyFigureRow struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;not null"`
}

func (KeyFigureRow) TableName() string { return "KeyFigure" }

type KeyFigureRefTypeRow struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;not null"`
}

func (KeyFigureRefTypeRow) TableName() string { return "KeyFigureRefType" }

type KeyFigureValueRow struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	KeyFigureDate      date.Date `gorm:"column:key_figure_date;not null"`
	Value              float64   `gorm:"column:value;not null"`
	KeyFigureRefTypeID int64     `gorm:"column:key_figure_ref_type_id;not null"`
	ReferenceEntityID  int64     `gorm:"column:reference_entity_id;not null"`
	KeyFigureID        int64     `gorm:"column:key_figure_id;not null"`
}

func (KeyFigureValueRow) TableName() string { return "KeyFigureValue" }

// AllRows lists every row type in dependency order.
var AllRows = []any{
	&InstrumentTypeRow{},
	&InstrumentRow{},
	&PortfolioRow{},
	&PositionRow{},
	&PriceRow{},
	&KeyFigureRow{},
	&KeyFigureRefTypeRow{},
	&KeyFigureValueRow{},
}
