package models

import (
	"fmt"

	apperrors "riskreport/internal/errors"
)

// InstrumentTypeID is the discriminator stored in Instrument.instrument_type_id.
type InstrumentTypeID int64

const (
	InstrumentTypeEquity InstrumentTypeID = 1
	InstrumentTypeBond   InstrumentTypeID = 2
)

// InstrumentType is a row of the InstrumentType lookup table.
type InstrumentType struct {
	named
}

// NewInstrumentType creates a validated InstrumentType.
func NewInstrumentType(id int64, name string) (*InstrumentType, error) {
	n, err := newNamed(id, name)
	if err != nil {
		return nil, err
	}
	return &InstrumentType{named: n}, nil
}

func (*InstrumentType) Kind() Kind { return KindInstrumentType }

// Instrument is a tradable instrument. The set of implementations is closed:
// *Equity and *Bond.
type Instrument interface {
	Entity
	Name() string
	SetName(name string) error
	TypeID() InstrumentTypeID
	// MarketValue returns the value of holding quantity units at price.
	MarketValue(price, quantity float64) float64
	instrument()
}

// NewInstrument creates the instrument variant matching typeID. An
// unrecognized discriminator is a data-integrity error.
func NewInstrument(id int64, name string, typeID InstrumentTypeID) (Instrument, error) {
	switch typeID {
	case InstrumentTypeEquity:
		e, err := NewEquity(id, name)
		if err != nil {
			return nil, err
		}
		return e, nil
	case InstrumentTypeBond:
		b, err := NewBond(id, name)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrUnknownInstrumentType,
			fmt.Sprintf("instrument_type_id %d of instrument %d is not supported", typeID, id))
	}
}

// Equity is a share holding; quantity is a number of shares.
type Equity struct {
	named
}

// NewEquity creates a validated Equity.
func NewEquity(id int64, name string) (*Equity, error) {
	n, err := newNamed(id, name)
	if err != nil {
		return nil, err
	}
	return &Equity{named: n}, nil
}

func (*Equity) Kind() Kind               { return KindEquity }
func (*Equity) TypeID() InstrumentTypeID { return InstrumentTypeEquity }
func (*Equity) instrument()              {}

// MarketValue is price × quantity.
func (*Equity) MarketValue(price, quantity float64) float64 {
	return price * quantity
}

// Bond is a fixed-rate bond; quantity is the notional amount and prices are
// dirty prices quoted in percent of par.
type Bond struct {
	named
}

// NewBond creates a validated Bond.
func NewBond(id int64, name string) (*Bond, error) {
	n, err := newNamed(id, name)
	if err != nil {
		return nil, err
	}
	return &Bond{named: n}, nil
}

func (*Bond) Kind() Kind               { return KindBond }
func (*Bond) TypeID() InstrumentTypeID { return InstrumentTypeBond }
func (*Bond) instrument()              {}

// MarketValue is price / 100 × notional.
func (*Bond) MarketValue(price, notional float64) float64 {
	return price / 100.0 * notional
}
