package models

import "riskreport/internal/date"

// Price is the price of an instrument on a date: a unit price for equities,
// a dirty price in percent of par for bonds.
type Price struct {
	identity
	instrument Instrument
	date       date.Date
	value      float64
}

// NewPrice creates a validated Price.
func NewPrice(id int64, instrument Instrument, on date.Date, value float64) (*Price, error) {
	p := &Price{}
	if err := p.SetID(id); err != nil {
		return nil, err
	}
	if err := p.SetInstrument(instrument); err != nil {
		return nil, err
	}
	if err := p.SetDate(on); err != nil {
		return nil, err
	}
	if err := p.SetValue(value); err != nil {
		return nil, err
	}
	return p, nil
}

func (*Price) Kind() Kind { return KindPrice }

func (p *Price) Instrument() Instrument { return p.instrument }
func (p *Price) Date() date.Date        { return p.date }
func (p *Price) Value() float64         { return p.value }

func (p *Price) SetInstrument(instrument Instrument) error {
	if instrument == nil {
		return invalid("price %d: instrument is required", p.id)
	}
	p.instrument = instrument
	return nil
}

func (p *Price) SetDate(on date.Date) error {
	if on.IsZero() {
		return invalid("price %d: date is required", p.id)
	}
	p.date = on
	return nil
}

func (p *Price) SetValue(value float64) error {
	if err := checkFinite("price", value); err != nil {
		return err
	}
	p.value = value
	return nil
}
