package models

import (
	"fmt"

	"riskreport/internal/date"
)

// Position is a holding of quantity units of one instrument within one
// portfolio, valid over the closed interval [DateFrom, DateTo]. Quantity is a
// number of shares for equities and a notional amount for bonds.
type Position struct {
	identity
	portfolio  *Portfolio
	instrument Instrument
	dateFrom   date.Date
	dateTo     date.Date
	quantity   float64
}

// NewPosition creates an empty position to be filled in with the setters.
func NewPosition(id int64) (*Position, error) {
	p := &Position{}
	if err := p.SetID(id); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePosition creates a fully populated position, validating every field
// before returning it.
func CreatePosition(id int64, portfolio *Portfolio, instrument Instrument, from, to date.Date, quantity float64) (*Position, error) {
	p, err := NewPosition(id)
	if err != nil {
		return nil, err
	}
	if err := p.SetPortfolio(portfolio); err != nil {
		return nil, err
	}
	if err := p.SetInstrument(instrument); err != nil {
		return nil, err
	}
	if err := p.SetDateFrom(from); err != nil {
		return nil, err
	}
	if err := p.SetDateTo(to); err != nil {
		return nil, err
	}
	if err := p.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return p, nil
}

func (*Position) Kind() Kind { return KindPosition }

func (p *Position) Portfolio() *Portfolio  { return p.portfolio }
func (p *Position) Instrument() Instrument { return p.instrument }
func (p *Position) DateFrom() date.Date    { return p.dateFrom }
func (p *Position) DateTo() date.Date      { return p.dateTo }
func (p *Position) Quantity() float64      { return p.quantity }

// SetPortfolio sets the owning portfolio.
func (p *Position) SetPortfolio(portfolio *Portfolio) error {
	if portfolio == nil {
		return invalid("position %d: portfolio is required", p.id)
	}
	p.portfolio = portfolio
	return nil
}

// SetInstrument sets the held instrument.
func (p *Position) SetInstrument(instrument Instrument) error {
	if instrument == nil {
		return invalid("position %d: instrument is required", p.id)
	}
	p.instrument = instrument
	return nil
}

// SetDateFrom sets the first valid day. It must not be after DateTo when
// DateTo is already set.
func (p *Position) SetDateFrom(d date.Date) error {
	if d.IsZero() {
		return invalid("position %d: date_from is required", p.id)
	}
	if !p.dateTo.IsZero() && d.After(p.dateTo) {
		return invalid("position %d: date_from %s is after date_to %s", p.id, d, p.dateTo)
	}
	p.dateFrom = d
	return nil
}

// SetDateTo sets the last valid day. It must not be before DateFrom when
// DateFrom is already set.
func (p *Position) SetDateTo(d date.Date) error {
	if d.IsZero() {
		return invalid("position %d: date_to is required", p.id)
	}
	if !p.dateFrom.IsZero() && d.Before(p.dateFrom) {
		return invalid("position %d: date_to %s is before date_from %s", p.id, d, p.dateFrom)
	}
	p.dateTo = d
	return nil
}

// SetQuantity sets the signed quantity.
func (p *Position) SetQuantity(quantity float64) error {
	if err := checkFinite("quantity", quantity); err != nil {
		return err
	}
	p.quantity = quantity
	return nil
}

// Covers reports whether the position is valid on d.
func (p *Position) Covers(d date.Date) bool {
	return d.Between(p.dateFrom, p.dateTo)
}

// MarketValue returns the value of the position at the given price, using
// the formula of its instrument.
func (p *Position) MarketValue(price float64) (float64, error) {
	if p.instrument == nil {
		return 0, invalid("position %d: instrument is required to compute a market value", p.id)
	}
	return p.instrument.MarketValue(price, p.quantity), nil
}

func (p *Position) String() string {
	name := "<none>"
	if p.instrument != nil {
		name = p.instrument.Name()
	}
	return fmt.Sprintf("position %d (%s, %s..%s, quantity %g)", p.id, name, p.dateFrom, p.dateTo, p.quantity)
}
