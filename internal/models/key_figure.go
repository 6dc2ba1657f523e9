package models

import (
	"fmt"
	"slices"

	"riskreport/internal/date"
)

// Names of the key figures the generator can compute.
const (
	KeyFigureMarketValue  = "Market value"
	KeyFigureReturn1D     = "Return (1D)"
	KeyFigureVolatility3M = "Volatility (3M, ann.)"
)

// SupportedKeyFigures lists the key figures a report may request, in the order
// they are evaluated.
var SupportedKeyFigures = []string{KeyFigureMarketValue, KeyFigureReturn1D, KeyFigureVolatility3M}

// IsSupportedKeyFigure reports whether name is one of SupportedKeyFigures.
func IsSupportedKeyFigure(name string) bool {
	return slices.Contains(SupportedKeyFigures, name)
}

// KeyFigure is a named metric definition.
type KeyFigure struct {
	named
}

// NewKeyFigure creates a validated KeyFigure.
func NewKeyFigure(id int64, name string) (*KeyFigure, error) {
	n, err := newNamed(id, name)
	if err != nil {
		return nil, err
	}
	return &KeyFigure{named: n}, nil
}

func (*KeyFigure) Kind() Kind { return KindKeyFigure }

// RefType is the kind of entity a key figure value is computed against. The
// numeric values match the KeyFigureRefType lookup table.
type RefType int64

const (
	RefTypeInstrument RefType = 1
	RefTypePosition   RefType = 2
	RefTypePortfolio  RefType = 3
)

// RefTypes lists every RefType in id order.
var RefTypes = []RefType{RefTypeInstrument, RefTypePosition, RefTypePortfolio}

func (r RefType) String() string {
	switch r {
	case RefTypeInstrument:
		return "Instrument"
	case RefTypePosition:
		return "Position"
	case RefTypePortfolio:
		return "Portfolio"
	default:
		return fmt.Sprintf("RefType(%d)", int64(r))
	}
}

// Valid reports whether r is a known ref type.
func (r RefType) Valid() bool { return slices.Contains(RefTypes, r) }

// accepts reports whether an entity of kind k may be referenced by r.
func (r RefType) accepts(k Kind) bool {
	switch r {
	case RefTypeInstrument:
		return k == KindEquity || k == KindBond
	case RefTypePosition:
		return k == KindPosition
	case RefTypePortfolio:
		return k == KindPortfolio
	default:
		return false
	}
}

// ParseRefType maps a KeyFigureRefType name to its RefType.
func ParseRefType(name string) (RefType, bool) {
	for _, r := range RefTypes {
		if r.String() == name {
			return r, true
		}
	}
	return 0, false
}

// KeyFigureValue is one computed key figure for one entity on one date.
type KeyFigureValue struct {
	identity
	date      date.Date
	value     float64
	refType   RefType
	reference Entity
	keyFigure *KeyFigure
}

// NewKeyFigureValue creates a validated KeyFigureValue. The reference must be
// an entity of the kind named by refType.
func NewKeyFigureValue(id int64, on date.Date, value float64, refType RefType, reference Entity, keyFigure *KeyFigure) (*KeyFigureValue, error) {
	v := &KeyFigureValue{}
	if err := v.SetID(id); err != nil {
		return nil, err
	}
	if on.IsZero() {
		return nil, invalid("key figure value: date is required")
	}
	if err := checkFinite("key figure value", value); err != nil {
		return nil, err
	}
	if !refType.Valid() {
		return nil, invalid("key figure value: unknown ref type %d", int64(refType))
	}
	if reference == nil {
		return nil, invalid("key figure value: reference entity is required")
	}
	if !refType.accepts(reference.Kind()) {
		return nil, invalid("key figure value: ref type %s cannot reference a %s", refType, reference.Kind())
	}
	if keyFigure == nil {
		return nil, invalid("key figure value: key figure is required")
	}
	v.date = on
	v.value = value
	v.refType = refType
	v.reference = reference
	v.keyFigure = keyFigure
	return v, nil
}

func (*KeyFigureValue) Kind() Kind { return KindKeyFigureValue }

func (v *KeyFigureValue) Date() date.Date       { return v.date }
func (v *KeyFigureValue) Value() float64        { return v.value }
func (v *KeyFigureValue) RefType() RefType      { return v.refType }
func (v *KeyFigureValue) Reference() Entity     { return v.reference }
func (v *KeyFigureValue) KeyFigure() *KeyFigure { return v.keyFigure }
