// Package models defines the financial entities used to compute risk figures:
// instruments, portfolios, positions, prices and key figures.
//
// Entities keep their fields unexported and validate every value at
// construction and on each setter, so an entity is never observed in a
// partially valid state. Validation failures are *errors.AppError values with
// code INVALID_INPUT.
package models

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"

	apperrors "riskreport/internal/errors"
)

// Kind identifies the concrete type of an entity.
type Kind string

const (
	KindInstrumentType Kind = "InstrumentType"
	KindEquity         Kind = "Equity"
	KindBond           Kind = "Bond"
	KindPortfolio      Kind = "Portfolio"
	KindPosition       Kind = "Position"
	KindPrice          Kind = "Price"
	KindKeyFigure      Kind = "KeyFigure"
	KindKeyFigureValue Kind = "KeyFigureValue"
)

// Entity is implemented by every persisted type. An ID of 0 marks an
// instance that has not been stored yet.
type Entity interface {
	ID() int64
	Kind() Kind
}

// Same reports whether a and b denote the same entity: same concrete kind and
// same id. Names and other attributes are ignored. A nil interface and a nil
// pointer both count as no entity.
func Same(a, b Entity) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a.Kind() == b.Kind() && a.ID() == b.ID()
}

func isNil(e Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkVar validates a single value against a validator tag.
func checkVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s is invalid: %v (rule %q)", field, value, tag))
	}
	return nil
}

func checkFinite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s must be a finite number, got %v", field, value))
	}
	return nil
}

func invalid(format string, args ...any) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// identity carries the id shared by all entities.
type identity struct {
	id int64
}

// ID returns the entity id.
func (e *identity) ID() int64 { return e.id }

// SetID sets the entity id. Negative ids are rejected.
func (e *identity) SetID(id int64) error {
	if err := checkVar("id", id, "gte=0"); err != nil {
		return err
	}
	e.id = id
	return nil
}

// named carries the id and the non-empty name of named entities.
type named struct {
	identity
	name string
}

func newNamed(id int64, name string) (named, error) {
	var n named
	if err := n.SetID(id); err != nil {
		return named{}, err
	}
	if err := n.SetName(name); err != nil {
		return named{}, err
	}
	return n, nil
}

// Name returns the entity name.
func (e *named) Name() string { return e.name }

// SetName sets the entity name. Empty names are rejected.
func (e *named) SetName(name string) error {
	if err := checkVar("name", name, "required"); err != nil {
		return err
	}
	e.name = name
	return nil
}
