// Package date provides a calendar date with day granularity, used for
// positions, prices and key figure values.
package date

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

// Format is the ISO-8601 layout used to read and write dates.
const Format = "2006-01-02"

// Date represents a calendar day. The zero value is the unset date.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// FromTime returns the calendar day of t in its own location.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Today returns the current date in the local time zone.
func Today() Date { return FromTime(time.Now()) }

// Parse parses an ISO-8601 date such as "2024-05-31".
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", s, Format, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int             { return d.y }
func (d Date) Month() time.Month     { return d.m }
func (d Date) Day() int              { return d.d }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }
func (d Date) IsZero() bool          { return d == Date{} }
func (d Date) Add(days int) Date     { return New(d.y, d.m, d.d+days) }
func (d Date) Before(x Date) bool    { return d.Time().Before(x.Time()) }
func (d Date) After(x Date) bool     { return d.Time().After(x.Time()) }
func (d Date) Equal(x Date) bool     { return d == x }
func (d Date) StartOfYear() Date     { return New(d.y, time.January, 1) }
func (d Date) DaysUntil(x Date) int  { return int(x.Time().Sub(d.Time()) / (24 * time.Hour)) }

// Between reports whether d lies in the closed interval [from, to].
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Time().Format(Format) }

// LastBusinessDay returns the last weekday strictly before d. Saturdays and
// Sundays roll back to the preceding Friday, Mondays to the previous Friday.
func LastBusinessDay(d Date) Date {
	switch d.Weekday() {
	case time.Sunday:
		return d.Add(-2)
	case time.Monday:
		return d.Add(-3)
	default:
		return d.Add(-1)
	}
}

// Range yields every calendar day in [from, to]. It yields nothing when
// from is after to.
func Range(from, to Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := from; !d.After(to); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer, storing the date as YYYY-MM-DD.
func (d Date) Value() (driver.Value, error) { return d.String(), nil }

// Scan implements sql.Scanner. SQLite drivers hand back DATE columns either as
// text or as time.Time depending on the declared column type.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = New(v.Date())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		return fmt.Errorf("date: cannot scan NULL")
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(Format) {
		s = s[:len(Format)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType declares the column type used by gorm migrations.
func (Date) GormDataType() string { return "date" }
