package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("domain: invalid date, expected YYYY-MM-DD")

// ErrInvalidMonth возвращается при некорректном месяце
var ErrInvalidMonth = errors.New("domain: invalid month, expected YYYY-MM")

// Date is a calendar date without a time of day. The zero value is "no date".
// Date is comparable and can be used as a map key.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a Date, normalising overflowing components the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses "YYYY-MM-DD". Any time-of-day suffix ("T00:00:00Z", " 00:00:00+00")
// is discarded so stored values and user input compare equal.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateFormat) {
		s = s[:len(DateFormat)]
	}

	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// Time returns midnight of d in UTC.
func (d Date) Time() time.Time {
	return d.In(time.UTC)
}

// Weekday returns the day of week, Sunday = 0.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.year, d.month, d.day+n)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String returns the ISO form YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts an ISO date string, with or without a time suffix.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month identifies a calendar month, used by calendar views and list filters.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month d belongs to.
func MonthOf(d Date) Month {
	return Month{Year: d.year, Month: d.month}
}

// FirstDay returns the first date of the month.
func (m Month) FirstDay() Date {
	return NewDate(m.Year, m.Month, 1)
}

// LastDay returns the last date of the month.
func (m Month) LastDay() Date {
	return NewDate(m.Year, m.Month+1, 0)
}

// String returns "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
