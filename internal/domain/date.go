package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. All arithmetic is
// in whole calendar days; the zero value is the zero date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(raw string) (Date, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, raw)
	}

	return Date{t: parsed}, nil
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(value time.Time) Date {
	year, month, day := value.UTC().Date()
	return NewDate(year, month, day)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// Weekday returns the day-of-week label, Sunday through Saturday.
func (d Date) Weekday() string {
	return d.t.Weekday().String()
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// ProjectEndDate returns begin plus durationDays calendar days.
func ProjectEndDate(begin Date, durationDays int) Date {
	return begin.AddDays(durationDays)
}

// ZoneLengthDays returns the absolute whole-day count between two dates.
func ZoneLengthDays(begin, end Date) int {
	days := int(end.t.Sub(begin.t).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
