// Package dateparse resolves the date phrases the speech platform emits in
// its date slots: concrete days, ISO weeks, weekends, months, seasons,
// years, and decades all become concrete calendar-date windows.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
)

var (
	weekPattern   = regexp.MustCompile(`^(\d{4})-W(\d{1,2})(-WE)?$`)
	monthPattern  = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	seasonPattern = regexp.MustCompile(`^(\d{4})-(WI|SP|SU|FA)$`)
	yearPattern   = regexp.MustCompile(`^\d{4}$`)
	decadePattern = regexp.MustCompile(`^(\d{3})X$`)
)

type Parser struct{}

var _ ports.DateParser = Parser{}

func New() Parser {
	return Parser{}
}

func (Parser) Parse(phrase string) (ports.Window, error) {
	if phrase == "" {
		return ports.Window{}, fmt.Errorf("%w: empty date phrase", domain.ErrBadDate)
	}

	if match := weekPattern.FindStringSubmatch(phrase); match != nil {
		return weekWindow(match)
	}
	if match := monthPattern.FindStringSubmatch(phrase); match != nil {
		return monthWindow(match)
	}
	if match := seasonPattern.FindStringSubmatch(phrase); match != nil {
		return seasonWindow(match)
	}
	if yearPattern.MatchString(phrase) {
		year, _ := strconv.Atoi(phrase)
		return span(domain.NewDate(year, time.January, 1), domain.NewDate(year, time.December, 31)), nil
	}
	if match := decadePattern.FindStringSubmatch(phrase); match != nil {
		start, _ := strconv.Atoi(match[1])
		start *= 10
		return span(domain.NewDate(start, time.January, 1), domain.NewDate(start+9, time.December, 31)), nil
	}

	day, err := domain.ParseDate(phrase)
	if err != nil {
		return ports.Window{}, err
	}
	return span(day, day), nil
}

func weekWindow(match []string) (ports.Window, error) {
	year, _ := strconv.Atoi(match[1])
	week, _ := strconv.Atoi(match[2])
	if week < 1 || week > 53 {
		return ports.Window{}, fmt.Errorf("%w: week %d out of range", domain.ErrBadDate, week)
	}

	monday := isoWeekStart(year, week)
	if match[3] != "" {
		// The -WE suffix narrows the week to its weekend.
		return span(monday.AddDays(5), monday.AddDays(6)), nil
	}
	return span(monday, monday.AddDays(6)), nil
}

func monthWindow(match []string) (ports.Window, error) {
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return ports.Window{}, fmt.Errorf("%w: month %02d out of range", domain.ErrBadDate, month)
	}

	first := domain.NewDate(year, time.Month(month), 1)
	last := first.AddDays(daysInMonth(year, time.Month(month)) - 1)
	return span(first, last), nil
}

// seasonWindow uses the meteorological northern-hemisphere seasons; winter
// of a given year runs from its December into the following year.
func seasonWindow(match []string) (ports.Window, error) {
	year, _ := strconv.Atoi(match[1])

	switch match[2] {
	case "SP":
		return span(domain.NewDate(year, time.March, 1), domain.NewDate(year, time.May, 31)), nil
	case "SU":
		return span(domain.NewDate(year, time.June, 1), domain.NewDate(year, time.August, 31)), nil
	case "FA":
		return span(domain.NewDate(year, time.September, 1), domain.NewDate(year, time.November, 30)), nil
	default:
		end := domain.NewDate(year+1, time.February, 1).AddDays(daysInMonth(year+1, time.February) - 1)
		return span(domain.NewDate(year, time.December, 1), end), nil
	}
}

// isoWeekStart returns the Monday of the given ISO 8601 week: week 1 is the
// week containing January 4th.
func isoWeekStart(year, week int) domain.Date {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7 // Sunday
	}
	monday := jan4.AddDate(0, 0, 1-offset)
	return domain.DateOf(monday).AddDays(7 * (week - 1))
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func span(start, end domain.Date) ports.Window {
	return ports.Window{Start: start, End: end}
}
