package ports

import "github.com/redzonehq/redzone/internal/domain"

// Window is the concrete date range a spoken date phrase resolves to.
// Single-day phrases resolve to Start == End.
type Window struct {
	Start domain.Date
	End   domain.Date
}

func (w Window) SingleDay() bool {
	return w.Start.Equal(w.End)
}

// DateParser resolves platform date phrases ("2024-03-10", "2024-W12",
// "2024-W12-WE", "2024-03", ...) into concrete windows.
type DateParser interface {
	Parse(phrase string) (Window, error)
}
