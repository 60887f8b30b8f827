package application

import (
	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
)

// ProvisionDefaults seeds the profile created on a user's first contact.
type ProvisionDefaults struct {
	Duration int
	Interval int
}

const (
	DefaultDuration = 4
	DefaultInterval = 28
)

func (d ProvisionDefaults) orFallback() ProvisionDefaults {
	if d.Duration <= 0 {
		d.Duration = DefaultDuration
	}
	if d.Interval <= 0 {
		d.Interval = DefaultInterval
	}
	return d
}

// Slots are the named parameters extracted from a structured utterance.
type Slots map[string]string

type AddZoneCommand struct {
	Begin domain.Date
	// End wins over Duration; with neither set the profile default
	// duration projects the end date.
	End      *domain.Date
	Duration *int
}

type AddZoneResult struct {
	Zone       domain.Zone
	LengthDays int
	IsNew      bool
}

type ClosestZoneResult struct {
	Window ports.Window
	// Nearest is populated only when nearest-zone search is enabled.
	Nearest *domain.Zone
}

// Speech is the domain-level reply a handler produces before it is wrapped
// into the outbound envelope. A nil Reprompt means the turn ends silently
// when the user does not answer.
type Speech struct {
	Title      string
	Text       string
	Reprompt   *string
	EndSession bool
}
