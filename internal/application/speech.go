package application

import (
	"fmt"

	"github.com/redzonehq/redzone/internal/domain"
)

const (
	welcomeTitle = "Welcome"
	goodbyeTitle = "Session Ended"
)

func dayAndDate(d domain.Date) string {
	return d.Weekday() + " " + d.String()
}

func addZoneSpeech(title string, result AddZoneResult) Speech {
	from := dayAndDate(result.Zone.BeginDate)
	to := dayAndDate(result.Zone.EndDate)

	var text string
	if result.IsNew {
		text = fmt.Sprintf("You have added a new zone from %s to %s which is a duration of %d days", from, to, result.LengthDays)
	} else {
		text = fmt.Sprintf("You have updated the %s zone to end %s which now has a duration of %d days", from, to, result.LengthDays)
	}

	return Speech{Title: title, Text: text, EndSession: true}
}

func closestZoneSpeech(title string, result ClosestZoneResult) Speech {
	text := "You asked about " + dayAndDate(result.Window.Start)
	if !result.Window.SingleDay() {
		text += " to " + dayAndDate(result.Window.End)
	}
	if result.Nearest != nil {
		text += fmt.Sprintf(". Your closest zone runs from %s to %s",
			dayAndDate(result.Nearest.BeginDate), dayAndDate(result.Nearest.EndDate))
	}

	return Speech{Title: title, Text: text, EndSession: true}
}

func welcomeSpeech(sess *domain.SessionState) Speech {
	if sess.Zones != nil {
		// TODO: speak the actual next zone date once interval prediction
		// lands; the placeholder matches the shipped behavior.
		return Speech{
			Title:      welcomeTitle,
			Text:       "Welcome to Red Zone, your next zone begins on ...",
			EndSession: true,
		}
	}

	// Unreachable after bootstrap (zones load as an empty list, never nil)
	// but kept so first-run phrasing survives if that ever changes.
	reprompt := "You have no red zone dates yet, would you like to add one?"
	return Speech{
		Title:      welcomeTitle,
		Text:       "Welcome to Red Zone, when did your last red zone begin?",
		Reprompt:   &reprompt,
		EndSession: false,
	}
}

func goodbyeSpeech() Speech {
	return Speech{
		Title:      goodbyeTitle,
		Text:       "Thank you for using Red Zone. Have a nice day!",
		EndSession: true,
	}
}
