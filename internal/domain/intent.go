package domain

// Intent is the closed set of structured-utterance names the router
// recognizes. Anything else is ErrUnknownIntent for the turn.
type Intent string

const (
	IntentAddZone                       Intent = "AddZone"
	IntentAddZoneByBeginDate            Intent = "AddZoneByBeginDate"
	IntentAddZoneByBeginDateAndDuration Intent = "AddZoneByBeginDateAndDuration"
	IntentGetClosestZoneByDate          Intent = "GetClosestZoneByDate"
	IntentHelp                          Intent = "AMAZON.HelpIntent"
	IntentCancel                        Intent = "AMAZON.CancelIntent"
	IntentStop                          Intent = "AMAZON.StopIntent"
)

// Slot names the platform fills for the intents above.
const (
	SlotBeginDate  = "BeginDate"
	SlotEndDate    = "EndDate"
	SlotDuration   = "Duration"
	SlotTargetDate = "TargetDate"
)

func (i Intent) Known() bool {
	switch i {
	case IntentAddZone, IntentAddZoneByBeginDate, IntentAddZoneByBeginDateAndDuration,
		IntentGetClosestZoneByDate, IntentHelp, IntentCancel, IntentStop:
		return true
	default:
		return false
	}
}
