package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redzonehq/redzone/internal/domain"
)

// Router is the stateless dispatch table from intent name to handler.
// Required slots are validated before a handler runs; a handler is never
// invoked with a missing slot and never writes on a rejected turn.
type Router struct {
	zones  *ZoneService
	routes map[domain.Intent]route
}

type route struct {
	required []string
	handle   func(ctx context.Context, sess *domain.SessionState, slots Slots) (Speech, error)
}

func NewRouter(zones *ZoneService) *Router {
	r := &Router{zones: zones}
	r.routes = map[domain.Intent]route{
		domain.IntentAddZone: {
			required: []string{domain.SlotBeginDate, domain.SlotEndDate},
			handle:   r.addZone,
		},
		domain.IntentAddZoneByBeginDate: {
			required: []string{domain.SlotBeginDate},
			handle:   r.addZoneByBeginDate,
		},
		domain.IntentAddZoneByBeginDateAndDuration: {
			required: []string{domain.SlotBeginDate, domain.SlotDuration},
			handle:   r.addZoneByBeginDateAndDuration,
		},
		domain.IntentGetClosestZoneByDate: {
			required: []string{domain.SlotTargetDate},
			handle:   r.closestZone,
		},
		domain.IntentHelp: {
			handle: func(_ context.Context, sess *domain.SessionState, _ Slots) (Speech, error) {
				return welcomeSpeech(sess), nil
			},
		},
		domain.IntentCancel: {
			handle: func(context.Context, *domain.SessionState, Slots) (Speech, error) {
				return goodbyeSpeech(), nil
			},
		},
		domain.IntentStop: {
			handle: func(context.Context, *domain.SessionState, Slots) (Speech, error) {
				return goodbyeSpeech(), nil
			},
		},
	}

	return r
}

func (r *Router) Dispatch(ctx context.Context, sess *domain.SessionState, name string, slots Slots) (Speech, error) {
	matched, ok := r.routes[domain.Intent(name)]
	if !ok {
		return Speech{}, fmt.Errorf("%w: %q", domain.ErrUnknownIntent, name)
	}

	for _, slot := range matched.required {
		if strings.TrimSpace(slots[slot]) == "" {
			return Speech{}, fmt.Errorf("%w: %s for intent %s", domain.ErrMissingSlot, slot, name)
		}
	}

	return matched.handle(ctx, sess, slots)
}

func (r *Router) addZone(ctx context.Context, sess *domain.SessionState, slots Slots) (Speech, error) {
	begin, err := domain.ParseDate(slots[domain.SlotBeginDate])
	if err != nil {
		return Speech{}, fmt.Errorf("parse %s slot: %w", domain.SlotBeginDate, err)
	}
	end, err := domain.ParseDate(slots[domain.SlotEndDate])
	if err != nil {
		return Speech{}, fmt.Errorf("parse %s slot: %w", domain.SlotEndDate, err)
	}

	result, err := r.zones.AddZone(ctx, sess, AddZoneCommand{Begin: begin, End: &end})
	if err != nil {
		return Speech{}, err
	}

	return addZoneSpeech(string(domain.IntentAddZone), result), nil
}

func (r *Router) addZoneByBeginDate(ctx context.Context, sess *domain.SessionState, slots Slots) (Speech, error) {
	begin, err := domain.ParseDate(slots[domain.SlotBeginDate])
	if err != nil {
		return Speech{}, fmt.Errorf("parse %s slot: %w", domain.SlotBeginDate, err)
	}

	result, err := r.zones.AddZone(ctx, sess, AddZoneCommand{Begin: begin})
	if err != nil {
		return Speech{}, err
	}

	return addZoneSpeech(string(domain.IntentAddZoneByBeginDate), result), nil
}

func (r *Router) addZoneByBeginDateAndDuration(ctx context.Context, sess *domain.SessionState, slots Slots) (Speech, error) {
	begin, err := domain.ParseDate(slots[domain.SlotBeginDate])
	if err != nil {
		return Speech{}, fmt.Errorf("parse %s slot: %w", domain.SlotBeginDate, err)
	}
	duration, err := strconv.Atoi(strings.TrimSpace(slots[domain.SlotDuration]))
	if err != nil {
		return Speech{}, fmt.Errorf("parse %s slot %q: %w", domain.SlotDuration, slots[domain.SlotDuration], err)
	}

	result, err := r.zones.AddZone(ctx, sess, AddZoneCommand{Begin: begin, Duration: &duration})
	if err != nil {
		return Speech{}, err
	}

	return addZoneSpeech(string(domain.IntentAddZoneByBeginDateAndDuration), result), nil
}

func (r *Router) closestZone(ctx context.Context, sess *domain.SessionState, slots Slots) (Speech, error) {
	result, err := r.zones.ClosestZone(ctx, sess, slots[domain.SlotTargetDate])
	if err != nil {
		return Speech{}, err
	}

	return closestZoneSpeech(string(domain.IntentGetClosestZoneByDate), result), nil
}
