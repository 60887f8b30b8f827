package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
)

// ZoneService carries the zone domain operations: adding or updating a
// tracked date range and answering "closest zone" queries.
type ZoneService struct {
	store ports.ZoneStore
	dates ports.DateParser
	// nearestSearch switches ClosestZone from echoing the queried window
	// to also searching the stored zones for the nearest one.
	nearestSearch bool
	logger        *slog.Logger
}

func NewZoneService(store ports.ZoneStore, dates ports.DateParser, nearestSearch bool, logger *slog.Logger) *ZoneService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ZoneService{store: store, dates: dates, nearestSearch: nearestSearch, logger: logger}
}

func (s *ZoneService) AddZone(ctx context.Context, sess *domain.SessionState, cmd AddZoneCommand) (AddZoneResult, error) {
	if !sess.Ready() {
		return AddZoneResult{}, fmt.Errorf("session state not loaded for user %s", idTail(string(sess.UserID)))
	}

	var end domain.Date
	switch {
	case cmd.End != nil:
		end = *cmd.End
	case cmd.Duration != nil:
		end = domain.ProjectEndDate(cmd.Begin, *cmd.Duration)
	default:
		end = domain.ProjectEndDate(cmd.Begin, *sess.DefaultDuration)
	}

	// TODO: overlap detection against existing zones, so a zone covering an
	// already-stored begin date confirms before turning into an update.
	// Until then every upsert reports a new zone.
	isNew := true

	zone := domain.Zone{
		UserID:    sess.UserID,
		BeginDate: cmd.Begin,
		EndDate:   end,
		Active:    true,
	}

	if err := s.store.Upsert(ctx, zone); err != nil {
		return AddZoneResult{}, fmt.Errorf("upsert zone: %w", err)
	}

	replaceSessionZone(sess, zone)

	s.logger.Info("zone upserted",
		"user", idTail(string(sess.UserID)),
		"begin", zone.BeginDate.String(),
		"end", zone.EndDate.String(),
	)

	return AddZoneResult{Zone: zone, LengthDays: zone.LengthDays(), IsNew: isNew}, nil
}

func (s *ZoneService) ClosestZone(ctx context.Context, sess *domain.SessionState, phrase string) (ClosestZoneResult, error) {
	if !sess.Ready() {
		return ClosestZoneResult{}, fmt.Errorf("session state not loaded for user %s", idTail(string(sess.UserID)))
	}

	window, err := s.dates.Parse(phrase)
	if err != nil {
		return ClosestZoneResult{}, fmt.Errorf("parse target date %q: %w", phrase, err)
	}

	result := ClosestZoneResult{Window: window}
	if s.nearestSearch {
		if nearest, ok := domain.NearestZone(sess.Zones, window.Start); ok {
			result.Nearest = &nearest
		}
	}

	return result, nil
}

// replaceSessionZone mirrors the store upsert into the session copy so the
// attributes round-tripped to the caller stay consistent within the turn.
func replaceSessionZone(sess *domain.SessionState, zone domain.Zone) {
	for i := range sess.Zones {
		if sess.Zones[i].BeginDate.Equal(zone.BeginDate) {
			sess.Zones[i] = zone
			return
		}
	}

	sess.Zones = append(sess.Zones, zone)
	domain.SortZones(sess.Zones)
}
