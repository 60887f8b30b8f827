package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
)

// Bootstrap builds the session state for a fresh conversation: it loads the
// user's profile and stored zones with two concurrent reads joined by a
// barrier, provisioning a default profile on first contact. Every call
// works on its own accumulator, so one Bootstrap serves concurrent turns.
type Bootstrap struct {
	profiles ports.ProfileStore
	zones    ports.ZoneStore
	defaults ProvisionDefaults
	logger   *slog.Logger
}

func NewBootstrap(profiles ports.ProfileStore, zones ports.ZoneStore, defaults ProvisionDefaults, logger *slog.Logger) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bootstrap{
		profiles: profiles,
		zones:    zones,
		defaults: defaults.orFallback(),
		logger:   logger,
	}
}

// Load returns a Ready session state or the first error either read hit.
// Nothing is cached across calls; a failed turn leaves no partial state.
func (b *Bootstrap) Load(ctx context.Context, sessionID string, userID domain.UserID) (domain.SessionState, error) {
	var (
		wg         sync.WaitGroup
		profile    domain.Profile
		profileErr error
		zones      []domain.Zone
		zonesErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, profileErr = b.profiles.Get(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		zones, zonesErr = b.zones.QueryAll(ctx, userID)
	}()
	wg.Wait()

	if zonesErr != nil {
		return domain.SessionState{}, fmt.Errorf("load zones: %w", zonesErr)
	}

	switch {
	case profileErr == nil:
	case errors.Is(profileErr, domain.ErrProfileNotFound):
		provisioned, err := b.provision(ctx, userID)
		if err != nil {
			return domain.SessionState{}, err
		}
		profile = provisioned
	default:
		return domain.SessionState{}, fmt.Errorf("load profile: %w", profileErr)
	}

	if zones == nil {
		zones = make([]domain.Zone, 0)
	}

	duration := profile.DefaultDuration
	interval := profile.DefaultInterval
	state := domain.SessionState{
		SessionID:       sessionID,
		UserID:          userID,
		DefaultDuration: &duration,
		DefaultInterval: &interval,
		Zones:           zones,
	}

	b.logger.Debug("session ready",
		"user", idTail(string(userID)),
		"session", idTail(sessionID),
		"zones", len(zones),
	)

	return state, nil
}

func (b *Bootstrap) provision(ctx context.Context, userID domain.UserID) (domain.Profile, error) {
	profile := domain.Profile{
		UserID:          userID,
		ZoneName:        domain.DefaultZoneName,
		DefaultDuration: b.defaults.Duration,
		DefaultInterval: b.defaults.Interval,
		Active:          true,
	}

	if err := profile.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("provision profile: %w", err)
	}
	// The in-memory profile is authoritative after a successful write; no
	// re-read of what was just written.
	if err := b.profiles.Put(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("provision profile: %w", err)
	}

	b.logger.Info("provisioned profile",
		"user", idTail(string(userID)),
		"duration", profile.DefaultDuration,
		"interval", profile.DefaultInterval,
	)

	return profile, nil
}

// idTail abbreviates opaque platform identifiers for logs, keeping only the
// last few characters the way the original service logged them.
func idTail(id string) string {
	const keep = 10
	if len(id) <= keep {
		return id
	}
	return id[len(id)-keep:]
}
