package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
	"github.com/stretchr/testify/require"
)

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[domain.UserID]domain.Profile
	getDelay time.Duration
	getErr   error
	putErr   error
	gets     int
	puts     int
}

func newFakeProfileStore(profiles ...domain.Profile) *fakeProfileStore {
	store := &fakeProfileStore{profiles: map[domain.UserID]domain.Profile{}}
	for _, profile := range profiles {
		store.profiles[profile.UserID] = profile
	}
	return store
}

func (f *fakeProfileStore) Get(_ context.Context, userID domain.UserID) (domain.Profile, error) {
	time.Sleep(f.getDelay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++

	if f.getErr != nil {
		return domain.Profile{}, f.getErr
	}

	profile, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeProfileStore) Put(_ context.Context, profile domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++

	if f.putErr != nil {
		return f.putErr
	}

	f.profiles[profile.UserID] = profile
	return nil
}

type fakeZoneStore struct {
	mu         sync.Mutex
	zones      map[domain.UserID][]domain.Zone
	queryDelay time.Duration
	queryErr   error
	upsertErr  error
	queries    int
	upserts    int
}

func newFakeZoneStore() *fakeZoneStore {
	return &fakeZoneStore{zones: map[domain.UserID][]domain.Zone{}}
}

func (f *fakeZoneStore) QueryAll(_ context.Context, userID domain.UserID) ([]domain.Zone, error) {
	time.Sleep(f.queryDelay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	zones := make([]domain.Zone, len(f.zones[userID]))
	copy(zones, f.zones[userID])
	domain.SortZones(zones)
	return zones, nil
}

func (f *fakeZoneStore) Upsert(_ context.Context, zone domain.Zone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++

	if f.upsertErr != nil {
		return f.upsertErr
	}

	stored := f.zones[zone.UserID]
	for i := range stored {
		if stored[i].BeginDate.Equal(zone.BeginDate) {
			stored[i] = zone
			return nil
		}
	}
	f.zones[zone.UserID] = append(stored, zone)
	return nil
}

// fakeDateParser resolves explicit windows when registered and falls back
// to treating the phrase as a single ISO date.
type fakeDateParser struct {
	windows map[string]ports.Window
}

func (f *fakeDateParser) Parse(phrase string) (ports.Window, error) {
	if window, ok := f.windows[phrase]; ok {
		return window, nil
	}

	date, err := domain.ParseDate(phrase)
	if err != nil {
		return ports.Window{}, err
	}
	return ports.Window{Start: date, End: date}, nil
}

func testDate(t *testing.T, raw string) domain.Date {
	t.Helper()

	date, err := domain.ParseDate(raw)
	require.NoError(t, err)
	return date
}

func readyState(t *testing.T, userID domain.UserID, duration int, zones ...domain.Zone) domain.SessionState {
	t.Helper()

	interval := DefaultInterval
	if zones == nil {
		zones = make([]domain.Zone, 0)
	}
	return domain.SessionState{
		SessionID:       fmt.Sprintf("sess-%s", userID),
		UserID:          userID,
		DefaultDuration: &duration,
		DefaultInterval: &interval,
		Zones:           zones,
	}
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}
