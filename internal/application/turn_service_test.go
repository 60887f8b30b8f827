package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redzonehq/redzone/internal/alexa"
	"github.com/redzonehq/redzone/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTurnService(profiles *fakeProfileStore, zones *fakeZoneStore) *TurnService {
	bootstrap := NewBootstrap(profiles, zones, ProvisionDefaults{}, nil)
	router := NewRouter(NewZoneService(zones, &fakeDateParser{}, false, nil))
	return NewTurnService(bootstrap, router, fixedClock{}, nil)
}

func launchEvent(userID string) alexa.RequestEnvelope {
	return alexa.RequestEnvelope{
		Session:  alexa.Session{New: true, ID: "sess-1"},
		Request:  alexa.Request{Type: alexa.RequestTypeLaunch, ID: "req-1"},
		Identity: alexa.Identity{UserID: userID},
	}
}

func intentEvent(userID, name string, slots map[string]string, attributes []byte) alexa.RequestEnvelope {
	wireSlots := make(map[string]alexa.Slot, len(slots))
	for slot, value := range slots {
		wireSlots[slot] = alexa.Slot{Value: value}
	}

	return alexa.RequestEnvelope{
		Session:  alexa.Session{New: attributes == nil, ID: "sess-1", Attributes: attributes},
		Request:  alexa.Request{Type: alexa.RequestTypeIntent, ID: "req-2", Intent: &alexa.Intent{Name: name, Slots: wireSlots}},
		Identity: alexa.Identity{UserID: userID},
	}
}

func TestTurnFirstContactLaunchProvisionsAndWelcomes(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore()
	zones := newFakeZoneStore()
	turns := newTestTurnService(profiles, zones)

	envelope, err := turns.HandleEvent(context.Background(), launchEvent("user-new"))
	require.NoError(t, err)

	assert.Equal(t, "1.0", envelope.Version)
	require.NotNil(t, envelope.Response)
	assert.Contains(t, envelope.Response.OutputSpeech.Text, "Welcome to Red Zone")
	assert.True(t, envelope.Response.ShouldEndSession)

	var sess domain.SessionState
	require.NoError(t, json.Unmarshal(envelope.SessionAttributes, &sess))
	require.True(t, sess.Ready())
	assert.Equal(t, 4, *sess.DefaultDuration)
	assert.Equal(t, 28, *sess.DefaultInterval)
	assert.Empty(t, sess.Zones)

	assert.Equal(t, 1, profiles.puts, "first contact persists a default profile")
}

func TestTurnIntentAddZoneRoundTripsAttributes(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore(domain.Profile{
		UserID: "user-1", ZoneName: domain.DefaultZoneName,
		DefaultDuration: 4, DefaultInterval: 28, Active: true,
	})
	zones := newFakeZoneStore()
	turns := newTestTurnService(profiles, zones)

	event := intentEvent("user-1", string(domain.IntentAddZone), map[string]string{
		"BeginDate": "2024-03-10",
		"EndDate":   "2024-03-14",
	}, nil)

	envelope, err := turns.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Contains(t, envelope.Response.OutputSpeech.Text, "duration of 4 days")

	var sess domain.SessionState
	require.NoError(t, json.Unmarshal(envelope.SessionAttributes, &sess))
	require.Len(t, sess.Zones, 1)
	assert.Equal(t, "2024-03-10", sess.Zones[0].BeginDate.String())
}

func TestTurnReusesCarriedSessionAttributes(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore(domain.Profile{
		UserID: "user-1", ZoneName: domain.DefaultZoneName,
		DefaultDuration: 4, DefaultInterval: 28, Active: true,
	})
	zones := newFakeZoneStore()
	turns := newTestTurnService(profiles, zones)

	carried := readyState(t, "user-1", 4)
	attributes, err := json.Marshal(carried)
	require.NoError(t, err)

	event := intentEvent("user-1", string(domain.IntentAddZoneByBeginDate), map[string]string{
		"BeginDate": "2024-01-01",
	}, attributes)

	_, err = turns.HandleEvent(context.Background(), event)
	require.NoError(t, err)

	assert.Zero(t, profiles.gets, "carried attributes skip the bootstrap reads")
	assert.Zero(t, zones.queries)
	assert.Equal(t, 1, zones.upserts)
}

func TestTurnBootstrapsWhenAttributesLackSessionID(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore(domain.Profile{
		UserID: "user-1", ZoneName: domain.DefaultZoneName,
		DefaultDuration: 4, DefaultInterval: 28, Active: true,
	})
	zones := newFakeZoneStore()
	turns := newTestTurnService(profiles, zones)

	event := intentEvent("user-1", string(domain.IntentHelp), nil, []byte(`{"userId":"user-1"}`))
	event.Session.New = false

	_, err := turns.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 1, profiles.gets)
	assert.Equal(t, 1, zones.queries)
}

func TestTurnUnknownIntentAbortsWithoutResponse(t *testing.T) {
	t.Parallel()

	turns := newTestTurnService(newFakeProfileStore(), newFakeZoneStore())

	envelope, err := turns.HandleEvent(context.Background(), intentEvent("user-1", "Foo", nil, nil))
	require.ErrorIs(t, err, domain.ErrUnknownIntent)
	assert.Nil(t, envelope, "aborted turn produces no partial response")
}

func TestTurnUnknownRequestTypeAborts(t *testing.T) {
	t.Parallel()

	turns := newTestTurnService(newFakeProfileStore(), newFakeZoneStore())

	event := launchEvent("user-1")
	event.Request.Type = "PlaybackRequest"

	_, err := turns.HandleEvent(context.Background(), event)
	require.ErrorIs(t, err, domain.ErrUnknownRequestType)
}

func TestTurnSessionEndedIsSilent(t *testing.T) {
	t.Parallel()

	turns := newTestTurnService(newFakeProfileStore(), newFakeZoneStore())

	event := launchEvent("user-1")
	event.Request.Type = alexa.RequestTypeSessionEnded

	envelope, err := turns.HandleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "1.0", envelope.Version)
	assert.Nil(t, envelope.Response)
}

func TestTurnMissingSlotWritesNothing(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore(domain.Profile{
		UserID: "user-1", ZoneName: domain.DefaultZoneName,
		DefaultDuration: 4, DefaultInterval: 28, Active: true,
	})
	zones := newFakeZoneStore()
	turns := newTestTurnService(profiles, zones)

	event := intentEvent("user-1", string(domain.IntentAddZoneByBeginDateAndDuration), map[string]string{
		"BeginDate": "2024-01-01",
	}, nil)

	_, err := turns.HandleEvent(context.Background(), event)
	require.ErrorIs(t, err, domain.ErrMissingSlot)
	assert.Zero(t, zones.upserts)
}
