package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redzonehq/redzone/internal/adapters/dateparse"
	tomlstore "github.com/redzonehq/redzone/internal/adapters/store/toml"
	"github.com/redzonehq/redzone/internal/alexa"
	"github.com/redzonehq/redzone/internal/application"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := viper.New()
	cfg.Set("data.path", filepath.Join(t.TempDir(), "zones.toml"))
	repo, err := tomlstore.NewRepository(cfg)
	require.NoError(t, err)

	bootstrap := application.NewBootstrap(repo, repo, application.ProvisionDefaults{}, nil)
	zones := application.NewZoneService(repo, dateparse.New(), false, nil)
	turns := application.NewTurnService(bootstrap, application.NewRouter(zones), nil, nil)

	server := httptest.NewServer(func() http.Handler {
		mux := http.NewServeMux()
		NewServer(turns, nil).Register(mux)
		return mux
	}())
	t.Cleanup(server.Close)
	return server
}

func postTurn(t *testing.T, server *httptest.Server, body []byte) *http.Response {
	t.Helper()

	resp, err := http.Post(server.URL+"/v1/turn", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func intentEvent(t *testing.T, intent string, slots map[string]string) []byte {
	t.Helper()

	event := alexa.RequestEnvelope{
		Session: alexa.Session{
			New: true,
			ID:  "amzn1.echo-api.session.http-test",
		},
		Request: alexa.Request{
			Type:   alexa.RequestTypeIntent,
			ID:     "amzn1.echo-api.request.http-test",
			Intent: &alexa.Intent{Name: intent, Slots: map[string]alexa.Slot{}},
		},
		Identity: alexa.Identity{UserID: "amzn1.ask.account.HTTPTEST"},
	}
	for name, value := range slots {
		event.Request.Intent.Slots[name] = alexa.Slot{Value: value}
	}

	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestTurnEndpointAddsZone(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp := postTurn(t, server, intentEvent(t, "AddZoneByBeginDate", map[string]string{
		"BeginDate": "2024-03-10",
	}))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var envelope alexa.ResponseEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotNil(t, envelope.Response)
	assert.Contains(t, envelope.Response.OutputSpeech.Text, "You have added a new zone from Sunday 2024-03-10")
	assert.Contains(t, string(envelope.SessionAttributes), "userZones")
}

func TestTurnEndpointLaunch(t *testing.T) {
	t.Parallel()

	event := alexa.RequestEnvelope{
		Session: alexa.Session{
			New: true,
			ID:  "amzn1.echo-api.session.http-test",
		},
		Request: alexa.Request{
			Type: alexa.RequestTypeLaunch,
			ID:   "amzn1.echo-api.request.http-test",
		},
		Identity: alexa.Identity{UserID: "amzn1.ask.account.HTTPTEST"},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	server := newTestServer(t)
	resp := postTurn(t, server, body)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope alexa.ResponseEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotNil(t, envelope.Response)
	assert.Contains(t, envelope.Response.OutputSpeech.Text, "Welcome to Red Zone")
}

func TestTurnEndpointSessionEnded(t *testing.T) {
	t.Parallel()

	event := alexa.RequestEnvelope{
		Session: alexa.Session{
			ID: "amzn1.echo-api.session.http-test",
		},
		Request: alexa.Request{
			Type: alexa.RequestTypeSessionEnded,
			ID:   "amzn1.echo-api.request.http-test",
		},
		Identity: alexa.Identity{UserID: "amzn1.ask.account.HTTPTEST"},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	server := newTestServer(t)
	resp := postTurn(t, server, body)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestTurnEndpointRejectsBadInput(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	tests := []struct {
		name   string
		body   []byte
		status int
	}{
		{name: "malformed json", body: []byte("{not json"), status: http.StatusBadRequest},
		{name: "unknown intent", body: intentEvent(t, "OrderPizza", nil), status: http.StatusUnprocessableEntity},
		{
			name:   "missing slot",
			body:   intentEvent(t, "AddZoneByBeginDate", nil),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "bad date",
			body:   intentEvent(t, "AddZoneByBeginDate", map[string]string{"BeginDate": "someday"}),
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp := postTurn(t, server, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestTurnEndpointMethodNotAllowed(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, err := http.Get(server.URL + "/v1/turn")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"status": "ok"}, body)
}
