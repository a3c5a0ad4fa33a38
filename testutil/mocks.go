// Package testutil provides shared test doubles for external services.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockSpotifyServer creates a test server that mocks Spotify player API responses.
type MockSpotifyServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockSpotifyServer creates a new mock Spotify API server.
func NewMockSpotifyServer(t *testing.T) *MockSpotifyServer {
	t.Helper()
	m := &MockSpotifyServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockCurrentlyPlaying adds a playing-track response for the currently-playing endpoint.
func (m *MockSpotifyServer) MockCurrentlyPlaying(track string, artists []string, durationMS, progressMS int) {
	artistObjs := make([]map[string]string, 0, len(artists))
	for _, a := range artists {
		artistObjs = append(artistObjs, map[string]string{"name": a})
	}
	m.Handlers["/v1/me/player/currently-playing"] = func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"is_playing":  true,
			"progress_ms": progressMS,
			"item": map[string]interface{}{
				"name":        track,
				"duration_ms": durationMS,
				"artists":     artistObjs,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response) //nolint:errcheck // test mock response
	}
}

// MockNothingPlaying makes the currently-playing endpoint answer 204.
func (m *MockSpotifyServer) MockNothingPlaying() {
	m.Handlers["/v1/me/player/currently-playing"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// MockPlayerError makes the currently-playing endpoint fail with the given status.
func (m *MockSpotifyServer) MockPlayerError(status int) {
	m.Handlers["/v1/me/player/currently-playing"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error": {"message": "mock failure"}}`))
	}
}
