package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Tekunogosu/terabot/bridge"
	"github.com/Tekunogosu/terabot/command"
)

func testDeps() Deps {
	registry := command.NewRegistry()
	registry.Register("register", []string{"reg"}, nil)
	registry.Register("song", nil, nil)
	return Deps{
		Bridge:   bridge.New(0),
		Registry: registry,
		Channel:  "somechannel",
		Started:  time.Now(),
	}
}

func TestHealthz(t *testing.T) {
	mux := NewMux(testDeps())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	deps := testDeps()
	deps.Bridge.FromBot.Push(bridge.NewEnvelope("note", "pending"))
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if resp.Channel != "somechannel" {
		t.Errorf("channel = %q", resp.Channel)
	}
	if len(resp.Commands) != 2 {
		t.Errorf("commands = %v, want canonical names only", resp.Commands)
	}
	if resp.BridgeDepth != 1 {
		t.Errorf("bridge_depth = %d, want 1", resp.BridgeDepth)
	}
	if resp.PersistenceReady {
		t.Errorf("persistence_ready = true without a store")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux := NewMux(testDeps())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", rec.Code)
	}
}
