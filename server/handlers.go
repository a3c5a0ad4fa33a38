package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type handlers struct {
	deps Deps
}

func (h *handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Warn("healthz write failed", slog.Any("err", err))
	}
}

type statusResponse struct {
	Channel          string   `json:"channel"`
	UptimeSeconds    float64  `json:"uptime_seconds"`
	Commands         []string `json:"commands"`
	BridgeDepth      int      `json:"bridge_depth"`
	BridgeDropped    uint64   `json:"bridge_dropped"`
	RegisteredUsers  *int     `json:"registered_users,omitempty"`
	PersistenceReady bool     `json:"persistence_ready"`
}

func (h *handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Channel:       h.deps.Channel,
		UptimeSeconds: time.Since(h.deps.Started).Seconds(),
	}
	if h.deps.Registry != nil {
		resp.Commands = h.deps.Registry.Names()
	}
	if h.deps.Bridge != nil {
		resp.BridgeDepth = h.deps.Bridge.FromBot.Len()
		resp.BridgeDropped = h.deps.Bridge.FromBot.Dropped()
	}
	if h.deps.Store != nil {
		resp.PersistenceReady = true
		if n, err := h.deps.Store.CountRegistered(r.Context(), h.deps.Channel); err == nil {
			resp.RegisteredUsers = &n
		} else {
			slog.Warn("status: count registered users", slog.Any("err", err))
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("status write failed", slog.Any("err", err))
	}
}
