// Package telemetry provides Prometheus metrics, tracing setup, and correlation-id
// aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	MessagesSeen        prometheus.Counter
	MessagesEchoDropped prometheus.Counter
	CommandsDispatched  prometheus.Counter
	CommandsUnresolved  prometheus.Counter
	CommandErrors       prometheus.Counter
	PlaybackCacheHits   prometheus.Counter
	PlaybackCacheMisses prometheus.Counter
	PlaybackFailures    prometheus.Counter
	BridgeDrained       prometheus.Counter

	// Gauges
	BridgeDepthGauge prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		MessagesSeen = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_messages_seen_total", Help: "Chat messages received from the transport"})
		MessagesEchoDropped = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_messages_echo_dropped_total", Help: "Bot-originated messages dropped by the echo filter"})
		CommandsDispatched = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_commands_dispatched_total", Help: "Commands resolved and invoked"})
		CommandsUnresolved = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_commands_unresolved_total", Help: "Prefixed messages with no matching command"})
		CommandErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_command_errors_total", Help: "Handler invocations that returned an error or panicked"})
		PlaybackCacheHits = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_playback_cache_hits_total", Help: "Song lookups served from the now-playing cache"})
		PlaybackCacheMisses = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_playback_cache_misses_total", Help: "Song lookups that queried the playback service"})
		PlaybackFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_playback_failures_total", Help: "Playback queries that failed after the retry"})
		BridgeDrained = promauto.NewCounter(prometheus.CounterOpts{Name: "terabot_bridge_drained_total", Help: "Envelopes drained from the from-bot queue"})
		BridgeDepthGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "terabot_bridge_depth", Help: "Envelopes currently queued toward the control loop"})
	})
}

// The helpers below are nil-safe so library code can record without caring
// whether Init ran (tests mostly don't).

func MessageSeen() {
	if MessagesSeen != nil {
		MessagesSeen.Inc()
	}
}

func EchoDropped() {
	if MessagesEchoDropped != nil {
		MessagesEchoDropped.Inc()
	}
}

func CommandDispatched() {
	if CommandsDispatched != nil {
		CommandsDispatched.Inc()
	}
}

func CommandUnresolved() {
	if CommandsUnresolved != nil {
		CommandsUnresolved.Inc()
	}
}

func CommandErrored() {
	if CommandErrors != nil {
		CommandErrors.Inc()
	}
}

func PlaybackCacheHit() {
	if PlaybackCacheHits != nil {
		PlaybackCacheHits.Inc()
	}
}

func PlaybackCacheMiss() {
	if PlaybackCacheMisses != nil {
		PlaybackCacheMisses.Inc()
	}
}

func PlaybackQueryFailed() {
	if PlaybackFailures != nil {
		PlaybackFailures.Inc()
	}
}

// BridgeDrain records a drain cycle: n envelopes removed, depth now remaining.
func BridgeDrain(n, remaining int) {
	if BridgeDrained != nil {
		BridgeDrained.Add(float64(n))
	}
	if BridgeDepthGauge != nil {
		BridgeDepthGauge.Set(float64(remaining))
	}
}

// Correlation ID helpers ----------------------------------------------------

type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns the correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with a corr attribute when present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
