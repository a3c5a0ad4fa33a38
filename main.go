// Command terabot is the chat bot entrypoint. It:
//   - Loads configuration and initializes structured logging.
//   - Builds the command registry: built-ins plus definitions from the commands file.
//   - Optionally connects to Postgres (registration persistence) and Spotify
//     (now-playing lookups); both degrade gracefully when unconfigured.
//   - Starts the chat-event goroutine and a control loop that drains the
//     cross-thread bridge at a fixed poll interval.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tekunogosu/terabot/bot"
	"github.com/Tekunogosu/terabot/bridge"
	"github.com/Tekunogosu/terabot/command"
	"github.com/Tekunogosu/terabot/config"
	"github.com/Tekunogosu/terabot/server"
	"github.com/Tekunogosu/terabot/spotify"
	"github.com/Tekunogosu/terabot/store"
	"github.com/Tekunogosu/terabot/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config; the chat credentials are hard requirements.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("terabot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional persistence
	var st *store.Store
	if cfg.DBDsn != "" {
		db, err := store.Connect(ctx, cfg.DBDsn)
		if err != nil {
			slog.Error("failed to open db", slog.Any("err", err))
			os.Exit(1)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close database", slog.Any("err", err))
			}
		}()
		if err := store.Migrate(ctx, db); err != nil {
			slog.Error("failed to migrate db", slog.Any("err", err))
			os.Exit(1)
		}
		st = store.New(db)
		slog.Info("registration persistence enabled")
	} else {
		slog.Info("DB_DSN not set; registrations will not persist")
	}

	// Optional Spotify now-playing
	var nowPlaying *spotify.NowPlaying
	if cfg.SpotifyConfigured() {
		client := spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRefreshToken)
		nowPlaying = spotify.NewNowPlaying(client)
		slog.Info("spotify now-playing enabled")
	} else {
		slog.Info("spotify env incomplete; song command degraded")
	}

	// Bridge between the chat-event goroutine and this control loop
	br := bridge.New(cfg.BridgeCapacity)

	// Command registry: built-ins first, then the definitions file.
	registry := command.NewRegistry()
	builtins := &bot.Builtins{Store: st, NowPlaying: nowPlaying, Bridge: br}
	builtins.RegisterAll(registry)
	defs, err := command.LoadDefinitionsFile(cfg.CommandsFile)
	if err != nil {
		// Degrade to built-ins (plus whatever parsed before a mid-file failure).
		slog.Warn("command definitions unavailable", slog.String("file", cfg.CommandsFile), slog.Any("err", err))
	}
	registry.LoadDynamic(defs)
	slog.Info("command registry built", slog.String("commands", registry.NamesJoined()))

	// Chat-event goroutine
	b := bot.New(cfg, registry, br)
	go func() {
		if err := b.Run(ctx); err != nil {
			slog.Error("chat connection failed", slog.Any("err", err))
			stop()
		}
	}()

	// HTTP server (health/status/metrics)
	deps := server.Deps{Store: st, Bridge: br, Registry: registry, Channel: cfg.TwitchChannel, Started: time.Now()}
	go func() {
		if err := server.Start(ctx, deps, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Control loop: drain bot notifications until shutdown.
	ticker := time.NewTicker(cfg.BridgePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return
		case <-ticker.C:
			drained := br.FromBot.Drain()
			for _, env := range drained {
				slog.Info("bot notification",
					slog.String("kind", env.Kind), slog.String("body", env.Body),
					slog.String("id", env.ID), slog.Time("at", env.At))
			}
			telemetry.BridgeDrain(len(drained), br.FromBot.Len())
		}
	}
}
