// Package config loads environment variables and provides a typed Config used across the bot.
// It applies sensible defaults so the binary can run locally with minimal setup.
// Required chat credentials are checked by Validate, not by Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Twitch
	TwitchChannel     string
	TwitchBotUsername string
	TwitchToken       string

	// Commands
	CommandPrefix string
	CommandsFile  string

	// Spotify (optional; song command degrades when unset)
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRefreshToken string

	// Database (optional; registration persists only when set)
	DBDsn string

	// Bridge
	BridgePollInterval time.Duration
	BridgeCapacity     int

	// Responders
	SnarkEnabled bool

	// HTTP
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail when Twitch creds
// are missing; call Validate when you need the chat connection. Missing optional variables
// disable features (Spotify, persistence).
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchChannel = os.Getenv("TWITCH_CHANNEL")
	cfg.TwitchBotUsername = os.Getenv("TWITCH_BOT_USERNAME")
	cfg.TwitchToken = os.Getenv("TWITCH_TOKEN")

	cfg.CommandPrefix = os.Getenv("COMMAND_PREFIX")
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	cfg.CommandsFile = os.Getenv("COMMANDS_FILE")
	if cfg.CommandsFile == "" {
		cfg.CommandsFile = "commands.json"
	}

	cfg.SpotifyClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	cfg.SpotifyClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	cfg.SpotifyRefreshToken = os.Getenv("SPOTIFY_REFRESH_TOKEN")

	cfg.DBDsn = os.Getenv("DB_DSN")

	cfg.BridgePollInterval = time.Second
	if v := os.Getenv("BRIDGE_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid BRIDGE_POLL_INTERVAL %q", v)
		}
		cfg.BridgePollInterval = d
	}
	if v := os.Getenv("BRIDGE_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid BRIDGE_CAPACITY %q", v)
		}
		cfg.BridgeCapacity = n
	}

	cfg.SnarkEnabled = os.Getenv("SNARK") == "1"

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// Validate checks the variables the chat connection cannot run without.
// Absence is a fatal configuration error raised before startup.
func (c *Config) Validate() error {
	if c.TwitchChannel == "" || c.TwitchBotUsername == "" || c.TwitchToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_CHANNEL, TWITCH_BOT_USERNAME, TWITCH_TOKEN")
	}
	return nil
}

// SpotifyConfigured reports whether all Spotify credentials are present.
func (c *Config) SpotifyConfigured() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != "" && c.SpotifyRefreshToken != ""
}
