package bot

import (
	"context"
	"log/slog"

	"github.com/Tekunogosu/terabot/bridge"
	"github.com/Tekunogosu/terabot/command"
	"github.com/Tekunogosu/terabot/spotify"
	"github.com/Tekunogosu/terabot/store"
	"github.com/Tekunogosu/terabot/telemetry"
)

// Builtins bundles the dependencies of the statically registered commands.
// Nil fields degrade the matching command instead of disabling it: registration
// still replies without persistence, song replies with a fallback line.
type Builtins struct {
	Store      *store.Store
	NowPlaying *spotify.NowPlaying
	Bridge     *bridge.Bridge
}

// RegisterAll installs the built-in commands on the registry. Dynamic definitions
// load after this, so a definitions file can deliberately take over a built-in token.
func (b *Builtins) RegisterAll(r *command.Registry) {
	r.Register("register", []string{"reg", "signup", "create"}, b.registerUser)
	r.Register("song", []string{"np", "nowplaying"}, b.song)
	r.Register("commands", []string{"cmds", "help"}, func(ctx context.Context, rc *command.RequestContext) error {
		return rc.Send("Commands: " + r.NamesJoined())
	})
}

func (b *Builtins) registerUser(ctx context.Context, rc *command.RequestContext) error {
	log := telemetry.LoggerWithCorr(ctx)
	log.Info("registering user", slog.String("user", rc.Author), slog.String("channel", rc.Channel))
	if b.Store != nil {
		// Persistence failure shouldn't cost the user their confirmation.
		if err := b.Store.RegisterUser(ctx, rc.Author, rc.Channel, rc.Role); err != nil {
			log.Warn("failed to persist registration", slog.String("user", rc.Author), slog.Any("err", err))
		}
	}
	if b.Bridge != nil {
		b.Bridge.FromBot.Push(bridge.NewEnvelope("user_registered", rc.Author))
	}
	return rc.Send("Registered user " + rc.Author)
}

func (b *Builtins) song(ctx context.Context, rc *command.RequestContext) error {
	if b.NowPlaying == nil {
		return rc.Send("Song lookup is not set up.")
	}
	display := b.NowPlaying.Display(ctx)
	if display == "" {
		return rc.Send("Nothing playing right now.")
	}
	return rc.Send("Now playing: " + display)
}
