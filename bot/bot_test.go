package bot

import (
	"context"
	"testing"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/Tekunogosu/terabot/bridge"
	"github.com/Tekunogosu/terabot/command"
	"github.com/Tekunogosu/terabot/config"
)

func TestFromPrivateMessage(t *testing.T) {
	m := twitch.PrivateMessage{
		Message: "!song",
		Channel: "somechannel",
		User: twitch.User{
			Name:   "alice",
			Badges: map[string]int{"broadcaster": 1},
		},
		Tags: map[string]string{"user-type": "mod"},
	}
	got := fromPrivateMessage(m, "terabot")
	if got.Content != "!song" || got.Author != "alice" || got.Channel != "somechannel" {
		t.Errorf("adapted message = %+v", got)
	}
	if got.UserType != "mod" {
		t.Errorf("UserType = %q, want mod from tags", got.UserType)
	}
	if _, ok := got.Badges["broadcaster"]; !ok {
		t.Errorf("badges not carried over: %v", got.Badges)
	}
	if got.Echo {
		t.Errorf("message from alice flagged as echo")
	}
}

func TestFromPrivateMessageEchoFlag(t *testing.T) {
	m := twitch.PrivateMessage{
		Message: "Registered user alice",
		Channel: "somechannel",
		User:    twitch.User{Name: "TeraBot"},
	}
	got := fromPrivateMessage(m, "terabot")
	if !got.Echo {
		t.Errorf("bot's own message not flagged as echo (case-insensitive login match)")
	}
}

func TestControlQueueHook(t *testing.T) {
	t.Setenv("TWITCH_CHANNEL", "somechannel")
	t.Setenv("TWITCH_BOT_USERNAME", "terabot")
	t.Setenv("TWITCH_TOKEN", "oauth:token")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	br := bridge.New(0)
	b := New(cfg, command.NewRegistry(), br)

	got := make(chan bridge.Envelope, 1)
	b.OnControl = func(e bridge.Envelope) { got <- e }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.consumeControl(ctx)

	br.ToBot.Push(bridge.NewEnvelope("ctl", "pause"))
	select {
	case e := <-got:
		if e.Kind != "ctl" || e.Body != "pause" {
			t.Errorf("control envelope = %+v", e)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("control envelope not consumed")
	}
}
