// Package bot contains the chat-event side of terabot: the transport adapter around
// the IRC client, the message dispatcher, role classification, pattern responders,
// and the built-in commands.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/Tekunogosu/terabot/bridge"
	"github.com/Tekunogosu/terabot/command"
	"github.com/Tekunogosu/terabot/config"
)

// controlPollInterval paces the optional to-bot queue consumer.
const controlPollInterval = time.Second

// Bot owns the IRC client and feeds incoming messages to the dispatcher. All message
// callbacks run sequentially on the client's read loop, so handler executions never
// overlap.
type Bot struct {
	client     *twitch.Client
	dispatcher *Dispatcher
	bridge     *bridge.Bridge
	channel    string
	username   string

	// OnControl, when set before Run, receives envelopes pushed onto the to-bot
	// queue. No built-in flow uses it; it exists for extensions.
	OnControl func(bridge.Envelope)
}

// New wires the IRC client, dispatcher, and built-in responders.
func New(cfg *config.Config, registry *command.Registry, br *bridge.Bridge) *Bot {
	client := twitch.NewClient(cfg.TwitchBotUsername, cfg.TwitchToken)
	b := &Bot{
		client:   client,
		bridge:   br,
		channel:  cfg.TwitchChannel,
		username: cfg.TwitchBotUsername,
	}

	responders := []Responder{
		PatResponder{},
		KeywordResponder{Keyword: "tera", Reply: "tera blah blah blah"},
	}
	if cfg.SnarkEnabled {
		responders = append(responders, RoleRemarkResponder{})
	}
	b.dispatcher = NewDispatcher(cfg.CommandPrefix, registry, b.Say, responders...)

	client.OnConnect(func() {
		slog.Info("connected to chat", slog.String("channel", b.channel), slog.String("as", b.username))
	})
	client.OnUserJoinMessage(func(m twitch.UserJoinMessage) {
		slog.Debug("user joined", slog.String("user", m.User), slog.String("channel", m.Channel))
	})
	client.OnPrivateMessage(func(m twitch.PrivateMessage) {
		b.dispatcher.HandleMessage(context.Background(), fromPrivateMessage(m, b.username))
	})
	client.Join(cfg.TwitchChannel)
	return b
}

// Say sends text to a channel. It satisfies Sender.
func (b *Bot) Say(channel, text string) error {
	b.client.Say(channel, text)
	return nil
}

// Run connects and blocks until the context is canceled or the connection fails.
func (b *Bot) Run(ctx context.Context) error {
	if b.OnControl != nil {
		go b.consumeControl(ctx)
	}
	go func() {
		<-ctx.Done()
		if err := b.client.Disconnect(); err != nil {
			slog.Warn("chat disconnect", slog.Any("err", err))
		}
	}()
	err := b.client.Connect()
	if err != nil && !errors.Is(err, twitch.ErrClientDisconnected) {
		return err
	}
	return nil
}

func (b *Bot) consumeControl(ctx context.Context) {
	ticker := time.NewTicker(controlPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, env := range b.bridge.ToBot.Drain() {
				b.OnControl(env)
			}
		}
	}
}

// fromPrivateMessage adapts a wire message to the transport-neutral form. Echo
// covers the bot account chatting from another client; the IRC server doesn't
// echo this connection's own lines.
func fromPrivateMessage(m twitch.PrivateMessage, botUsername string) Message {
	return Message{
		Content:  m.Message,
		Author:   m.User.Name,
		Channel:  m.Channel,
		UserType: m.Tags["user-type"],
		Badges:   m.User.Badges,
		Echo:     strings.EqualFold(m.User.Name, botUsername),
	}
}
