package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Tekunogosu/terabot/command"
	"github.com/Tekunogosu/terabot/telemetry"
)

// Sender delivers text to a channel on the chat transport.
type Sender func(channel, text string) error

// Dispatcher routes incoming messages: echo messages are dropped, prefixed messages
// resolve against the command registry, everything else runs through the pattern
// responders. Handler failures are contained here; nothing a handler does can take
// down the event loop.
//
// Messages on one channel are handled strictly in arrival order because the
// transport invokes callbacks sequentially.
type Dispatcher struct {
	prefix     string
	registry   *command.Registry
	send       Sender
	responders []Responder
}

func NewDispatcher(prefix string, registry *command.Registry, send Sender, responders ...Responder) *Dispatcher {
	return &Dispatcher{prefix: prefix, registry: registry, send: send, responders: responders}
}

// HandleMessage processes one incoming message end to end.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg Message) {
	telemetry.MessageSeen()
	if msg.Echo {
		telemetry.EchoDropped()
		return
	}

	ctx = telemetry.WithCorrelation(ctx, uuid.NewString())
	log := telemetry.LoggerWithCorr(ctx)
	role := Classify(msg)
	log.Debug("message received",
		slog.String("channel", msg.Channel), slog.String("author", msg.Author), slog.String("role", role.String()))

	if !strings.HasPrefix(msg.Content, d.prefix) {
		d.respond(msg, role, log)
		return
	}

	token := ""
	if fields := strings.Fields(strings.TrimPrefix(msg.Content, d.prefix)); len(fields) > 0 {
		token = fields[0]
	}
	h, ok := d.registry.Resolve(token)
	if !ok {
		telemetry.CommandUnresolved()
		log.Info("unresolved command", slog.String("token", token), slog.String("author", msg.Author))
		d.reject(msg, log)
		return
	}

	ctx, span := telemetry.StartSpan(ctx, "terabot/bot", "command.dispatch",
		attribute.String("command.token", token), attribute.String("chat.channel", msg.Channel))
	defer span.End()

	rc := &command.RequestContext{
		Message: msg.Content,
		Author:  msg.Author,
		Channel: msg.Channel,
		Role:    role.String(),
		Token:   token,
		CorrID:  telemetry.GetCorrelation(ctx),
		Send:    func(text string) error { return d.send(msg.Channel, text) },
	}
	telemetry.CommandDispatched()
	if err := d.invoke(ctx, h, rc); err != nil {
		telemetry.CommandErrored()
		telemetry.RecordError(span, err)
		log.Error("command handler failed",
			slog.String("token", token), slog.String("author", msg.Author), slog.Any("err", err))
		d.reject(msg, log)
	}
}

// invoke runs the handler, converting a panic into an error so the dispatch
// boundary stays the last line of defense for the event loop.
func (d *Dispatcher) invoke(ctx context.Context, h command.Handler, rc *command.RequestContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, rc)
}

// respond runs the pattern responders against a non-command message. Every
// matching responder replies; a match in one doesn't shadow the others.
func (d *Dispatcher) respond(msg Message, role Role, log *slog.Logger) {
	for _, r := range d.responders {
		reply, ok := r.Respond(msg, role)
		if !ok {
			continue
		}
		if err := d.send(msg.Channel, reply); err != nil {
			log.Error("responder send failed", slog.Any("err", err))
		}
	}
}

func (d *Dispatcher) reject(msg Message, log *slog.Logger) {
	if err := d.send(msg.Channel, "Invalid command "+msg.Content); err != nil {
		log.Error("rejection notice send failed", slog.Any("err", err))
	}
}
