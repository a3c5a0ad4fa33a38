package command

import (
	"log/slog"
	"strings"
)

// Registry maps invocation tokens (names and aliases) to handlers. Construct it, register
// built-ins, load dynamic definitions, then treat it as read-only; nothing mutates it at
// dispatch time.
type Registry struct {
	handlers map[string]Handler
	names    []string
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register routes name and each alias to h. A token that is already routed is
// overwritten, last write wins, with a logged warning so collisions are visible
// in operation.
func (r *Registry) Register(name string, aliases []string, h Handler) {
	if !r.known(name) {
		r.names = append(r.names, name)
	}
	for _, token := range append([]string{name}, aliases...) {
		if _, exists := r.handlers[token]; exists {
			slog.Warn("command token collision; later registration wins",
				slog.String("token", token), slog.String("command", name))
		}
		r.handlers[token] = h
	}
}

// Resolve looks up a handler by exact token match.
func (r *Registry) Resolve(token string) (Handler, bool) {
	h, ok := r.handlers[token]
	return h, ok
}

// Names returns the canonical command names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// NamesJoined renders the command list the way the {commands} placeholder and the
// commands built-in present it.
func (r *Registry) NamesJoined() string {
	return strings.Join(r.names, ", ")
}

func (r *Registry) known(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}
