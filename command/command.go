// Package command holds the dispatch table for chat commands: statically registered
// handlers merged with definitions loaded from a JSON file. The registry is built once
// at startup and read-only afterwards; resolution is an exact, case-sensitive lookup
// by name or alias.
package command

import "context"

// RequestContext carries everything a handler may need for one invocation.
// It is created per incoming message and discarded after the handler returns.
type RequestContext struct {
	// Message is the raw chat line that triggered the command.
	Message string
	// Author is the sender's login name.
	Author string
	// Channel is the originating channel.
	Channel string
	// Role is the sender's classified role ("moderator", "streamer", "viewer").
	Role string
	// Token is the name or alias the command was invoked with.
	Token string
	// CorrID identifies the dispatch for log correlation.
	CorrID string

	// Send delivers text to the originating channel.
	Send func(text string) error
}

// Handler is a unit of behavior invoked for a resolved command.
type Handler func(ctx context.Context, rc *RequestContext) error
