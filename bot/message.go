package bot

// Message is the transport-neutral view of one chat line. The transport adapter
// fills it from the wire message; everything past the adapter treats it as read-only.
type Message struct {
	// Content is the raw message text.
	Content string
	// Author is the sender's login name.
	Author string
	// Channel is the channel the message arrived on.
	Channel string
	// UserType is the sender's user-type tag ("mod" for moderators).
	UserType string
	// Badges maps badge names to versions.
	Badges map[string]int
	// Echo marks a message the bot itself sent, reflected back by the transport.
	// Echo messages never re-trigger dispatch.
	Echo bool
}

// Role classifies a message sender.
type Role int

const (
	Viewer Role = iota
	Moderator
	Streamer
)

func (r Role) String() string {
	switch r {
	case Moderator:
		return "moderator"
	case Streamer:
		return "streamer"
	default:
		return "viewer"
	}
}

// Classify maps sender metadata to a role. The moderator check runs first, so a
// broadcaster who is also tagged "mod" classifies as moderator.
func Classify(msg Message) Role {
	if msg.UserType == "mod" {
		return Moderator
	}
	if _, ok := msg.Badges["broadcaster"]; ok {
		return Streamer
	}
	return Viewer
}
