package bot

import (
	"regexp"
	"strings"
)

// Responder reacts to ordinary chat that is not a command. Respond returns the
// reply text and whether the message matched; a non-match is a no-op, not an error.
type Responder interface {
	Respond(msg Message, role Role) (string, bool)
}

var mentionPattern = regexp.MustCompile(`@\w+`)

// PatResponder replies to "pat @someone ..." lines by patting the first mention.
type PatResponder struct{}

func (PatResponder) Respond(msg Message, role Role) (string, bool) {
	if !strings.HasPrefix(msg.Content, "pat") {
		return "", false
	}
	mention := mentionPattern.FindString(msg.Content)
	if mention == "" {
		return "", false
	}
	return "/me gently pats " + mention, true
}

// KeywordResponder sends a fixed reply whenever the keyword appears in a message.
type KeywordResponder struct {
	Keyword string
	Reply   string
}

func (k KeywordResponder) Respond(msg Message, role Role) (string, bool) {
	if !strings.Contains(strings.ToLower(msg.Content), strings.ToLower(k.Keyword)) {
		return "", false
	}
	return k.Reply, true
}

// RoleRemarkResponder needles chatters based on their classified role. Off by
// default; enabled with SNARK=1.
type RoleRemarkResponder struct{}

func (RoleRemarkResponder) Respond(msg Message, role Role) (string, bool) {
	switch role {
	case Moderator:
		return "Oh look its another mod.. how original : " + msg.Author, true
	case Viewer:
		return "regular user, how .. regular?", true
	default:
		return "", false
	}
}
