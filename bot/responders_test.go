package bot

import "testing"

func TestPatResponder(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantReply string
		wantMatch bool
	}{
		{
			name:      "pat with mention",
			content:   "pat @bob please",
			wantReply: "/me gently pats @bob",
			wantMatch: true,
		},
		{
			name:      "pat without mention",
			content:   "pat yourselves",
			wantMatch: false,
		},
		{
			name:      "mention without pat",
			content:   "hi @bob",
			wantMatch: false,
		},
		{
			name:      "first mention wins",
			content:   "pat @alice and @bob",
			wantReply: "/me gently pats @alice",
			wantMatch: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := PatResponder{}.Respond(Message{Content: tt.content}, Viewer)
			if ok != tt.wantMatch {
				t.Fatalf("Respond(%q) matched = %v, want %v", tt.content, ok, tt.wantMatch)
			}
			if ok && reply != tt.wantReply {
				t.Errorf("Respond(%q) = %q, want %q", tt.content, reply, tt.wantReply)
			}
		})
	}
}

func TestKeywordResponder(t *testing.T) {
	r := KeywordResponder{Keyword: "tera", Reply: "tera blah blah blah"}
	if reply, ok := r.Respond(Message{Content: "I love TeraBot"}, Viewer); !ok || reply != "tera blah blah blah" {
		t.Errorf("Respond = (%q, %v), want keyword match regardless of case", reply, ok)
	}
	if _, ok := r.Respond(Message{Content: "nothing relevant"}, Viewer); ok {
		t.Errorf("Respond matched without the keyword")
	}
}

func TestRoleRemarkResponder(t *testing.T) {
	r := RoleRemarkResponder{}
	if reply, ok := r.Respond(Message{Author: "modperson"}, Moderator); !ok || reply != "Oh look its another mod.. how original : modperson" {
		t.Errorf("moderator remark = (%q, %v)", reply, ok)
	}
	if reply, ok := r.Respond(Message{Author: "someone"}, Viewer); !ok || reply == "" {
		t.Errorf("viewer remark = (%q, %v)", reply, ok)
	}
	if _, ok := r.Respond(Message{Author: "thestreamer"}, Streamer); ok {
		t.Errorf("streamer must not get a remark")
	}
}
