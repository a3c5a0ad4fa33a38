package command

import (
	"context"
	"testing"
)

func nopHandler(tag string, hits *[]string) Handler {
	return func(ctx context.Context, rc *RequestContext) error {
		*hits = append(*hits, tag)
		return nil
	}
}

func TestResolveNamesAndAliases(t *testing.T) {
	var hits []string
	r := NewRegistry()
	r.Register("register", []string{"reg", "signup", "create"}, nopHandler("register", &hits))
	r.Register("song", []string{"np", "nowplaying"}, nopHandler("song", &hits))

	for _, token := range []string{"register", "reg", "signup", "create", "song", "np", "nowplaying"} {
		h, ok := r.Resolve(token)
		if !ok {
			t.Fatalf("Resolve(%q) returned no handler", token)
		}
		if err := h(context.Background(), &RequestContext{}); err != nil {
			t.Fatalf("handler for %q: %v", token, err)
		}
	}
	if len(hits) != 7 {
		t.Errorf("handler invocations = %d, want 7", len(hits))
	}
}

func TestResolveUnknownToken(t *testing.T) {
	r := NewRegistry()
	r.Register("song", nil, nopHandler("song", &[]string{}))
	if _, ok := r.Resolve("Song"); ok {
		t.Errorf("Resolve is case-sensitive; %q must not match", "Song")
	}
	if _, ok := r.Resolve("unknowncmd"); ok {
		t.Errorf("Resolve(%q) matched an unregistered token", "unknowncmd")
	}
}

func TestCollisionOverwritesAliasRouting(t *testing.T) {
	var hits []string
	r := NewRegistry()
	r.Register("register", []string{"reg"}, nopHandler("old", &hits))
	// A later registration named like an existing alias takes over that token.
	r.Register("reg", nil, nopHandler("new", &hits))

	h, ok := r.Resolve("reg")
	if !ok {
		t.Fatalf("Resolve(reg) returned no handler")
	}
	_ = h(context.Background(), &RequestContext{})
	if len(hits) != 1 || hits[0] != "new" {
		t.Errorf("token %q routed to %v, want the later registration", "reg", hits)
	}
	// The original name keeps its handler.
	h, _ = r.Resolve("register")
	_ = h(context.Background(), &RequestContext{})
	if hits[len(hits)-1] != "old" {
		t.Errorf("token %q no longer routes to original handler", "register")
	}
}

func TestNamesJoined(t *testing.T) {
	r := NewRegistry()
	r.Register("register", []string{"reg"}, nopHandler("a", &[]string{}))
	r.Register("song", nil, nopHandler("b", &[]string{}))
	if got, want := r.NamesJoined(), "register, song"; got != want {
		t.Errorf("NamesJoined() = %q, want %q", got, want)
	}
	// Re-registering an existing name must not duplicate the listing.
	r.Register("song", nil, nopHandler("c", &[]string{}))
	if got, want := r.NamesJoined(), "register, song"; got != want {
		t.Errorf("NamesJoined() after re-register = %q, want %q", got, want)
	}
}
