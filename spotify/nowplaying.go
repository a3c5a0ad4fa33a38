package spotify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tekunogosu/terabot/telemetry"
)

// PlaybackSource is the capability the cache wraps. *Client satisfies it; tests
// substitute their own.
type PlaybackSource interface {
	CurrentPlayback(ctx context.Context) (*Playback, error)
}

// PlaybackFunc adapts a function to PlaybackSource.
type PlaybackFunc func(ctx context.Context) (*Playback, error)

func (f PlaybackFunc) CurrentPlayback(ctx context.Context) (*Playback, error) { return f(ctx) }

// cacheEntry is valid until the track the service reported runs out. expiresAt is
// always derived from the service's reported remaining duration, never guessed.
type cacheEntry struct {
	displayText string
	expiresAt   time.Time
}

// NowPlaying caches the currently playing track for the remainder of the song, so
// repeated song commands during one track cost no network calls.
//
// NowPlaying is not safe for concurrent use: Display is called only from the
// chat-event goroutine.
type NowPlaying struct {
	src        PlaybackSource
	retryDelay time.Duration
	now        func() time.Time
	sleep      func(context.Context, time.Duration)
	entry      *cacheEntry
}

func NewNowPlaying(src PlaybackSource) *NowPlaying {
	return &NowPlaying{
		src:        src,
		retryDelay: 500 * time.Millisecond,
		now:        time.Now,
		sleep: func(ctx context.Context, d time.Duration) {
			select {
			case <-ctx.Done():
			case <-time.After(d):
			}
		},
	}
}

// Display returns the now-playing line annotated with the track's remaining time,
// or "" when nothing is playing or the service is unavailable. Callers treat ""
// as "send a fallback message", not as an error.
func (n *NowPlaying) Display(ctx context.Context) string {
	now := n.now()
	if n.entry != nil && now.Before(n.entry.expiresAt) {
		telemetry.PlaybackCacheHit()
		return annotate(n.entry.displayText, n.entry.expiresAt.Sub(now))
	}

	telemetry.PlaybackCacheMiss()
	pb, err := n.src.CurrentPlayback(ctx)
	if err != nil {
		slog.Warn("playback query failed; retrying once", slog.Any("err", err))
		n.sleep(ctx, n.retryDelay)
		pb, err = n.src.CurrentPlayback(ctx)
	}
	if err != nil {
		slog.Error("playback query failed after retry", slog.Any("err", err))
		telemetry.PlaybackQueryFailed()
		return ""
	}
	if pb == nil {
		// Nothing playing: don't cache, so the next call re-queries.
		return ""
	}

	remaining := time.Duration(pb.DurationMS-pb.ProgressMS) * time.Millisecond
	if remaining < 0 {
		remaining = 0
	}
	display := pb.Track + " - " + strings.Join(pb.Artists, ", ")
	n.entry = &cacheEntry{displayText: display, expiresAt: now.Add(remaining)}
	return annotate(display, remaining)
}

func annotate(text string, remaining time.Duration) string {
	secs := int(remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("%s (%d:%02d left)", text, secs/60, secs%60)
}
