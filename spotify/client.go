// Package spotify contains a minimal client for the Spotify player API and a
// time-boxed now-playing cache used by the song command.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

const defaultAPIBase = "https://api.spotify.com"

// Endpoint is Spotify's OAuth 2.0 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// Client calls the player API with a user token kept fresh by the token source.
// The zero fields default to the public API base and http.DefaultClient.
type Client struct {
	TokenSource oauth2.TokenSource
	HTTPClient  *http.Client
	BaseURL     string
}

// NewClient builds a client around the refresh-token grant. The context is used
// for token exchange requests for the life of the client.
func NewClient(ctx context.Context, clientID, clientSecret, refreshToken string) *Client {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return &Client{TokenSource: ts}
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultAPIBase
}

// Playback reports the currently playing track as returned by the service.
type Playback struct {
	Track      string
	Artists    []string
	DurationMS int
	ProgressMS int
}

// CurrentPlayback fetches what is playing right now. It returns (nil, nil) when
// nothing is actively playing (204, missing item, or paused player), and an error
// for transport or API failures.
func (c *Client) CurrentPlayback(ctx context.Context) (*Playback, error) {
	tok, err := c.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("spotify token: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base()+"/v1/me/player/currently-playing", nil)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)
	resp, err := c.http().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("spotify currently-playing: %s: %s", resp.Status, string(b))
	}
	var body struct {
		IsPlaying bool `json:"is_playing"`
		Item      *struct {
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			DurationMS int `json:"duration_ms"`
		} `json:"item"`
		ProgressMS int `json:"progress_ms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Item == nil || !body.IsPlaying {
		return nil, nil
	}
	pb := &Playback{
		Track:      body.Item.Name,
		DurationMS: body.Item.DurationMS,
		ProgressMS: body.ProgressMS,
	}
	for _, a := range body.Item.Artists {
		pb.Artists = append(pb.Artists, a.Name)
	}
	return pb, nil
}
