// Package search wraps the third-party metadata providers (Google Books,
// Spotify, OMDB, Jikan) behind one normalized result shape. Results are used
// only to pre-fill entry title/creator/cover fields; nothing here touches the
// block or canvas core.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/thelogs/shelflife/internal/errs"
)

const resultLimit = 10

// Config carries provider credentials and base URL overrides (tests point the
// bases at local servers).
type Config struct {
	OMDBKey             string
	SpotifyClientID     string
	SpotifyClientSecret string

	BooksBase        string
	OMDBBase         string
	JikanBase        string
	SpotifyBase      string
	SpotifyTokenBase string
}

// Client issues metadata searches against all providers.
type Client struct {
	http *http.Client
	log  *zap.Logger
	cfg  Config

	spotify spotifyToken
}

// New constructs a search client. Unset bases fall back to the public APIs.
func New(cfg Config, log *zap.Logger) *Client {
	if cfg.BooksBase == "" {
		cfg.BooksBase = "https://www.googleapis.com/books/v1"
	}
	if cfg.OMDBBase == "" {
		cfg.OMDBBase = "https://www.omdbapi.com"
	}
	if cfg.JikanBase == "" {
		cfg.JikanBase = "https://api.jikan.moe/v4"
	}
	if cfg.SpotifyBase == "" {
		cfg.SpotifyBase = "https://api.spotify.com/v1"
	}
	if cfg.SpotifyTokenBase == "" {
		cfg.SpotifyTokenBase = "https://accounts.spotify.com"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
		log:  log,
		cfg:  cfg,
	}
}

// getJSON issues a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", errs.ErrUpstream, resp.StatusCode, req.URL.Host)
	}
	return decodeJSON(resp, out)
}

func decodeJSON(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", errs.ErrUpstream, err)
	}
	return nil
}

func queryString(params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		v.Set(k, val)
	}
	return v.Encode()
}
