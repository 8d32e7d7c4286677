package search

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/thelogs/shelflife/internal/errs"
	"github.com/thelogs/shelflife/internal/model"
)

// Books searches Google Books volumes by title.
func (c *Client) Books(ctx context.Context, query string) ([]model.SearchResult, error) {
	u := c.cfg.BooksBase + "/volumes?" + queryString(map[string]string{
		"q":          "intitle:" + query,
		"maxResults": strconv.Itoa(resultLimit),
	})
	var payload struct {
		Items []struct {
			ID         string `json:"id"`
			VolumeInfo struct {
				Title      string   `json:"title"`
				Authors    []string `json:"authors"`
				ImageLinks struct {
					Thumbnail string `json:"thumbnail"`
				} `json:"imageLinks"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("books search: %w", err)
	}
	out := make([]model.SearchResult, 0, len(payload.Items))
	for _, it := range payload.Items {
		creator := strings.Join(it.VolumeInfo.Authors, ", ")
		if creator == "" {
			creator = "Unknown Author"
		}
		out = append(out, model.SearchResult{
			Title:      it.VolumeInfo.Title,
			Creator:    creator,
			ImageURL:   it.VolumeInfo.ImageLinks.Thumbnail,
			ExternalID: it.ID,
		})
	}
	return out, nil
}

// Movies searches OMDB. The provider reports "N/A" for a missing poster, and
// its error channel is a field on a 200 response ("Movie not found!" is not
// an error, just zero results).
func (c *Client) Movies(ctx context.Context, query string) ([]model.SearchResult, error) {
	if len(query) < 3 {
		return []model.SearchResult{}, nil
	}
	if c.cfg.OMDBKey == "" {
		return nil, fmt.Errorf("movies search: missing OMDB api key: %w", errs.ErrUpstream)
	}
	u := c.cfg.OMDBBase + "/?" + queryString(map[string]string{
		"s":      query,
		"apikey": c.cfg.OMDBKey,
	})
	var payload struct {
		Response string `json:"Response"`
		Search   []struct {
			Title  string `json:"Title"`
			Year   string `json:"Year"`
			IMDBID string `json:"imdbID"`
			Poster string `json:"Poster"`
		} `json:"Search"`
	}
	if err := c.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("movies search: %w", err)
	}
	if payload.Response != "True" {
		return []model.SearchResult{}, nil
	}
	out := make([]model.SearchResult, 0, len(payload.Search))
	for _, m := range payload.Search {
		poster := m.Poster
		if poster == "N/A" {
			poster = ""
		}
		out = append(out, model.SearchResult{
			Title:      m.Title,
			Creator:    m.Year,
			ImageURL:   poster,
			ExternalID: m.IMDBID,
		})
	}
	return out, nil
}

// Anime searches Jikan (MyAnimeList) anime; studios become the creator.
func (c *Client) Anime(ctx context.Context, query string) ([]model.SearchResult, error) {
	return c.jikan(ctx, "/anime", query)
}

// Manga searches Jikan manga; authors become the creator.
func (c *Client) Manga(ctx context.Context, query string) ([]model.SearchResult, error) {
	return c.jikan(ctx, "/manga", query)
}

func (c *Client) jikan(ctx context.Context, path, query string) ([]model.SearchResult, error) {
	if len(query) < 3 {
		return []model.SearchResult{}, nil
	}
	u := c.cfg.JikanBase + path + "?" + queryString(map[string]string{
		"q":     query,
		"limit": strconv.Itoa(resultLimit),
	})
	var payload struct {
		Data []struct {
			MalID  int64  `json:"mal_id"`
			Title  string `json:"title"`
			Images struct {
				JPG struct {
					ImageURL      string `json:"image_url"`
					LargeImageURL string `json:"large_image_url"`
				} `json:"jpg"`
			} `json:"images"`
			Studios []struct {
				Name string `json:"name"`
			} `json:"studios"`
			Authors []struct {
				Name string `json:"name"`
			} `json:"authors"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("jikan search: %w", err)
	}
	out := make([]model.SearchResult, 0, len(payload.Data))
	for _, a := range payload.Data {
		var names []string
		for _, s := range a.Studios {
			names = append(names, s.Name)
		}
		for _, s := range a.Authors {
			names = append(names, s.Name)
		}
		img := a.Images.JPG.LargeImageURL
		if img == "" {
			img = a.Images.JPG.ImageURL
		}
		out = append(out, model.SearchResult{
			Title:      a.Title,
			Creator:    strings.Join(names, ", "),
			ImageURL:   img,
			ExternalID: strconv.FormatInt(a.MalID, 10),
		})
	}
	return out, nil
}

// spotifyToken caches the client-credentials access token until expiry.
type spotifyToken struct {
	mu      sync.Mutex
	token   string
	expires time.Time
}

// Music searches Spotify tracks. The artist list joins into the creator and
// the first album image becomes the cover.
func (c *Client) Music(ctx context.Context, query string) ([]model.SearchResult, error) {
	tok, err := c.spotifyAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("music search: %w", err)
	}
	u := c.cfg.SpotifyBase + "/search?" + queryString(map[string]string{
		"q":     query,
		"type":  "track",
		"limit": strconv.Itoa(resultLimit),
	})
	header := http.Header{"Authorization": []string{"Bearer " + tok}}
	var payload struct {
		Tracks struct {
			Items []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := c.getJSON(ctx, u, header, &payload); err != nil {
		return nil, fmt.Errorf("music search: %w", err)
	}
	out := make([]model.SearchResult, 0, len(payload.Tracks.Items))
	for _, t := range payload.Tracks.Items {
		var artists []string
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		var img string
		if len(t.Album.Images) > 0 {
			img = t.Album.Images[0].URL
		}
		out = append(out, model.SearchResult{
			Title:      t.Name,
			Creator:    strings.Join(artists, ", "),
			ImageURL:   img,
			ExternalID: t.ID,
		})
	}
	return out, nil
}

func (c *Client) spotifyAccessToken(ctx context.Context) (string, error) {
	c.spotify.mu.Lock()
	defer c.spotify.mu.Unlock()
	if c.spotify.token != "" && time.Now().Before(c.spotify.expires) {
		return c.spotify.token, nil
	}
	if c.cfg.SpotifyClientID == "" || c.cfg.SpotifyClientSecret == "" {
		return "", fmt.Errorf("missing spotify credentials: %w", errs.ErrUpstream)
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SpotifyTokenBase+"/api/token", body)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.cfg.SpotifyClientID + ":" + c.cfg.SpotifyClientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token status %d", errs.ErrUpstream, resp.StatusCode)
	}
	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := decodeJSON(resp, &payload); err != nil {
		return "", err
	}
	c.spotify.token = payload.AccessToken
	// Refresh a minute early to avoid racing the expiry.
	c.spotify.expires = time.Now().Add(time.Duration(payload.ExpiresIn-60) * time.Second)
	return c.spotify.token, nil
}
