// Package playlists recommends playlists for a mood through an external
// provider's search API. The integration is optional: an unconfigured or
// failing provider degrades to empty results, never a hard failure of the
// analysis flow.
package playlists

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/ratelimit"
)

const (
	// Rate limit: 5 requests per second, burst of 3.
	defaultRPS   = 5.0
	defaultBurst = 3

	defaultTimeout = 10 * time.Second

	// Refresh the token this long before the provider expires it.
	tokenExpirySlack = 30 * time.Second

	defaultTokenURL   = "https://accounts.spotify.com/api/token"
	defaultAPIBaseURL = "https://api.spotify.com/v1"

	searchPageSize = 10
	searchMarket   = "US"
)

// Sentinel errors for playlist provider operations.
var (
	ErrNotConfigured = errors.New("playlists: provider not configured")
	ErrUnauthorized  = errors.New("playlists: unauthorized")
	ErrRateLimited   = errors.New("playlists: rate limited by provider")
	ErrServer        = errors.New("playlists: provider error")
)

// Options configures the playlist provider client.
type Options struct {
	ClientID     string
	ClientSecret string
	// TokenURL and APIBaseURL default to the public provider endpoints;
	// tests point them at a local server.
	TokenURL   string
	APIBaseURL string
	Logger     *slog.Logger
}

// Client is a rate-limited playlist provider client using the
// client-credentials token flow. Tokens are cached until shortly before
// expiry.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger

	clientID     string
	clientSecret string
	tokenURL     string
	apiBaseURL   string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New creates a playlist client. Missing credentials are not an error;
// the client reports unavailable and every lookup short-circuits.
func New(opts Options) *Client {
	if opts.TokenURL == "" {
		opts.TokenURL = defaultTokenURL
	}
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = defaultAPIBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:      ratelimit.New(defaultRPS, defaultBurst),
		logger:       opts.Logger,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		tokenURL:     opts.TokenURL,
		apiBaseURL:   strings.TrimRight(opts.APIBaseURL, "/"),
	}
}

// Available reports whether provider credentials are configured.
func (c *Client) Available() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// token returns a cached access token, fetching a fresh one when missing
// or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed: status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.UnmarshalRead(resp.Body, &tok); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySlack)

	c.logger.Debug("playlist provider token refreshed", "expires_in", tok.ExpiresIn)

	return c.accessToken, nil
}

// invalidateToken drops the cached token so the next call refetches.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

// searchPlaylists runs one provider search and converts the usable hits.
func (c *Client) searchPlaylists(ctx context.Context, term string, limit int) ([]Playlist, error) {
	if err := c.limiter.Wait(ctx, "search"); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"q":      {term},
		"type":   {"playlist"},
		"limit":  {strconv.Itoa(limit)},
		"market": {searchMarket},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("playlist search", "term", term, "limit", limit)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Parsed below.
	case resp.StatusCode == http.StatusUnauthorized:
		c.invalidateToken()
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.UnmarshalRead(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	playlists := make([]Playlist, 0, len(result.Playlists.Items))
	for _, item := range result.Playlists.Items {
		// The provider pads result pages with nulls.
		if item == nil || item.Name == "" || item.ExternalURLs.Spotify == "" {
			continue
		}
		playlists = append(playlists, item.toPlaylist())
	}

	return playlists, nil
}
