// Package htb is the HTTP boundary to the Hack The Box v4 API: team activity,
// rank, challenge/machine lists, and session-token renewal.
package htb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://www.hackthebox.eu"
	defaultTimeout = 10 * time.Second

	// renewalLeeway renews the token slightly before it expires so a cycle
	// never starts with a token that dies mid-flight.
	renewalLeeway = 5 * time.Minute
)

// ErrLogin is returned when HTB rejects the configured credentials or the
// login response carries no token. Renewal failures wrap it.
var ErrLogin = errors.New("htb: login failed")

// Config holds the identity the client authenticates and fetches with.
type Config struct {
	Email    string
	Password string
	TeamID   int64
	// BaseURL overrides the HTB API host; defaults to https://www.hackthebox.eu.
	BaseURL string
}

// Client is an authenticated HTB v4 API client. Safe for concurrent use;
// token state is guarded internally.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewClient returns an unauthenticated client. Call HandleTokenRenewal (or
// Login) before the first fetch.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Login authenticates with the configured credentials and stores the returned
// access token and its expiry.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]interface{}{
		"email":    c.cfg.Email,
		"password": c.cfg.Password,
		"remember": true,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/v4/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status=%d body=%s", ErrLogin, resp.StatusCode, string(b))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrLogin, err)
	}
	if lr.Message.AccessToken == "" {
		return fmt.Errorf("%w: response carried no access token", ErrLogin)
	}
	exp, err := tokenExpiry(lr.Message.AccessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}

	c.mu.Lock()
	c.token = lr.Message.AccessToken
	c.tokenExp = exp
	c.mu.Unlock()
	return nil
}

// HandleTokenRenewal logs in again when the stored token is missing, expired,
// or within the renewal leeway. A valid token is left untouched.
func (c *Client) HandleTokenRenewal(ctx context.Context) error {
	c.mu.Lock()
	valid := c.token != "" && time.Now().Before(c.tokenExp.Add(-renewalLeeway))
	c.mu.Unlock()
	if valid {
		return nil
	}
	return c.Login(ctx)
}

// GetRecentTeamActivity returns the team's recent solve feed, newest first.
func (c *Client) GetRecentTeamActivity(ctx context.Context) ([]Activity, error) {
	var activity []Activity
	path := fmt.Sprintf("/api/v4/team/activity/%d", c.cfg.TeamID)
	if err := c.get(ctx, path, &activity); err != nil {
		return nil, fmt.Errorf("htb: fetching team activity: %w", err)
	}
	return activity, nil
}

// GetTeamRank returns the team's current rank and points.
func (c *Client) GetTeamRank(ctx context.Context) (*RankStats, error) {
	var stats RankStats
	path := fmt.Sprintf("/api/v4/team/stats/owns/%d", c.cfg.TeamID)
	if err := c.get(ctx, path, &stats); err != nil {
		return nil, fmt.Errorf("htb: fetching team rank: %w", err)
	}
	return &stats, nil
}

// ListActiveChallenges returns the currently active challenges.
func (c *Client) ListActiveChallenges(ctx context.Context) ([]ChallengeItem, error) {
	var resp challengeListResponse
	if err := c.get(ctx, "/api/v4/challenge/list", &resp); err != nil {
		return nil, fmt.Errorf("htb: fetching challenge list: %w", err)
	}
	return resp.Challenges, nil
}

// ListActiveMachines returns the currently active machines.
func (c *Client) ListActiveMachines(ctx context.Context) ([]MachineItem, error) {
	var resp machineListResponse
	if err := c.get(ctx, "/api/v4/machine/list", &resp); err != nil {
		return nil, fmt.Errorf("htb: fetching machine list: %w", err)
	}
	return resp.Info, nil
}

// ListChallengeCategories returns the challenge category id/label list.
func (c *Client) ListChallengeCategories(ctx context.Context) ([]Category, error) {
	var resp categoryListResponse
	if err := c.get(ctx, "/api/v4/challenge/categories/list", &resp); err != nil {
		return nil, fmt.Errorf("htb: fetching challenge categories: %w", err)
	}
	return resp.Info, nil
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
