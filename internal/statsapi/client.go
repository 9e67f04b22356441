// Package statsapi fetches game feeds, win probability documents and the
// daily schedule from the MLB Stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rewired-gh/dugout/internal/models"
)

// ErrNotFound is returned when the API has no resource for the request,
// e.g. a game pk that does not exist.
var ErrNotFound = errors.New("statsapi: not found")

// ClientConfig holds retry and rate limit settings
type ClientConfig struct {
	MaxRetries        int
	RetryDelayBase    time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client provides access to the MLB Stats API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	config     ClientConfig
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// NewClient creates a new Stats API client
func NewClient(baseURL string, timeout time.Duration, config ClientConfig) *Client {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelayBase <= 0 {
		config.RetryDelayBase = time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 2
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		config:  config,
	}
}

// FetchGameFeed retrieves the live feed of one game
func (c *Client) FetchGameFeed(ctx context.Context, gamePk int) (*models.GameFeed, error) {
	endpoint := fmt.Sprintf("%s/api/v1.1/game/%d/feed/live", c.baseURL, gamePk)

	var feed models.GameFeed
	if err := c.getJSON(ctx, endpoint, &feed); err != nil {
		return nil, fmt.Errorf("failed to fetch game feed %d: %w", gamePk, err)
	}
	return &feed, nil
}

// FetchWinProbability retrieves the per at-bat win probability document of one game
func (c *Client) FetchWinProbability(ctx context.Context, gamePk int) ([]models.WinProbabilityAtBat, error) {
	endpoint := fmt.Sprintf("%s/api/v1/game/%d/winProbability", c.baseURL, gamePk)

	var doc []models.WinProbabilityAtBat
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		return nil, fmt.Errorf("failed to fetch win probability %d: %w", gamePk, err)
	}
	return doc, nil
}

// FetchSchedule retrieves the MLB games scheduled on the given day
func (c *Client) FetchSchedule(ctx context.Context, date time.Time) (*models.Schedule, error) {
	params := url.Values{}
	params.Set("sportId", "1")
	params.Set("date", date.Format("2006-01-02"))
	params.Set("hydrate", "probablePitcher")
	endpoint := fmt.Sprintf("%s/api/v1/schedule?%s", c.baseURL, params.Encode())

	var schedule models.Schedule
	if err := c.getJSON(ctx, endpoint, &schedule); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %s: %w", date.Format("2006-01-02"), err)
	}
	return &schedule, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doRequest performs HTTP request with rate limiting and retry logic.
// Only transport errors and 5xx responses are retried.
func (c *Client) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	var lastErr error

	for i := 0; i < c.config.MaxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "dugout")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < c.config.MaxRetries-1 && !c.backoff(ctx, i) {
				return nil, ctx.Err()
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, ErrNotFound
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = &StatusError{Code: resp.StatusCode, URL: endpoint}
			if i < c.config.MaxRetries-1 && !c.backoff(ctx, i) {
				return nil, ctx.Err()
			}
			continue
		case resp.StatusCode >= 400:
			resp.Body.Close()
			return nil, &StatusError{Code: resp.StatusCode, URL: endpoint}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// backoff sleeps before attempt+1, returning false if ctx ends first. It is
// not called after the last attempt.
func (c *Client) backoff(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(c.config.RetryDelayBase * time.Duration(attempt+1))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
