// Package rating looks up film ratings from the kinopoisk API.  Lookups
// are best effort: a failed or empty lookup yields a nil result, never an
// error surfaced to the catalog client.
package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client queries the rating API with a client-side rate limit and a
// bounded retry loop for 429 responses.
type Client struct {
	HTTPClient  http.Client
	APIURL      string
	APIKey      string
	Limiter     *rate.Limiter
	MaxRetries  int
	BaseBackoff time.Duration
}

// Score holds the per-source ratings of one film.
type Score struct {
	KP   float64 `json:"kp"`
	IMDB float64 `json:"imdb"`
}

// Movie is a single search hit from the rating API.
type Movie struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Year   int    `json:"year"`
	Rating Score  `json:"rating"`
}

type searchResponse struct {
	Docs []Movie `json:"docs"`
}

// NewClient builds a rating client.  apiURL is the full search endpoint
// up to and including the query parameter the title is appended to.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		HTTPClient:  http.Client{Timeout: 10 * time.Second},
		APIURL:      apiURL,
		APIKey:      apiKey,
		Limiter:     rate.NewLimiter(rate.Every(time.Second/4), 5),
		MaxRetries:  3,
		BaseBackoff: time.Second,
	}
}

// Lookup searches the rating API by film title and returns the best hit,
// or nil when the API is not configured, unreachable or has no match.
func (c *Client) Lookup(ctx context.Context, title string) (*Movie, error) {
	if c.APIKey == "" {
		return nil, nil
	}
	resp, err := c.getHTTP(ctx, c.APIURL+url.QueryEscape(title))
	if err != nil {
		return nil, fmt.Errorf("error getting film rating: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var apiResponse searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("error decoding rating response: %w", err)
	}
	if len(apiResponse.Docs) == 0 {
		return nil, nil
	}
	return &apiResponse.Docs[0], nil
}

func (c *Client) getHTTP(ctx context.Context, url string) (*http.Response, error) {
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating http request: %w", err)
		}
		req.Header.Add("accept", "application/json")
		req.Header.Add("X-API-KEY", c.APIKey)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error making http request: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		backoff := c.BaseBackoff << attempt
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("exceeded %d retries due to rate limiting", c.MaxRetries)
}
