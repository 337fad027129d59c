package checker

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
)

const defaultMatchListURL = "https://api.domainsdb.info/v1"

// MatchListChecker queries a registration search endpoint that answers with
// the list of existing registrations matching a name. An empty match list
// means the exact domain can still be registered; any match means it exists.
// Non-2xx statuses and malformed bodies are reported as errors so the scanner
// can fail closed.
type MatchListChecker struct {
	Client  *http.Client
	BaseURL string
	Timeout time.Duration
	Limiter *rate.Limiter
}

// matchListResponse is the provider's search result shape.
type matchListResponse struct {
	Domains []struct {
		Domain string `json:"domain"`
	} `json:"domains"`
	Total int `json:"total"`
}

// Check performs one search query for the exact domain string.
func (c *MatchListChecker) Check(ctx context.Context, domain string) (bool, error) {
	if c == nil {
		return false, errors.New("matchlist checker is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	value := strings.ToLower(strings.TrimSpace(domain))
	if value == "" {
		return false, errors.New("domain is required")
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = defaultMatchListURL
	}

	endpoint := strings.TrimRight(base, "/") + "/domains/search?domain=" + url.QueryEscape(value)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", value, err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("lookup %s: status %d", value, resp.StatusCode)
	}

	var parsed matchListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("decode lookup response for %s: %w", value, err)
	}

	// One or more matches means the name exists; only an empty match list
	// counts as available.
	return len(parsed.Domains) == 0, nil
}
