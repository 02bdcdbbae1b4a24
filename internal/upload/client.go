package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/healthtrack/internal/plan"
)

// savePlanRequest mirrors the server's request body without importing the
// server package (which would pull in pgx and other server-side dependencies).
type savePlanRequest struct {
	Environment plan.Environment `json:"environment"`
	Plan        string           `json:"plan"`
}

// Client sends plans to the HealthTrack server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the HealthTrack server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// SavePlan POSTs a plan to the server's save endpoint.
// Network errors and 5xx responses are retried up to 3 times with
// exponential backoff; 4xx responses fail immediately.
func (c *Client) SavePlan(ctx context.Context, env plan.Environment, text string) error {
	data, err := json.Marshal(savePlanRequest{Environment: env, Plan: text})
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/exercise/plans", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			return nil
		case resp.StatusCode < 500:
			return fmt.Errorf("save plan rejected (status %d): %s", resp.StatusCode, body)
		}
		lastErr = fmt.Errorf("save plan failed (status %d): %s", resp.StatusCode, body)
	}

	return fmt.Errorf("after 3 attempts: %w", lastErr)
}
