package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/storage"
)

// HTTPClient implements DataSource by calling the HealthTrack REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) LatestHealthRecord(ctx context.Context, _ int) (*models.HealthRecordRow, error) {
	body, err := c.get(ctx, "/api/v1/health/latest", nil)
	if err != nil {
		return nil, err
	}

	var rec models.HealthRecordRow
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("httpclient: decode health record: %w", err)
	}
	return &rec, nil
}

func (c *HTTPClient) QueryHealthRecords(ctx context.Context, _ int, start, end time.Time) ([]models.HealthRecordRow, error) {
	body, err := c.get(ctx, "/api/v1/health", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var rows []models.HealthRecordRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode health records: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) ListGoals(ctx context.Context, _ int) ([]models.GoalRow, error) {
	body, err := c.get(ctx, "/api/v1/goals", nil)
	if err != nil {
		return nil, err
	}

	var rows []models.GoalRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode goals: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) ListPlans(ctx context.Context, _ int) ([]models.SavedPlanRow, error) {
	body, err := c.get(ctx, "/api/v1/exercise/plans", nil)
	if err != nil {
		return nil, err
	}

	var rows []models.SavedPlanRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode plans: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) ListCatalogExercises(ctx context.Context, env plan.Environment) ([]models.CatalogExerciseRow, error) {
	body, err := c.get(ctx, "/api/v1/exercise/list", url.Values{"environment": {string(env)}})
	if err != nil {
		return nil, err
	}

	var rows []models.CatalogExerciseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode catalog: %w", err)
	}
	return rows, nil
}
