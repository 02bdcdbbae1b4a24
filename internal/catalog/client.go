package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/healthtrack/internal/plan"
)

// Static serves the built-in seed catalog without a database.
type Static struct{}

// Exercises implements plan.CatalogSource.
func (Static) Exercises(_ context.Context, env plan.Environment) ([]plan.CatalogEntry, error) {
	return Seed(env), nil
}

// HTTPClient fetches the catalog from a HealthTrack server's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time checks: both sources satisfy plan.CatalogSource.
var (
	_ plan.CatalogSource = Static{}
	_ plan.CatalogSource = (*HTTPClient)(nil)
)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Exercises implements plan.CatalogSource via GET /api/v1/exercise/list.
func (c *HTTPClient) Exercises(ctx context.Context, env plan.Environment) ([]plan.CatalogEntry, error) {
	u := c.baseURL + "/api/v1/exercise/list?" + url.Values{"environment": {string(env)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", env, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: list returned %d: %s", resp.StatusCode, body)
	}

	var entries []plan.CatalogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("catalog: decode list: %w", err)
	}
	return entries, nil
}

// Seeder stores catalog entries for an environment, skipping names it
// already has. *storage.DB implements it.
type Seeder interface {
	SeedCatalog(ctx context.Context, env plan.Environment, entries []plan.CatalogEntry) (int64, error)
}

// SeedAll stores the built-in catalog of every environment and reports how
// many entries were new.
func SeedAll(ctx context.Context, s Seeder) (map[plan.Environment]int64, error) {
	inserted := make(map[plan.Environment]int64, len(plan.Environments))
	for _, env := range plan.Environments {
		n, err := s.SeedCatalog(ctx, env, Seed(env))
		if err != nil {
			return inserted, fmt.Errorf("seeding %s catalog: %w", env, err)
		}
		inserted[env] = n
	}
	return inserted, nil
}
