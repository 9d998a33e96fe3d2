package factors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/logging"
)

// Client is a Provider backed by a remote factor service speaking JSON over
// HTTP (GET /emissions-factors with query-string filters).
//
// The client does not retry: retry and timeout policy belong to the caller,
// which controls both through ctx and the injected http.Client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a factor service client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// EmissionFactors queries the factor service. Transport and decode failures
// are wrapped with context; the raw error never escapes uncontextualized.
func (c *Client) EmissionFactors(ctx context.Context, params LookupParams) ([]ghg.EmissionFactor, error) {
	log := logging.FromContext(ctx)

	q := url.Values{}
	if params.Source != "" {
		q.Set("source", params.Source)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.FuelType != "" {
		q.Set("fuel_type", params.FuelType)
	}
	if params.Region != "" {
		q.Set("electricity_region", params.Region)
	}
	if params.MarketOnly {
		q.Set("market", "true")
	}

	endpoint := c.baseURL + "/emissions-factors"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building factor request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching emission factors: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching emission factors: unexpected status %d", resp.StatusCode)
	}

	var out []ghg.EmissionFactor
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding emission factors: %w", err)
	}

	log.Debug().
		Str("component", "factors").
		Str("endpoint", endpoint).
		Int("factor_count", len(out)).
		Msg("fetched emission factors")

	return out, nil
}
