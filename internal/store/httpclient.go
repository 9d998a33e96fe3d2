package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// Client is a Store backed by the reporting backend's JSON HTTP API.
//
// It performs no retries and owns no timeout: both belong to the caller,
// via ctx and the injected http.Client. Transport failures are wrapped with
// context before they reach the engine.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend store client. A nil httpClient falls back to
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

// Save posts the calculation and trail to the backend.
func (c *Client) Save(ctx context.Context, calc ghg.EmissionCalculation, trail []ghg.AuditEntry) error {
	payload := struct {
		Calculation ghg.EmissionCalculation `json:"calculation"`
		AuditTrail  []ghg.AuditEntry        `json:"audit_trail"`
	}{calc, trail}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding calculation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calculations", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("saving calculation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("saving calculation: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// List queries calculations matching the filters.
func (c *Client) List(ctx context.Context, filters Filters) ([]ghg.EmissionCalculation, error) {
	q := url.Values{}
	if filters.CompanyID != "" {
		q.Set("company_id", filters.CompanyID)
	}
	if filters.Scope != "" {
		q.Set("scope_type", string(filters.Scope))
	}
	if filters.ReportingYear != 0 {
		q.Set("reporting_year", strconv.Itoa(filters.ReportingYear))
	}
	if filters.Status != "" {
		q.Set("status", string(filters.Status))
	}

	endpoint := c.baseURL + "/calculations"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var out []ghg.EmissionCalculation
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("listing calculations: %w", err)
	}
	return out, nil
}

// Get returns one calculation by ID.
func (c *Client) Get(ctx context.Context, id string) (ghg.EmissionCalculation, error) {
	var out ghg.EmissionCalculation
	err := c.getJSON(ctx, c.baseURL+"/calculations/"+url.PathEscape(id), &out)
	if err != nil {
		return ghg.EmissionCalculation{}, fmt.Errorf("fetching calculation %s: %w", id, err)
	}
	return out, nil
}

// SetStatus records a status transition on the backend.
func (c *Client) SetStatus(ctx context.Context, id string, status ghg.CalculationStatus) error {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}

	endpoint := c.baseURL + "/calculations/" + url.PathEscape(id) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("updating calculation status: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("updating calculation status: unexpected status %d", resp.StatusCode)
	}
}

// AuditTrail fetches the ordered audit entries for a calculation.
func (c *Client) AuditTrail(ctx context.Context, id string) ([]ghg.AuditEntry, error) {
	var out []ghg.AuditEntry
	endpoint := c.baseURL + "/calculations/" + url.PathEscape(id) + "/audit-trail"
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("fetching audit trail for %s: %w", id, err)
	}
	return out, nil
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
