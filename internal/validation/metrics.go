package validation

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

// MetricsRange bounds a metrics query. Zero-value dates mean unbounded.
type MetricsRange struct {
	StartDate ghg.Date
	EndDate   ghg.Date
}

// MetricsSource serves historical validation metrics. It is an external
// collaborator; the engine only reads from it.
type MetricsSource interface {
	ValidationMetrics(ctx context.Context, r MetricsRange) (Metrics, error)
}

// GetValidationMetrics fetches metrics from src with graceful degradation:
// on any transport failure it returns a zeroed Metrics rather than an
// error, because a metrics outage must never break validation surfaces.
// The failure is logged, not swallowed silently.
func (e *Engine) GetValidationMetrics(ctx context.Context, src MetricsSource, r MetricsRange) Metrics {
	if src == nil {
		return zeroMetrics()
	}

	metrics, err := src.ValidationMetrics(ctx, r)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "validation").
			Err(err).
			Msg("metrics store unavailable, returning zeroed metrics")
		return zeroMetrics()
	}

	if metrics.CommonErrors == nil {
		metrics.CommonErrors = []ErrorFrequency{}
	}
	if metrics.QualityTrends == nil {
		metrics.QualityTrends = []QualityTrend{}
	}
	return metrics
}

// zeroMetrics is the documented degraded-mode response.
func zeroMetrics() Metrics {
	return Metrics{
		TotalValidations:    0,
		SuccessRate:         0,
		AverageQualityScore: 0,
		CommonErrors:        []ErrorFrequency{},
		QualityTrends:       []QualityTrend{},
	}
}

// MetricsClient is a MetricsSource backed by the reporting backend's JSON
// HTTP API (GET /validation-metrics).
type MetricsClient struct {
	baseURL string
	http    *http.Client
}

// NewMetricsClient creates a metrics store client. A nil httpClient falls
// back to http.DefaultClient.
func NewMetricsClient(baseURL string, httpClient *http.Client) *MetricsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MetricsClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// ValidationMetrics queries the metrics endpoint. Failures are wrapped;
// graceful degradation is the caller's concern (see GetValidationMetrics).
func (c *MetricsClient) ValidationMetrics(ctx context.Context, r MetricsRange) (Metrics, error) {
	q := url.Values{}
	if !r.StartDate.IsZero() {
		q.Set("start_date", r.StartDate.Format("2006-01-02"))
	}
	if !r.EndDate.IsZero() {
		q.Set("end_date", r.EndDate.Format("2006-01-02"))
	}

	endpoint := c.baseURL + "/validation-metrics"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metrics{}, fmt.Errorf("building metrics request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Metrics{}, fmt.Errorf("fetching validation metrics: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Metrics{}, fmt.Errorf("fetching validation metrics: unexpected status %d", resp.StatusCode)
	}

	var metrics Metrics
	if err := json.NewDecoder(resp.Body).Decode(&metrics); err != nil {
		return Metrics{}, fmt.Errorf("decoding validation metrics: %w", err)
	}
	return metrics, nil
}
