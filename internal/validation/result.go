// Package validation checks calculation requests against structural, range,
// and consistency rules and scores their data quality.
//
// The package follows a strict non-throwing contract: malformed input data
// becomes part of the returned Result rather than an error. Blocking
// problems land in Result.Errors, advisory findings in Result.Warnings, and
// the composite 0-100 quality score summarizes completeness, accuracy,
// consistency, and timeliness. The calculation engine carries its own
// fail-fast guard layer on top of this; the two are intentionally separate
// so callers can "show what's wrong" without blocking and still refuse to
// compute over garbage.
package validation

import (
	"time"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// Severity grades a validation finding by business impact.
type Severity string

const (
	// SeverityCritical marks findings that make the request structurally
	// unusable (missing required fields, unrecognizable shape).
	SeverityCritical Severity = "critical"

	// SeverityMajor marks domain violations that would corrupt results
	// (negative quantities, inverted date ranges, unknown methodology).
	SeverityMajor Severity = "major"

	// SeverityMinor marks findings worth reviewing but unlikely to change
	// totals materially (out-of-range optional fields).
	SeverityMinor Severity = "minor"
)

// Finding codes. Stable identifiers callers key UI messages off.
const (
	// CodeMissingRequiredField: a required field is absent or empty.
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"

	// CodeMissingActivityData: the request carries no line items at all.
	CodeMissingActivityData = "MISSING_ACTIVITY_DATA"

	// CodeInvalidDataType: the input matches no recognizable request shape.
	CodeInvalidDataType = "INVALID_DATA_TYPE"

	// CodeDataOutOfRange: a value is present but outside its allowed domain.
	CodeDataOutOfRange = "DATA_OUT_OF_RANGE"

	// CodeInvalidDateRange: the reporting period is not chronological.
	CodeInvalidDateRange = "INVALID_DATE_RANGE"

	// CodeInvalidMethodology: the Scope 2 methodology is not a recognized value.
	CodeInvalidMethodology = "INVALID_METHODOLOGY"

	// CodeZeroActivityData: a line item has an explicit zero quantity.
	CodeZeroActivityData = "ZERO_ACTIVITY_DATA"

	// CodeLongReportingPeriod: the period spans more than a year.
	CodeLongReportingPeriod = "LONG_REPORTING_PERIOD"

	// CodeValidationError: the validator itself failed; the request could
	// not be assessed. Always critical, always score zero.
	CodeValidationError = "VALIDATION_ERROR"
)

// Issue is one validation finding. Field is a dotted path into the request,
// with line items indexed: "fuel_data[2].amount".
type Issue struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Field      string   `json:"field"`
	Severity   Severity `json:"severity"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Result is the outcome of one validation pass. It is created fresh per
// call and never mutated afterwards; re-validating produces a new Result.
type Result struct {
	// IsValid is true when Errors is empty. Warnings never block.
	IsValid bool `json:"is_valid"`

	// Errors are blocking findings: a calculation must not run over them.
	Errors []Issue `json:"errors"`

	// Warnings are advisory findings.
	Warnings []Issue `json:"warnings"`

	// QualityScore is the composite 0-100 data-quality score.
	QualityScore int `json:"quality_score"`

	// Recommendations are human-readable guidance strings.
	Recommendations []string `json:"recommendations,omitempty"`

	// ValidatedAt is when this result was produced.
	ValidatedAt time.Time `json:"validated_at"`
}

// Metrics summarizes historical validation outcomes, served by an external
// metrics store.
type Metrics struct {
	TotalValidations    int              `json:"total_validations"`
	SuccessRate         float64          `json:"success_rate"`
	AverageQualityScore float64          `json:"average_quality_score"`
	CommonErrors        []ErrorFrequency `json:"common_errors"`
	QualityTrends       []QualityTrend   `json:"quality_trends"`
}

// ErrorFrequency is one entry in the common-error ranking.
type ErrorFrequency struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// QualityTrend is one point in the quality-score time series.
type QualityTrend struct {
	Date         ghg.Date `json:"date"`
	AverageScore float64  `json:"average_score"`
}
