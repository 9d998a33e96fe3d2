package validation

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/logging"
)

// Engine validates calculation requests. It holds no state: construct one
// per call site or share one freely, every method is safe for concurrent
// use.
type Engine struct{}

// New creates a validation engine.
func New() *Engine {
	return &Engine{}
}

// Validate runs the full rule set over req and returns a fresh Result.
//
// It never returns an error and never panics: data problems are encoded in
// the Result, and an internal failure is recovered into a single critical
// VALIDATION_ERROR finding with a zero quality score.
func (e *Engine) Validate(ctx context.Context, req ghg.CalculationRequest) (result Result) {
	log := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("component", "validation").
				Interface("panic", r).
				Msg("validator panicked, returning VALIDATION_ERROR result")
			result = Result{
				IsValid: false,
				Errors: []Issue{{
					Code:     CodeValidationError,
					Message:  fmt.Sprintf("validation failed internally: %v", r),
					Field:    "root",
					Severity: SeverityCritical,
				}},
				QualityScore: 0,
				ValidatedAt:  time.Now().UTC(),
			}
		}
	}()

	if isNilRequest(req) {
		return Result{
			IsValid: false,
			Errors: []Issue{{
				Code:       CodeInvalidDataType,
				Message:    "input matches no recognizable calculation request shape",
				Field:      "root",
				Severity:   SeverityCritical,
				Suggestion: "provide a scope 1, scope 2, or scope 3 calculation request",
			}},
			QualityScore: 0,
			ValidatedAt:  time.Now().UTC(),
		}
	}

	var errs, warns []Issue

	errs, warns = appendIssues(errs, warns, validateRequiredFields(req))
	errs, warns = appendIssues(errs, warns, validatePeriod(req.ReportingPeriod()))

	switch r := req.(type) {
	case *ghg.Scope1Request:
		errs, warns = appendIssues(errs, warns, validateScope1(r))
	case *ghg.Scope2Request:
		errs, warns = appendIssues(errs, warns, validateScope2(r))
	case *ghg.Scope3Request:
		errs, warns = appendIssues(errs, warns, validateScope3(r))
	}

	score := e.QualityScore(req)
	result = Result{
		IsValid:         len(errs) == 0,
		Errors:          errs,
		Warnings:        warns,
		QualityScore:    score,
		Recommendations: recommendations(errs, warns, score),
		ValidatedAt:     time.Now().UTC(),
	}

	log.Debug().
		Str("component", "validation").
		Str("scope", string(req.RequestScope())).
		Str("company_id", req.Company()).
		Bool("is_valid", result.IsValid).
		Int("error_count", len(errs)).
		Int("warning_count", len(warns)).
		Int("quality_score", score).
		Msg("validated calculation request")

	return result
}

// bulkConcurrency bounds concurrent request validation in ValidateBulk.
const bulkConcurrency = 8

// ValidateBulk validates each request independently and returns results
// positionally aligned with the input. One request's failure never affects
// another's result; dispatch is concurrent but output order is the input
// order.
func (e *Engine) ValidateBulk(ctx context.Context, reqs []ghg.CalculationRequest) []Result {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			results[i] = e.Validate(gctx, req)
			return nil
		})
	}
	// Workers never return errors; Validate encodes all failures in results.
	_ = g.Wait()

	return results
}

// isNilRequest reports whether req is nil, including a typed-nil pointer
// hiding inside a non-nil interface.
func isNilRequest(req ghg.CalculationRequest) bool {
	if req == nil {
		return true
	}
	v := reflect.ValueOf(req)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// appendIssues splits a mixed finding list into errors and warnings by code.
func appendIssues(errs, warns []Issue, found []Issue) ([]Issue, []Issue) {
	for _, issue := range found {
		if issue.Code == CodeZeroActivityData || issue.Code == CodeLongReportingPeriod {
			warns = append(warns, issue)
			continue
		}
		errs = append(errs, issue)
	}
	return errs, warns
}

// Quality-score threshold below which improvement guidance is recommended.
const recommendationScoreFloor = 80

// recommendations builds human-readable guidance from the findings.
func recommendations(errs, warns []Issue, score int) []string {
	var recs []string
	if len(errs) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Resolve the %d blocking validation error(s) before running a calculation.", len(errs)))
	}
	if len(warns) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Review the %d warning(s); they do not block calculation but may indicate data entry issues.", len(warns)))
	}
	if score < recommendationScoreFloor {
		recs = append(recs, fmt.Sprintf(
			"Data quality score is %d; populate missing fields and verify quantities to improve it.", score))
	}
	return recs
}
