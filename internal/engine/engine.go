// Package engine turns validated activity data into Scope 1, 2, and 3
// CO2e totals per the GHG Protocol.
//
// The engine is a pure compute step: stateless between calls, no caching,
// no background work. Factor lookups and persistence are external
// collaborators reached through the injected Provider and Store; their
// failures are wrapped with context and surfaced, never retried here.
//
// Unlike the validation engine, the calculation entry points fail fast: a
// request that would mean computing over undefined values is rejected with
// a guard error before any factor lookup happens. Use validation.Engine to
// get the full non-blocking picture of what is wrong with a request.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbondesk/carbondesk/internal/factors"
	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/logging"
	"github.com/carbondesk/carbondesk/internal/store"
	"github.com/carbondesk/carbondesk/internal/validation"
)

// Engine computes emission calculations. Safe for concurrent use; all
// state lives in the request and the injected collaborators.
type Engine struct {
	provider  factors.Provider
	store     store.Store
	validator *validation.Engine
}

// New creates an engine over the given factor provider and calculation
// store. A nil store disables persistence: calculations are computed and
// returned but not recorded, which suits one-shot CLI runs.
func New(provider factors.Provider, st store.Store) *Engine {
	return &Engine{
		provider:  provider,
		store:     st,
		validator: validation.New(),
	}
}

// newCalculation assembles the result envelope shared by all scopes.
func (e *Engine) newCalculation(req ghg.CalculationRequest, totalKg float64) ghg.EmissionCalculation {
	totalTons := ghg.KgToMetricTons(totalKg)
	calc := ghg.EmissionCalculation{
		ID:               ulid.Make().String(),
		CalculationName:  req.Name(),
		CompanyID:        req.Company(),
		Scope:            req.RequestScope(),
		ReportingYear:    req.ReportingPeriod().ReportingYear,
		TotalCO2e:        totalTons,
		DataQualityScore: e.validator.QualityScore(req),
		Status:           ghg.StatusCompleted,
		CreatedAt:        time.Now().UTC(),
	}

	switch req.RequestScope() {
	case ghg.Scope1:
		calc.TotalScope1CO2e = ghg.Float(totalTons)
	case ghg.Scope2:
		calc.TotalScope2CO2e = ghg.Float(totalTons)
	case ghg.Scope3:
		calc.TotalScope3CO2e = ghg.Float(totalTons)
	}
	return calc
}

// persist records the calculation and trail when a store is configured.
func (e *Engine) persist(ctx context.Context, calc ghg.EmissionCalculation, trail []ghg.AuditEntry) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(ctx, calc, trail); err != nil {
		return fmt.Errorf("persisting calculation %s: %w", calc.ID, err)
	}
	return nil
}

// logCompleted emits the one INFO line every successful calculation gets.
func logCompleted(ctx context.Context, calc ghg.EmissionCalculation, lineItems int, started time.Time) {
	logging.FromContext(ctx).Info().
		Str("component", "engine").
		Str("calculation_id", calc.ID).
		Str("scope", string(calc.Scope)).
		Str("company_id", calc.CompanyID).
		Int("line_items", lineItems).
		Float64("total_co2e_tons", calc.TotalCO2e).
		Int("quality_score", calc.DataQualityScore).
		Dur("elapsed", time.Since(started)).
		Msg("calculation completed")
}

// GetCalculations lists persisted calculations matching the filters.
func (e *Engine) GetCalculations(ctx context.Context, filters store.Filters) ([]ghg.EmissionCalculation, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	calcs, err := e.store.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("listing calculations: %w", err)
	}
	return calcs, nil
}

// GetCalculation fetches one persisted calculation by ID.
func (e *Engine) GetCalculation(ctx context.Context, id string) (ghg.EmissionCalculation, error) {
	if e.store == nil {
		return ghg.EmissionCalculation{}, ErrNoStore
	}
	calc, err := e.store.Get(ctx, id)
	if err != nil {
		return ghg.EmissionCalculation{}, fmt.Errorf("fetching calculation %s: %w", id, err)
	}
	return calc, nil
}

// AuditTrail fetches the ordered audit entries for a calculation.
func (e *Engine) AuditTrail(ctx context.Context, id string) ([]ghg.AuditEntry, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	trail, err := e.store.AuditTrail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching audit trail for %s: %w", id, err)
	}
	return trail, nil
}

// ApprovalDecision is the outcome of an external review.
type ApprovalDecision struct {
	Approved bool   `json:"approved"`
	Reviewer string `json:"reviewer,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// ApproveCalculation records an approval-workflow decision on a completed
// calculation. The engine owns no approval logic; this is the hook the
// external workflow uses to update result status post-hoc.
func (e *Engine) ApproveCalculation(ctx context.Context, id string, decision ApprovalDecision) error {
	if e.store == nil {
		return ErrNoStore
	}

	status := ghg.StatusApproved
	if !decision.Approved {
		status = ghg.StatusRejected
	}
	if err := e.store.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("recording approval decision for %s: %w", id, err)
	}

	logging.FromContext(ctx).Info().
		Str("component", "engine").
		Str("calculation_id", id).
		Str("status", string(status)).
		Str("reviewer", decision.Reviewer).
		Msg("approval decision recorded")
	return nil
}
