// Package store persists completed calculations and their audit trails.
//
// The engine treats persistence as an external collaborator: Store is the
// contract, with a memory implementation for local/CLI use and tests, and
// an HTTP client for the reporting backend. The engine itself never caches.
package store

import (
	"context"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrNotFound indicates no calculation exists with the requested ID.
var ErrNotFound = constError("calculation not found")

// Filters narrows a calculation listing. Zero-value fields match everything.
type Filters struct {
	CompanyID     string
	Scope         ghg.Scope
	ReportingYear int
	Status        ghg.CalculationStatus
}

// Store records calculations and serves reads. Implementations must be
// safe for concurrent use.
type Store interface {
	// Save records a completed calculation together with its audit trail.
	Save(ctx context.Context, calc ghg.EmissionCalculation, trail []ghg.AuditEntry) error

	// List returns calculations matching the filters, newest first.
	List(ctx context.Context, filters Filters) ([]ghg.EmissionCalculation, error)

	// Get returns one calculation by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (ghg.EmissionCalculation, error)

	// SetStatus transitions a calculation's lifecycle status. The approval
	// decision itself is owned by the external review workflow; this only
	// records its outcome.
	SetStatus(ctx context.Context, id string, status ghg.CalculationStatus) error

	// AuditTrail returns the ordered audit entries for a calculation, or
	// ErrNotFound when the calculation does not exist.
	AuditTrail(ctx context.Context, id string) ([]ghg.AuditEntry, error)
}
