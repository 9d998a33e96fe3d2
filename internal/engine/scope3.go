package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// CalculateScope3 computes value-chain emissions: the sum over categories
// of quantity times the caller-supplied emission factor. No provider lookup
// happens here; Scope 3 factors are externally sourced and arrive on the
// request, which the audit trail records as caller_supplied.
func (e *Engine) CalculateScope3(ctx context.Context, req *ghg.Scope3Request) (*ghg.EmissionCalculation, error) {
	started := time.Now()
	if err := guardRequest(req); err != nil {
		return nil, err
	}

	var totalKg float64
	var trail []ghg.AuditEntry

	for i, item := range req.Categories {
		kg := *item.Quantity * *item.EmissionFactor
		totalKg += kg

		trail = append(trail, ghg.AuditEntry{
			ID:              ulid.Make().String(),
			LineItem:        fmt.Sprintf("categories[%d]", i),
			Key:             item.Category.String(),
			Quantity:        *item.Quantity,
			Unit:            ghg.NormalizeUnit(item.Unit),
			FactorKgPerUnit: *item.EmissionFactor,
			FactorSource:    ghg.FactorCallerSupplied,
			KgCO2e:          kg,
			RecordedAt:      time.Now().UTC(),
		})
	}

	calc := e.newCalculation(req, totalKg)
	stampTrail(trail, calc.ID)

	if err := e.persist(ctx, calc, trail); err != nil {
		return nil, err
	}

	logCompleted(ctx, calc, len(req.Categories), started)
	return &calc, nil
}
