package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbondesk/carbondesk/internal/factors"
	"github.com/carbondesk/carbondesk/internal/ghg"
)

// CalculateScope1 computes direct emissions: the sum over every fuel,
// process, and fugitive line item of quantity times the provider-resolved
// factor for that fuel or gas in the item's unit.
//
// Returns a GuardError (wrapping ErrInvalidRequest) for requests that fail
// the pre-flight check, and a wrapped provider error when a factor cannot
// be resolved.
func (e *Engine) CalculateScope1(ctx context.Context, req *ghg.Scope1Request) (*ghg.EmissionCalculation, error) {
	started := time.Now()
	if err := guardRequest(req); err != nil {
		return nil, err
	}

	var totalKg float64
	var trail []ghg.AuditEntry

	resolve := func(key, unit, lineItem string, quantity float64) error {
		factor, err := factors.FuelFactor(ctx, e.provider, key, unit)
		if err != nil {
			return fmt.Errorf("calculating scope 1 emissions: resolving factor for %s (%s): %w", key, unit, err)
		}
		kg := quantity * factor.KgCO2ePerUnit
		totalKg += kg
		trail = append(trail, ghg.AuditEntry{
			ID:              ulid.Make().String(),
			LineItem:        lineItem,
			Key:             key,
			Quantity:        quantity,
			Unit:            ghg.NormalizeUnit(unit),
			FactorKgPerUnit: factor.KgCO2ePerUnit,
			FactorSource:    ghg.FactorFromRegistry,
			FactorRef:       fmt.Sprintf("%s (%d)", factor.Source, factor.Vintage),
			KgCO2e:          kg,
			RecordedAt:      time.Now().UTC(),
		})
		return nil
	}

	for i, item := range req.FuelData {
		if err := resolve(item.FuelType, item.Unit, fmt.Sprintf("fuel_data[%d]", i), *item.Amount); err != nil {
			return nil, err
		}
	}
	for i, item := range req.ProcessData {
		if err := resolve(item.ProcessType, item.Unit, fmt.Sprintf("process_data[%d]", i), *item.Amount); err != nil {
			return nil, err
		}
	}
	for i, item := range req.FugitiveData {
		if err := resolve(item.GasType, item.Unit, fmt.Sprintf("fugitive_data[%d]", i), *item.Amount); err != nil {
			return nil, err
		}
	}

	calc := e.newCalculation(req, totalKg)
	stampTrail(trail, calc.ID)

	if err := e.persist(ctx, calc, trail); err != nil {
		return nil, err
	}

	lineItems := len(req.FuelData) + len(req.ProcessData) + len(req.FugitiveData)
	logCompleted(ctx, calc, lineItems, started)
	return &calc, nil
}

// stampTrail back-fills the calculation ID on audit entries built before
// the result envelope existed.
func stampTrail(trail []ghg.AuditEntry, calcID string) {
	for i := range trail {
		trail[i].CalculationID = calcID
	}
}
