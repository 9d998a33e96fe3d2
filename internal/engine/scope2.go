package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbondesk/carbondesk/internal/factors"
	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/logging"
)

// CalculateScope2 computes purchased-electricity emissions under the
// request's methodology.
//
// Location-based accounting multiplies each line item by the grid-average
// factor for its region. Market-based accounting prefers, in order: a
// supplier-specific factor on the line item, then a market (residual-mix)
// factor from the provider, then the location-based grid factor as an
// explicit fallback. Every fallback is tagged FactorLocationFallback in the
// audit trail; substitution is never silent.
//
// A line-item or company-wide renewable percentage scales the non-renewable
// share of the quantity before the factor is applied.
func (e *Engine) CalculateScope2(ctx context.Context, req *ghg.Scope2Request) (*ghg.EmissionCalculation, error) {
	started := time.Now()
	if err := guardRequest(req); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	var totalKg float64
	var trail []ghg.AuditEntry

	for i, item := range req.ElectricityData {
		lineItem := fmt.Sprintf("electricity_data[%d]", i)

		factor, source, err := e.resolveScope2Factor(ctx, req.Methodology, item)
		if err != nil {
			return nil, fmt.Errorf("calculating scope 2 emissions: resolving factor for region %s: %w", item.Region, err)
		}
		if source == ghg.FactorLocationFallback {
			log.Warn().
				Str("component", "engine").
				Str("line_item", lineItem).
				Str("region", item.Region).
				Msg("no market factor available, falling back to location-based factor")
		}

		quantity := effectiveQuantity(item, req.RenewablePercentage)
		kg := quantity * factor.KgCO2ePerUnit
		totalKg += kg

		trail = append(trail, ghg.AuditEntry{
			ID:              ulid.Make().String(),
			LineItem:        lineItem,
			Key:             item.Region,
			Quantity:        quantity,
			Unit:            ghg.NormalizeUnit(item.Unit),
			FactorKgPerUnit: factor.KgCO2ePerUnit,
			FactorSource:    source,
			FactorRef:       fmt.Sprintf("%s (%d)", factor.Source, factor.Vintage),
			KgCO2e:          kg,
			RecordedAt:      time.Now().UTC(),
		})
	}

	calc := e.newCalculation(req, totalKg)
	stampTrail(trail, calc.ID)

	if err := e.persist(ctx, calc, trail); err != nil {
		return nil, err
	}

	logCompleted(ctx, calc, len(req.ElectricityData), started)
	return &calc, nil
}

// resolveScope2Factor picks the factor and provenance tag for one line item
// under the given methodology.
func (e *Engine) resolveScope2Factor(
	ctx context.Context,
	methodology ghg.Methodology,
	item ghg.ElectricityLineItem,
) (ghg.EmissionFactor, ghg.FactorSource, error) {
	if methodology == ghg.LocationBased {
		factor, err := factors.GridFactor(ctx, e.provider, item.Region)
		if err != nil {
			return ghg.EmissionFactor{}, "", err
		}
		return factor, ghg.FactorFromRegistry, nil
	}

	// Market-based: supplier factor on the item wins outright.
	if item.SupplierFactor != nil {
		return ghg.EmissionFactor{
			Key:           item.Region,
			Region:        item.Region,
			Unit:          item.Unit,
			KgCO2ePerUnit: *item.SupplierFactor,
			Source:        "supplier contract",
		}, ghg.FactorFromMarket, nil
	}

	factor, err := factors.MarketFactor(ctx, e.provider, item.Region)
	if err == nil {
		return factor, ghg.FactorFromMarket, nil
	}
	if !errors.Is(err, factors.ErrFactorNotFound) {
		return ghg.EmissionFactor{}, "", err
	}

	// No market factor published for this region: explicit, audited
	// fallback to the location-based grid factor.
	factor, err = factors.GridFactor(ctx, e.provider, item.Region)
	if err != nil {
		return ghg.EmissionFactor{}, "", err
	}
	return factor, ghg.FactorLocationFallback, nil
}

// effectiveQuantity scales the item quantity by the non-renewable share.
// The item-level percentage wins over the request-level default.
func effectiveQuantity(item ghg.ElectricityLineItem, requestPct *float64) float64 {
	quantity := *item.Amount

	pct := requestPct
	if item.RenewablePercentage != nil {
		pct = item.RenewablePercentage
	}
	if pct == nil {
		return quantity
	}

	share := *pct
	if share < 0 {
		share = 0
	}
	if share > 100 {
		share = 100
	}
	return quantity * (1 - share/100)
}
