package ghg

import "time"

// FactorSource records where the emission factor applied to a line item
// came from. Market-based Scope 2 accounting must distinguish a real market
// factor from a location-based fallback so audits can see where fallback
// occurred; silent substitution is not acceptable.
type FactorSource string

const (
	// FactorFromRegistry is a factor resolved from the factor provider.
	FactorFromRegistry FactorSource = "registry"

	// FactorFromMarket is a contractual-instrument factor (supplier rate,
	// residual mix) used by market-based accounting.
	FactorFromMarket FactorSource = "market"

	// FactorLocationFallback marks a market-based line item that fell back
	// to the location-based grid factor because no market factor was
	// available.
	FactorLocationFallback FactorSource = "location_fallback"

	// FactorCallerSupplied is a factor provided in the request itself
	// (Scope 3 categories).
	FactorCallerSupplied FactorSource = "caller_supplied"
)

// AuditEntry records how one line item's contribution to a calculation was
// derived: the quantity, the factor applied, and where that factor came
// from. Entries are ordered by line item and immutable once written.
type AuditEntry struct {
	ID            string       `json:"id"`
	CalculationID string       `json:"calculation_id"`

	// LineItem is the indexed request path, e.g. "electricity_data[1]".
	LineItem string `json:"line_item"`

	// Key is the fuel, gas, region, or category the factor was resolved for.
	Key string `json:"key"`

	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	// FactorKgPerUnit is the applied factor in kg CO2e per unit.
	FactorKgPerUnit float64 `json:"factor_kg_per_unit"`

	// FactorSource tags the provenance of the factor.
	FactorSource FactorSource `json:"factor_source"`

	// FactorRef names the published source and vintage of the factor,
	// empty for caller-supplied factors.
	FactorRef string `json:"factor_ref,omitempty"`

	// KgCO2e is the line item's computed contribution.
	KgCO2e float64 `json:"kg_co2e"`

	RecordedAt time.Time `json:"recorded_at"`
}
