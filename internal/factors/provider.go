// Package factors supplies emission factors: the conversion constants from
// activity units to kg CO2e that the calculation engine multiplies against
// activity quantities.
//
// A Provider is external reference data from the engine's point of view.
// Three implementations exist: the built-in table (EPA-derived defaults),
// a Registry that layers YAML dataset files over the built-ins, and an HTTP
// client for a remote factor service.
package factors

import (
	"context"
	"strings"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrFactorNotFound indicates no factor matches the lookup parameters.
	ErrFactorNotFound = constError("emission factor not found")

	// ErrDatasetVersion indicates a dataset file with an unsupported
	// schema version.
	ErrDatasetVersion = constError("unsupported factor dataset schema version")
)

// LookupParams narrows a factor query. Zero-value fields match everything.
type LookupParams struct {
	// Source filters by publishing body (e.g. "EPA").
	Source string

	// Category filters by activity family ("fuel", "electricity").
	Category string

	// FuelType filters fuel factors by fuel key.
	FuelType string

	// Region filters electricity factors by grid region.
	Region string

	// MarketOnly restricts results to contractual-instrument factors.
	MarketOnly bool
}

// Provider returns emission factors matching the given parameters.
// Implementations must be safe for concurrent use and must honor ctx
// cancellation on any I/O.
type Provider interface {
	EmissionFactors(ctx context.Context, params LookupParams) ([]ghg.EmissionFactor, error)
}

// FuelFactor resolves the factor for a fuel type in a given unit.
// Returns ErrFactorNotFound when the provider carries no match.
func FuelFactor(ctx context.Context, p Provider, fuelType, unit string) (ghg.EmissionFactor, error) {
	matches, err := p.EmissionFactors(ctx, LookupParams{Category: "fuel", FuelType: fuelType})
	if err != nil {
		return ghg.EmissionFactor{}, err
	}
	want := ghg.NormalizeUnit(unit)
	for _, f := range matches {
		if ghg.NormalizeUnit(f.Unit) == want {
			return f, nil
		}
	}
	return ghg.EmissionFactor{}, ErrFactorNotFound
}

// GridFactor resolves the location-based grid-average factor for a region.
func GridFactor(ctx context.Context, p Provider, region string) (ghg.EmissionFactor, error) {
	matches, err := p.EmissionFactors(ctx, LookupParams{Category: "electricity", Region: region})
	if err != nil {
		return ghg.EmissionFactor{}, err
	}
	for _, f := range matches {
		if !f.Market {
			return f, nil
		}
	}
	return ghg.EmissionFactor{}, ErrFactorNotFound
}

// MarketFactor resolves a contractual-instrument factor for a region.
// Returns ErrFactorNotFound when no market factor is published for the
// region; callers fall back to the location-based factor and must record
// that fallback per line item.
func MarketFactor(ctx context.Context, p Provider, region string) (ghg.EmissionFactor, error) {
	matches, err := p.EmissionFactors(ctx, LookupParams{Category: "electricity", Region: region, MarketOnly: true})
	if err != nil {
		return ghg.EmissionFactor{}, err
	}
	for _, f := range matches {
		if f.Market {
			return f, nil
		}
	}
	return ghg.EmissionFactor{}, ErrFactorNotFound
}

// categoryOf derives the activity family of a factor: anything with a grid
// region or an electricity unit is "electricity", everything else "fuel".
func categoryOf(f ghg.EmissionFactor) string {
	if f.Region != "" || ghg.KnownElectricityUnit(f.Unit) {
		return "electricity"
	}
	return "fuel"
}

// matches reports whether f satisfies params. Key and region comparison is
// case-insensitive.
func matches(f ghg.EmissionFactor, params LookupParams) bool {
	if params.Source != "" && !strings.Contains(strings.ToLower(f.Source), strings.ToLower(params.Source)) {
		return false
	}
	if params.Category != "" && params.Category != categoryOf(f) {
		return false
	}
	if params.FuelType != "" && !strings.EqualFold(f.Key, params.FuelType) {
		return false
	}
	if params.Region != "" && !strings.EqualFold(f.Region, params.Region) {
		return false
	}
	if params.MarketOnly && !f.Market {
		return false
	}
	return true
}
