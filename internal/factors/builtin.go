package factors

import (
	"context"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// Built-in emission factors.
//
// Fuel factors follow the EPA GHG Emission Factors Hub (2024 edition),
// kg CO2e per activity unit. Grid factors follow eGRID-style subregion
// averages in kg CO2e per kWh. Residual-mix factors approximate the supply
// left after contractual instruments are claimed and are usable only by
// market-based Scope 2 accounting.
//
// These defaults make the engine usable without a factor service; a
// Registry layers organization-specific YAML datasets over them.
const (
	builtinSource  = "EPA GHG Emission Factors Hub"
	builtinVintage = 2024

	gridSource = "EPA eGRID"

	residualMixSource = "Green-e Residual Mix"
)

// builtinFactors is the default factor table.
//
//nolint:gochecknoglobals // Read-only reference data shared by all providers.
var builtinFactors = []ghg.EmissionFactor{
	// Stationary combustion fuels.
	{Key: "natural_gas", Unit: "therms", KgCO2ePerUnit: 5.30, Source: builtinSource, Vintage: builtinVintage},
	{Key: "natural_gas", Unit: "mmbtu", KgCO2ePerUnit: 53.06, Source: builtinSource, Vintage: builtinVintage},
	{Key: "natural_gas", Unit: "scf", KgCO2ePerUnit: 0.0545, Source: builtinSource, Vintage: builtinVintage},
	{Key: "distillate_fuel_oil", Unit: "gal", KgCO2ePerUnit: 10.21, Source: builtinSource, Vintage: builtinVintage},
	{Key: "residual_fuel_oil", Unit: "gal", KgCO2ePerUnit: 11.27, Source: builtinSource, Vintage: builtinVintage},
	{Key: "propane", Unit: "gal", KgCO2ePerUnit: 5.76, Source: builtinSource, Vintage: builtinVintage},
	{Key: "kerosene", Unit: "gal", KgCO2ePerUnit: 10.15, Source: builtinSource, Vintage: builtinVintage},
	{Key: "coal_bituminous", Unit: "tonnes", KgCO2ePerUnit: 2325.0, Source: builtinSource, Vintage: builtinVintage},

	// Mobile combustion fuels.
	{Key: "gasoline", Unit: "gal", KgCO2ePerUnit: 8.78, Source: builtinSource, Vintage: builtinVintage},
	{Key: "diesel", Unit: "gal", KgCO2ePerUnit: 10.21, Source: builtinSource, Vintage: builtinVintage},
	{Key: "jet_fuel", Unit: "gal", KgCO2ePerUnit: 9.75, Source: builtinSource, Vintage: builtinVintage},

	// Fugitive gases, kg CO2e per kg released (AR5 100-year GWP).
	{Key: "r410a", Unit: "kg", KgCO2ePerUnit: 2088.0, Source: builtinSource, Vintage: builtinVintage},
	{Key: "r134a", Unit: "kg", KgCO2ePerUnit: 1430.0, Source: builtinSource, Vintage: builtinVintage},
	{Key: "methane", Unit: "kg", KgCO2ePerUnit: 28.0, Source: builtinSource, Vintage: builtinVintage},

	// Grid-average electricity, kg CO2e per kWh.
	{Key: "grid", Region: "CAMX", Unit: "kwh", KgCO2ePerUnit: 0.231, Source: gridSource, Vintage: builtinVintage},
	{Key: "grid", Region: "ERCT", Unit: "kwh", KgCO2ePerUnit: 0.373, Source: gridSource, Vintage: builtinVintage},
	{Key: "grid", Region: "RFCW", Unit: "kwh", KgCO2ePerUnit: 0.454, Source: gridSource, Vintage: builtinVintage},
	{Key: "grid", Region: "NYUP", Unit: "kwh", KgCO2ePerUnit: 0.116, Source: gridSource, Vintage: builtinVintage},
	{Key: "grid", Region: "NWPP", Unit: "kwh", KgCO2ePerUnit: 0.289, Source: gridSource, Vintage: builtinVintage},
	{Key: "grid", Region: "us_average", Unit: "kwh", KgCO2ePerUnit: 0.386, Source: gridSource, Vintage: builtinVintage},

	// Market-based residual mix, kg CO2e per kWh.
	{Key: "residual_mix", Region: "us_average", Unit: "kwh", KgCO2ePerUnit: 0.428, Source: residualMixSource, Vintage: builtinVintage, Market: true},
}

// Builtin is a Provider backed by the compiled-in factor table.
type Builtin struct{}

// EmissionFactors returns built-in factors matching params. It never fails;
// the error return satisfies the Provider contract.
func (Builtin) EmissionFactors(_ context.Context, params LookupParams) ([]ghg.EmissionFactor, error) {
	var out []ghg.EmissionFactor
	for _, f := range builtinFactors {
		if matches(f, params) {
			out = append(out, f)
		}
	}
	return out, nil
}
