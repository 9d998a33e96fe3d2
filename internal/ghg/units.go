package ghg

import "strings"

// Mass conversion constants for normalizing CO2e values.
const (
	// KgPerMetricTon converts metric tons to kilograms.
	KgPerMetricTon = 1000.0

	// KgPerPound converts pounds to kilograms.
	KgPerPound = 0.453592
)

// activityUnits maps each activity family to the units the factor registry
// publishes factors for. Matching is case-insensitive.
var activityUnits = map[string][]string{
	"fuel":        {"therms", "mmbtu", "gal", "gallons", "l", "liters", "kg", "tonnes", "scf", "ccf"},
	"electricity": {"kwh", "mwh", "gwh"},
	"fugitive":    {"kg", "lb", "tonnes"},
	"process":     {"kg", "tonnes", "short_tons"},
}

// KnownFuelUnit reports whether unit is one the registry carries fuel
// factors for.
func KnownFuelUnit(unit string) bool {
	return unitIn(unit, activityUnits["fuel"])
}

// KnownElectricityUnit reports whether unit is a recognized electricity unit.
func KnownElectricityUnit(unit string) bool {
	return unitIn(unit, activityUnits["electricity"])
}

func unitIn(unit string, known []string) bool {
	u := strings.ToLower(strings.TrimSpace(unit))
	for _, k := range known {
		if u == k {
			return true
		}
	}
	return false
}

// KgToMetricTons converts a kg CO2e value to metric tons CO2e.
func KgToMetricTons(kg float64) float64 {
	return kg / KgPerMetricTon
}

// NormalizeUnit canonicalizes a unit string for factor lookup: lowercased,
// trimmed, with common aliases folded ("gallons" to "gal", "liters" to "l").
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "gallons":
		return "gal"
	case "liters", "litres":
		return "l"
	case "kilowatt_hours", "kwhs":
		return "kwh"
	default:
		return u
	}
}
