// Package ghg defines the domain model for GHG Protocol emissions
// accounting: activity line items, reporting periods, the scope-discriminated
// calculation request union, emission factors, and calculation results.
//
// The package owns no behavior beyond light invariant helpers; the
// validation and engine packages consume these types.
package ghg

import "time"

// Scope identifies a GHG Protocol scope.
type Scope string

const (
	// Scope1 covers direct emissions from owned or controlled sources.
	Scope1 Scope = "scope_1"

	// Scope2 covers indirect emissions from purchased electricity, steam,
	// heat, and cooling.
	Scope2 Scope = "scope_2"

	// Scope3 covers all other indirect value-chain emissions.
	Scope3 Scope = "scope_3"
)

// ActivityType classifies the measured activity behind a line item.
type ActivityType string

const (
	ActivityStationaryCombustion ActivityType = "stationary_combustion"
	ActivityMobileCombustion     ActivityType = "mobile_combustion"
	ActivityFugitiveEmissions    ActivityType = "fugitive_emissions"
	ActivityProcessEmissions     ActivityType = "process_emissions"
	ActivityGridElectricity      ActivityType = "grid_electricity"
	ActivityRenewableElectricity ActivityType = "renewable_electricity"
)

// Combustion reports whether the activity implies fuel combustion, in which
// case a fuel type is required on Scope 1 line items.
func (a ActivityType) Combustion() bool {
	return a == ActivityStationaryCombustion || a == ActivityMobileCombustion
}

// DataQuality is the self-reported quality tier of a measured input.
type DataQuality string

const (
	QualityHigh   DataQuality = "high"
	QualityMedium DataQuality = "medium"
	QualityLow    DataQuality = "low"
)

// Methodology selects the GHG Protocol Scope 2 accounting method.
type Methodology string

const (
	// LocationBased applies grid-average emission factors for the region
	// where consumption occurs.
	LocationBased Methodology = "location_based"

	// MarketBased applies contractual-instrument factors (supplier rates,
	// RECs, residual mix) where available.
	MarketBased Methodology = "market_based"
)

// Valid reports whether m is one of the two recognized methodologies.
func (m Methodology) Valid() bool {
	return m == LocationBased || m == MarketBased
}

// FuelLineItem is one measured fuel input to a Scope 1 calculation.
//
// Numeric fields that must distinguish "absent" from "zero" are pointers:
// a missing Amount is a critical validation error while an explicit zero is
// only a warning.
type FuelLineItem struct {
	FuelType     string       `json:"fuel_type"`
	ActivityType ActivityType `json:"activity_type,omitempty"`
	Amount       *float64     `json:"amount"`
	Unit         string       `json:"unit"`

	// HeatingValue is the fuel's higher heating value in BTU per unit,
	// used for cross-checks only; it does not enter the CO2e arithmetic.
	HeatingValue *float64 `json:"heating_value,omitempty"`

	// CarbonContent is the fuel's carbon content as a percentage (0-100).
	CarbonContent *float64 `json:"carbon_content,omitempty"`

	DataQuality       DataQuality `json:"data_quality,omitempty"`
	SourceDescription string      `json:"source_description,omitempty"`
}

// ProcessLineItem is one industrial-process emission input to Scope 1.
type ProcessLineItem struct {
	ProcessType string      `json:"process_type"`
	Amount      *float64    `json:"amount"`
	Unit        string      `json:"unit"`
	DataQuality DataQuality `json:"data_quality,omitempty"`
	Description string      `json:"description,omitempty"`
}

// FugitiveLineItem is one fugitive-release input (refrigerant leaks,
// pipeline losses) to Scope 1.
type FugitiveLineItem struct {
	GasType     string      `json:"gas_type"`
	Amount      *float64    `json:"amount"`
	Unit        string      `json:"unit"`
	DataQuality DataQuality `json:"data_quality,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ElectricityLineItem is one purchased-electricity input to Scope 2.
type ElectricityLineItem struct {
	ActivityType ActivityType `json:"activity_type,omitempty"`
	Amount       *float64     `json:"amount"`
	Unit         string       `json:"unit"`

	// Region is the grid region (eGRID subregion or equivalent) used for
	// location-based factor lookup. Required for location-based accounting.
	Region string `json:"electricity_region,omitempty"`

	// RenewablePercentage is the share (0-100) of this purchase covered by
	// renewable instruments.
	RenewablePercentage *float64 `json:"renewable_percentage,omitempty"`

	// SupplierFactor is an optional supplier-specific emission factor in
	// kg CO2e per unit, used by market-based accounting when present.
	SupplierFactor *float64 `json:"supplier_factor,omitempty"`

	DataQuality DataQuality `json:"data_quality,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Scope3CategoryItem is one value-chain category entry in a Scope 3
// calculation. The emission factor is supplied by the caller rather than
// looked up: Scope 3 factors are typically sourced from supplier studies or
// spend-based models outside the factor registry.
type Scope3CategoryItem struct {
	Category       Scope3Category `json:"category"`
	Quantity       *float64       `json:"quantity"`
	Unit           string         `json:"unit"`
	EmissionFactor *float64       `json:"emission_factor"`
	DataQuality    DataQuality    `json:"data_quality,omitempty"`
	Description    string         `json:"description,omitempty"`
}

// CalculationRequest is the scope-discriminated union of calculation inputs.
// The concrete types are Scope1Request, Scope2Request, and Scope3Request;
// construction by the caller makes the scope unambiguous, so "unrecognized
// shape" only survives at the JSON parse boundary (see ParseRequest).
type CalculationRequest interface {
	// RequestScope returns the GHG scope this request targets.
	RequestScope() Scope

	// Company returns the owning company identifier.
	Company() string

	// ReportingPeriod returns the period the activity data covers.
	ReportingPeriod() Period

	// Name returns the caller-assigned calculation name.
	Name() string
}

// Scope1Request carries direct-emission activity data.
type Scope1Request struct {
	CalculationName string             `json:"calculation_name"`
	CompanyID       string             `json:"company_id"`
	Period          Period             `json:"reporting_period"`
	FuelData        []FuelLineItem     `json:"fuel_data"`
	ProcessData     []ProcessLineItem  `json:"process_data,omitempty"`
	FugitiveData    []FugitiveLineItem `json:"fugitive_data,omitempty"`
}

func (r *Scope1Request) RequestScope() Scope { return Scope1 }
func (r *Scope1Request) Company() string { return r.CompanyID }
func (r *Scope1Request) ReportingPeriod() Period { return r.Period }
func (r *Scope1Request) Name() string { return r.CalculationName }

// Scope2Request carries purchased-electricity activity data.
type Scope2Request struct {
	CalculationName string                `json:"calculation_name"`
	CompanyID       string                `json:"company_id"`
	Period          Period                `json:"reporting_period"`
	ElectricityData []ElectricityLineItem `json:"electricity_data"`
	Methodology     Methodology           `json:"methodology"`

	// RenewablePercentage is an optional company-wide renewable share
	// (0-100) applied when individual line items carry none.
	RenewablePercentage *float64 `json:"renewable_percentage,omitempty"`
}

func (r *Scope2Request) RequestScope() Scope { return Scope2 }
func (r *Scope2Request) Company() string { return r.CompanyID }
func (r *Scope2Request) ReportingPeriod() Period { return r.Period }
func (r *Scope2Request) Name() string { return r.CalculationName }

// Scope3Request carries value-chain category data.
type Scope3Request struct {
	CalculationName string               `json:"calculation_name"`
	CompanyID       string               `json:"company_id"`
	Period          Period               `json:"reporting_period"`
	Categories      []Scope3CategoryItem `json:"categories"`
}

func (r *Scope3Request) RequestScope() Scope { return Scope3 }
func (r *Scope3Request) Company() string { return r.CompanyID }
func (r *Scope3Request) ReportingPeriod() Period { return r.Period }
func (r *Scope3Request) Name() string { return r.CalculationName }

// EmissionFactor is read-only reference data produced by a factor provider:
// the conversion constant from one activity unit to kg CO2e.
type EmissionFactor struct {
	// Key identifies the fuel, activity, or grid region the factor applies to.
	Key string `json:"key"`

	// Region qualifies grid-electricity factors; empty for fuels.
	Region string `json:"region,omitempty"`

	// Unit is the activity unit the factor converts from (therms, kWh, gal).
	Unit string `json:"unit"`

	// KgCO2ePerUnit is the conversion constant in kg CO2e per Unit.
	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit"`

	// Source names the publishing body and table (e.g. "EPA GHG Emission
	// Factors Hub").
	Source string `json:"source"`

	// Vintage is the publication year of the factor.
	Vintage int `json:"vintage"`

	// Market is true for contractual-instrument factors (supplier rates,
	// residual mix) usable only by market-based Scope 2 accounting.
	Market bool `json:"market,omitempty"`
}

// CalculationStatus is the lifecycle state of a completed calculation.
// The engine only ever produces StatusCompleted; approval transitions are
// owned by the external review workflow.
type CalculationStatus string

const (
	StatusDraft     CalculationStatus = "draft"
	StatusCompleted CalculationStatus = "completed"
	StatusApproved  CalculationStatus = "approved"
	StatusRejected  CalculationStatus = "rejected"
)

// EmissionCalculation is the result of a successful scope calculation.
// Totals are in metric tons CO2e.
type EmissionCalculation struct {
	ID               string            `json:"id"`
	CalculationName  string            `json:"calculation_name"`
	CompanyID        string            `json:"company_id"`
	Scope            Scope             `json:"scope_type"`
	ReportingYear    int               `json:"reporting_year"`
	TotalCO2e        float64           `json:"total_co2e"`
	TotalScope1CO2e  *float64          `json:"total_scope1_co2e,omitempty"`
	TotalScope2CO2e  *float64          `json:"total_scope2_co2e,omitempty"`
	TotalScope3CO2e  *float64          `json:"total_scope3_co2e,omitempty"`
	DataQualityScore int               `json:"data_quality_score"`
	Status           CalculationStatus `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
}
