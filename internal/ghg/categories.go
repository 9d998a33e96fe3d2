package ghg

import "fmt"

// Scope3Category is one of the fifteen GHG Protocol value-chain categories.
type Scope3Category int

const (
	CategoryPurchasedGoods Scope3Category = iota + 1
	CategoryCapitalGoods
	CategoryFuelEnergyActivities
	CategoryUpstreamTransport
	CategoryWasteGenerated
	CategoryBusinessTravel
	CategoryEmployeeCommuting
	CategoryUpstreamLeasedAssets
	CategoryDownstreamTransport
	CategoryProcessingSoldProducts
	CategoryUseOfSoldProducts
	CategoryEndOfLifeSoldProducts
	CategoryDownstreamLeasedAssets
	CategoryFranchises
	CategoryInvestments
)

// scope3CategoryNames follows the GHG Protocol Corporate Value Chain
// (Scope 3) Standard category numbering.
var scope3CategoryNames = map[Scope3Category]string{
	CategoryPurchasedGoods:         "purchased_goods_and_services",
	CategoryCapitalGoods:           "capital_goods",
	CategoryFuelEnergyActivities:   "fuel_and_energy_related_activities",
	CategoryUpstreamTransport:      "upstream_transportation_and_distribution",
	CategoryWasteGenerated:         "waste_generated_in_operations",
	CategoryBusinessTravel:         "business_travel",
	CategoryEmployeeCommuting:      "employee_commuting",
	CategoryUpstreamLeasedAssets:   "upstream_leased_assets",
	CategoryDownstreamTransport:    "downstream_transportation_and_distribution",
	CategoryProcessingSoldProducts: "processing_of_sold_products",
	CategoryUseOfSoldProducts:      "use_of_sold_products",
	CategoryEndOfLifeSoldProducts:  "end_of_life_treatment_of_sold_products",
	CategoryDownstreamLeasedAssets: "downstream_leased_assets",
	CategoryFranchises:             "franchises",
	CategoryInvestments:            "investments",
}

// Valid reports whether c is one of the fifteen defined categories.
func (c Scope3Category) Valid() bool {
	_, ok := scope3CategoryNames[c]
	return ok
}

// String returns the canonical snake_case category name.
func (c Scope3Category) String() string {
	if name, ok := scope3CategoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("scope3_category(%d)", int(c))
}
