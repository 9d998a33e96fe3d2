package validation

import (
	"fmt"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// Percentage bounds for fields expressed as 0-100 shares.
const (
	percentMin = 0.0
	percentMax = 100.0
)

// validateRequiredFields checks the fields every request must carry:
// company, reporting period, and at least one line item.
func validateRequiredFields(req ghg.CalculationRequest) []Issue {
	var issues []Issue

	if req.Company() == "" {
		issues = append(issues, Issue{
			Code:       CodeMissingRequiredField,
			Message:    "company_id is required",
			Field:      "company_id",
			Severity:   SeverityCritical,
			Suggestion: "set company_id to the reporting entity's identifier",
		})
	}

	switch r := req.(type) {
	case *ghg.Scope1Request:
		if len(r.FuelData) == 0 && len(r.ProcessData) == 0 && len(r.FugitiveData) == 0 {
			issues = append(issues, missingActivityData("fuel_data"))
		}
	case *ghg.Scope2Request:
		if len(r.ElectricityData) == 0 {
			issues = append(issues, missingActivityData("electricity_data"))
		}
	case *ghg.Scope3Request:
		if len(r.Categories) == 0 {
			issues = append(issues, missingActivityData("categories"))
		}
	}

	return issues
}

func missingActivityData(field string) Issue {
	return Issue{
		Code:       CodeMissingActivityData,
		Message:    "at least one activity line item is required",
		Field:      field,
		Severity:   SeverityCritical,
		Suggestion: "add at least one line item of measured activity data",
	}
}

// validatePeriod checks the reporting period: presence of both bounds and
// the year, chronological order, and length.
func validatePeriod(p ghg.Period) []Issue {
	var issues []Issue

	missing := false
	if p.StartDate.IsZero() {
		issues = append(issues, Issue{
			Code:     CodeMissingRequiredField,
			Message:  "reporting period start date is required",
			Field:    "reporting_period.start_date",
			Severity: SeverityCritical,
		})
		missing = true
	}
	if p.EndDate.IsZero() {
		issues = append(issues, Issue{
			Code:     CodeMissingRequiredField,
			Message:  "reporting period end date is required",
			Field:    "reporting_period.end_date",
			Severity: SeverityCritical,
		})
		missing = true
	}
	if p.ReportingYear == 0 {
		issues = append(issues, Issue{
			Code:     CodeMissingRequiredField,
			Message:  "reporting year is required",
			Field:    "reporting_period.reporting_year",
			Severity: SeverityCritical,
		})
	}
	if missing {
		return issues
	}

	if !p.StartDate.Before(p.EndDate.Time) {
		issues = append(issues, Issue{
			Code:       CodeInvalidDateRange,
			Message:    "reporting period start date must be before end date",
			Field:      "reporting_period",
			Severity:   SeverityMajor,
			Suggestion: "swap or correct the period bounds",
		})
	}
	if p.Days() > ghg.MaxPeriodDays {
		issues = append(issues, Issue{
			Code:     CodeLongReportingPeriod,
			Message:  fmt.Sprintf("reporting period spans %d days, more than a full year", p.Days()),
			Field:    "reporting_period",
			Severity: SeverityMinor,
		})
	}

	return issues
}

// validateScope1 runs the per-line-item rules over fuel, process, and
// fugitive data.
func validateScope1(r *ghg.Scope1Request) []Issue {
	var issues []Issue

	for i, item := range r.FuelData {
		path := func(field string) string { return fmt.Sprintf("fuel_data[%d].%s", i, field) }

		if item.FuelType == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "fuel_type is required",
				Field:    path("fuel_type"),
				Severity: SeverityCritical,
			})
		}
		issues = append(issues, quantityIssues(item.Amount, path("amount"))...)
		if item.Unit == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "unit is required",
				Field:    path("unit"),
				Severity: SeverityCritical,
			})
		}
		if item.HeatingValue != nil && *item.HeatingValue <= 0 {
			issues = append(issues, Issue{
				Code:     CodeDataOutOfRange,
				Message:  "heating_value must be positive",
				Field:    path("heating_value"),
				Severity: SeverityMinor,
			})
		}
		if item.CarbonContent != nil && (*item.CarbonContent < percentMin || *item.CarbonContent > percentMax) {
			issues = append(issues, Issue{
				Code:     CodeDataOutOfRange,
				Message:  "carbon_content must be between 0 and 100",
				Field:    path("carbon_content"),
				Severity: SeverityMinor,
			})
		}
	}

	for i, item := range r.ProcessData {
		path := func(field string) string { return fmt.Sprintf("process_data[%d].%s", i, field) }
		if item.ProcessType == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "process_type is required",
				Field:    path("process_type"),
				Severity: SeverityCritical,
			})
		}
		issues = append(issues, quantityIssues(item.Amount, path("amount"))...)
		if item.Unit == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "unit is required",
				Field:    path("unit"),
				Severity: SeverityCritical,
			})
		}
	}

	for i, item := range r.FugitiveData {
		path := func(field string) string { return fmt.Sprintf("fugitive_data[%d].%s", i, field) }
		if item.GasType == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "gas_type is required",
				Field:    path("gas_type"),
				Severity: SeverityCritical,
			})
		}
		issues = append(issues, quantityIssues(item.Amount, path("amount"))...)
		if item.Unit == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "unit is required",
				Field:    path("unit"),
				Severity: SeverityCritical,
			})
		}
	}

	return issues
}

// validateScope2 runs electricity line-item rules plus the methodology and
// renewable-share checks.
func validateScope2(r *ghg.Scope2Request) []Issue {
	var issues []Issue

	if !r.Methodology.Valid() {
		issues = append(issues, Issue{
			Code:       CodeInvalidMethodology,
			Message:    fmt.Sprintf("methodology %q is not recognized", r.Methodology),
			Field:      "methodology",
			Severity:   SeverityMajor,
			Suggestion: `use "location_based" or "market_based"`,
		})
	}

	if r.RenewablePercentage != nil && (*r.RenewablePercentage < percentMin || *r.RenewablePercentage > percentMax) {
		issues = append(issues, Issue{
			Code:     CodeDataOutOfRange,
			Message:  "renewable_percentage must be between 0 and 100",
			Field:    "renewable_percentage",
			Severity: SeverityMinor,
		})
	}

	for i, item := range r.ElectricityData {
		path := func(field string) string { return fmt.Sprintf("electricity_data[%d].%s", i, field) }

		if item.ActivityType == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "activity_type is required",
				Field:    path("activity_type"),
				Severity: SeverityCritical,
			})
		}
		issues = append(issues, quantityIssues(item.Amount, path("amount"))...)
		if item.Unit == "" {
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "unit is required",
				Field:    path("unit"),
				Severity: SeverityCritical,
			})
		}
		if r.Methodology == ghg.LocationBased && item.Region == "" {
			issues = append(issues, Issue{
				Code:       CodeMissingRequiredField,
				Message:    "electricity_region is required for location-based accounting",
				Field:      path("electricity_region"),
				Severity:   SeverityCritical,
				Suggestion: "set the grid region the electricity was consumed in",
			})
		}
		if item.RenewablePercentage != nil && (*item.RenewablePercentage < percentMin || *item.RenewablePercentage > percentMax) {
			issues = append(issues, Issue{
				Code:     CodeDataOutOfRange,
				Message:  "renewable_percentage must be between 0 and 100",
				Field:    path("renewable_percentage"),
				Severity: SeverityMinor,
			})
		}
	}

	return issues
}

// validateScope3 checks category entries: a valid category, a quantity, and
// the caller-supplied emission factor.
func validateScope3(r *ghg.Scope3Request) []Issue {
	var issues []Issue

	for i, item := range r.Categories {
		path := func(field string) string { return fmt.Sprintf("categories[%d].%s", i, field) }

		switch {
		case item.Category == 0:
			issues = append(issues, Issue{
				Code:     CodeMissingRequiredField,
				Message:  "category is required",
				Field:    path("category"),
				Severity: SeverityCritical,
			})
		case !item.Category.Valid():
			issues = append(issues, Issue{
				Code:       CodeDataOutOfRange,
				Message:    fmt.Sprintf("category %d is not one of the 15 GHG Protocol categories", int(item.Category)),
				Field:      path("category"),
				Severity:   SeverityMajor,
				Suggestion: "use a category number between 1 and 15",
			})
		}

		issues = append(issues, quantityIssues(item.Quantity, path("quantity"))...)

		switch {
		case item.EmissionFactor == nil:
			issues = append(issues, Issue{
				Code:       CodeMissingRequiredField,
				Message:    "emission_factor is required for scope 3 categories",
				Field:      path("emission_factor"),
				Severity:   SeverityCritical,
				Suggestion: "supply the externally sourced factor for this category",
			})
		case *item.EmissionFactor < 0:
			issues = append(issues, Issue{
				Code:     CodeDataOutOfRange,
				Message:  "emission_factor must not be negative",
				Field:    path("emission_factor"),
				Severity: SeverityMajor,
			})
		}
	}

	return issues
}

// quantityIssues applies the shared quantity rules: required, non-negative,
// zero is advisory only.
func quantityIssues(amount *float64, field string) []Issue {
	switch {
	case amount == nil:
		return []Issue{{
			Code:     CodeMissingRequiredField,
			Message:  "amount is required",
			Field:    field,
			Severity: SeverityCritical,
		}}
	case *amount < 0:
		return []Issue{{
			Code:       CodeDataOutOfRange,
			Message:    "amount must not be negative",
			Field:      field,
			Severity:   SeverityMajor,
			Suggestion: "activity quantities cannot be negative; correct the sign or remove the item",
		}}
	case *amount == 0:
		return []Issue{{
			Code:     CodeZeroActivityData,
			Message:  "amount is zero; the item contributes nothing to the total",
			Field:    field,
			Severity: SeverityMinor,
		}}
	default:
		return nil
	}
}
