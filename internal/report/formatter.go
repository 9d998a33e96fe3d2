// Package report renders calculation and validation results for terminal
// output. Locale-aware number formatting keeps large CO2e totals readable.
package report

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/validation"
)

// printer is the locale-aware message printer for number formatting.
// English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatTons formats a metric-tons CO2e value with three decimal places and
// thousand separators, e.g. "1,234.568 tCO2e".
func FormatTons(tons float64) string {
	const precision = 1000.0
	rounded := math.Round(tons*precision) / precision
	return printer.Sprintf("%.3f tCO2e", rounded)
}

// Calculation renders a one-calculation summary block.
func Calculation(calc *ghg.EmissionCalculation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calculation %s (%s)\n", calc.ID, calc.CalculationName)
	fmt.Fprintf(&b, "  Company:        %s\n", calc.CompanyID)
	fmt.Fprintf(&b, "  Scope:          %s\n", calc.Scope)
	fmt.Fprintf(&b, "  Reporting year: %d\n", calc.ReportingYear)
	fmt.Fprintf(&b, "  Total:          %s\n", FormatTons(calc.TotalCO2e))
	fmt.Fprintf(&b, "  Quality score:  %d/100\n", calc.DataQualityScore)
	fmt.Fprintf(&b, "  Status:         %s\n", calc.Status)
	return b.String()
}

// AuditTrail renders the per-line-item derivation of a calculation.
func AuditTrail(trail []ghg.AuditEntry) string {
	if len(trail) == 0 {
		return "No audit entries.\n"
	}
	var b strings.Builder
	for _, entry := range trail {
		fmt.Fprintf(&b, "  %-24s %s x %g %s @ %g kg/unit [%s] = %s\n",
			entry.LineItem, entry.Key, entry.Quantity, entry.Unit,
			entry.FactorKgPerUnit, entry.FactorSource,
			FormatTons(ghg.KgToMetricTons(entry.KgCO2e)))
	}
	return b.String()
}

// ValidationResult renders errors, warnings, score, and recommendations.
func ValidationResult(result validation.Result) string {
	var b strings.Builder

	if result.IsValid {
		b.WriteString("Request is valid.\n")
	} else {
		fmt.Fprintf(&b, "Request is INVALID: %d error(s).\n", len(result.Errors))
	}

	for _, issue := range result.Errors {
		fmt.Fprintf(&b, "  ERROR [%s] %s: %s\n", issue.Severity, issue.Field, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(&b, "        hint: %s\n", issue.Suggestion)
		}
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(&b, "  WARN  [%s] %s: %s\n", issue.Severity, issue.Field, issue.Message)
	}

	fmt.Fprintf(&b, "Quality score: %d/100\n", result.QualityScore)
	for _, rec := range result.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}
	return b.String()
}

// Metrics renders the validation-metrics summary.
func Metrics(m validation.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Validations:          %s\n", FormatNumber(int64(m.TotalValidations)))
	fmt.Fprintf(&b, "Success rate:         %.1f%%\n", m.SuccessRate*100) //nolint:mnd // percent display
	fmt.Fprintf(&b, "Average quality:      %.1f\n", m.AverageQualityScore)
	for _, e := range m.CommonErrors {
		fmt.Fprintf(&b, "  %-28s %s\n", e.Code, FormatNumber(int64(e.Count)))
	}
	return b.String()
}
