package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/validation"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1,234", FormatNumber(1234))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
}

func TestFormatTons(t *testing.T) {
	assert.Equal(t, "5.300 tCO2e", FormatTons(5.3))
	assert.Equal(t, "1,234.568 tCO2e", FormatTons(1234.56789))
	assert.Equal(t, "0.000 tCO2e", FormatTons(0))
}

func TestCalculation(t *testing.T) {
	calc := &ghg.EmissionCalculation{
		ID:               "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		CalculationName:  "annual-facility-fuel",
		CompanyID:        "company-123",
		Scope:            ghg.Scope1,
		ReportingYear:    2024,
		TotalCO2e:        5.3,
		DataQualityScore: 99,
		Status:           ghg.StatusCompleted,
		CreatedAt:        time.Now(),
	}

	out := Calculation(calc)
	assert.Contains(t, out, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Contains(t, out, "company-123")
	assert.Contains(t, out, "5.300 tCO2e")
	assert.Contains(t, out, "99/100")
	assert.Contains(t, out, "completed")
}

func TestAuditTrail(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No audit entries.\n", AuditTrail(nil))
	})

	t.Run("entries", func(t *testing.T) {
		out := AuditTrail([]ghg.AuditEntry{{
			LineItem:        "fuel_data[0]",
			Key:             "natural_gas",
			Quantity:        1000,
			Unit:            "therms",
			FactorKgPerUnit: 5.3,
			FactorSource:    ghg.FactorFromRegistry,
			KgCO2e:          5300,
		}})
		assert.Contains(t, out, "fuel_data[0]")
		assert.Contains(t, out, "natural_gas")
		assert.Contains(t, out, "5.300 tCO2e")
	})
}

func TestValidationResult(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		out := ValidationResult(validation.Result{IsValid: true, QualityScore: 99})
		assert.Contains(t, out, "Request is valid.")
		assert.Contains(t, out, "Quality score: 99/100")
	})

	t.Run("invalid with findings", func(t *testing.T) {
		out := ValidationResult(validation.Result{
			IsValid: false,
			Errors: []validation.Issue{{
				Code:       validation.CodeMissingRequiredField,
				Message:    "company identifier is required",
				Field:      "company_id",
				Severity:   validation.SeverityCritical,
				Suggestion: "set company_id",
			}},
			Warnings: []validation.Issue{{
				Code:     validation.CodeZeroActivityData,
				Message:  "amount is zero",
				Field:    "fuel_data[0].amount",
				Severity: validation.SeverityMinor,
			}},
			QualityScore:    61,
			Recommendations: []string{"Resolve all critical findings before calculating."},
		})

		assert.Contains(t, out, "INVALID: 1 error(s)")
		assert.Contains(t, out, "ERROR [critical] company_id")
		assert.Contains(t, out, "hint: set company_id")
		assert.Contains(t, out, "WARN  [minor] fuel_data[0].amount")
		assert.Contains(t, out, "Resolve all critical findings")
	})
}

func TestMetrics(t *testing.T) {
	out := Metrics(validation.Metrics{
		TotalValidations:    12845,
		SuccessRate:         0.934,
		AverageQualityScore: 88.2,
		CommonErrors: []validation.ErrorFrequency{
			{Code: validation.CodeMissingRequiredField, Count: 1203},
		},
	})

	assert.Contains(t, out, "12,845")
	assert.Contains(t, out, "93.4%")
	assert.Contains(t, out, "88.2")
	assert.Contains(t, out, "MISSING_REQUIRED_FIELD")
	assert.Contains(t, out, "1,203")
}
