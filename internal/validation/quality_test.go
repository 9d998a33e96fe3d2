package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

func TestQualityScoreComposite(t *testing.T) {
	e := New()

	tests := []struct {
		name   string
		mutate func(*ghg.Scope1Request)
		want   int
	}{
		{
			// 0.4*100 + 0.3*100 + 0.2*100 + 0.1*90 = 99
			name:   "fully populated request",
			mutate: func(_ *ghg.Scope1Request) {},
			want:   99,
		},
		{
			// Accuracy drops to 90: 40 + 27 + 20 + 9 = 96.
			name:   "negative quantity deducts accuracy",
			mutate: func(r *ghg.Scope1Request) { r.FuelData[0].Amount = ghg.Float(-100) },
			want:   96,
		},
		{
			// Accuracy drops to 95: 40 + 28.5 + 20 + 9 = 97.5, rounds to 98.
			name:   "implausibly large quantity deducts accuracy",
			mutate: func(r *ghg.Scope1Request) { r.FuelData[0].Amount = ghg.Float(2_000_000) },
			want:   98,
		},
		{
			// Consistency drops to 85: 40 + 30 + 17 + 9 = 96.
			name: "reporting year matching neither bound deducts consistency",
			mutate: func(r *ghg.Scope1Request) {
				r.Period.ReportingYear = 2022
			},
			want: 96,
		},
		{
			// Completeness drops to 4/5: 32 + 30 + 20 + 9 = 91.
			name:   "missing fuel type deducts completeness",
			mutate: func(r *ghg.Scope1Request) { r.FuelData[0].FuelType = "" },
			want:   91,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := perfectScope1Request()
			tt.mutate(req)
			assert.Equal(t, tt.want, e.QualityScore(req))
		})
	}
}

func TestQualityScoreOrdering(t *testing.T) {
	// A request with a suspicious quantity must never outscore the same
	// request with a plausible one.
	e := New()

	good := perfectScope1Request()
	bad := perfectScope1Request()
	bad.FuelData[0].Amount = ghg.Float(-100)

	assert.Greater(t, e.QualityScore(good), e.QualityScore(bad))
}

func TestQualityScoreNilRequest(t *testing.T) {
	e := New()
	assert.Equal(t, 0, e.QualityScore(nil))

	var typed *ghg.Scope2Request
	assert.Equal(t, 0, e.QualityScore(typed))
}

func TestQualityScoreMixedUnits(t *testing.T) {
	e := New()
	req := perfectScope1Request()
	req.FuelData = []ghg.FuelLineItem{
		{FuelType: "natural_gas", Amount: ghg.Float(10), Unit: "therms"},
		{FuelType: "diesel", Amount: ghg.Float(10), Unit: "gal"},
		{FuelType: "propane", Amount: ghg.Float(10), Unit: "l"},
		{FuelType: "coal", Amount: ghg.Float(10), Unit: "kg"},
	}

	uniform := perfectScope1Request()
	uniform.FuelData = []ghg.FuelLineItem{
		{FuelType: "natural_gas", Amount: ghg.Float(10), Unit: "therms"},
		{FuelType: "natural_gas", Amount: ghg.Float(10), Unit: "therms"},
		{FuelType: "natural_gas", Amount: ghg.Float(10), Unit: "therms"},
		{FuelType: "natural_gas", Amount: ghg.Float(10), Unit: "therms"},
	}

	assert.Less(t, e.QualityScore(req), e.QualityScore(uniform))
}

func TestQualityScoreUnitAliasesAreNotMixedEntry(t *testing.T) {
	// "gallons" and "gal" are the same unit; aliases alone must not trip
	// the mixed-unit deduction.
	e := New()
	req := perfectScope1Request()
	req.FuelData = []ghg.FuelLineItem{
		{FuelType: "diesel", Amount: ghg.Float(10), Unit: "gal"},
		{FuelType: "diesel", Amount: ghg.Float(10), Unit: "gallons"},
		{FuelType: "propane", Amount: ghg.Float(10), Unit: "liters"},
		{FuelType: "propane", Amount: ghg.Float(10), Unit: "l"},
	}

	assert.Equal(t, 99, e.QualityScore(req))
}

func TestQualityScoreEmptyScope3(t *testing.T) {
	// No line items: only the two top-level fields count.
	e := New()
	req := &ghg.Scope3Request{
		CompanyID: "company-123",
		Period: ghg.Period{
			StartDate:     ghg.NewDate(2024, time.January, 1),
			EndDate:       ghg.NewDate(2024, time.December, 31),
			ReportingYear: 2024,
		},
	}

	assert.Equal(t, 99, e.QualityScore(req))
}
