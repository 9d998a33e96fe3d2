package validation

import (
	"math"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// Scoring rubric constants.
//
// Every weight and deduction in the composite data-quality score lives
// here, in one auditable place, rather than inline in the scoring code.
const (
	// Sub-score weights. Must sum to 1.0.
	CompletenessWeight = 0.4
	AccuracyWeight     = 0.3
	ConsistencyWeight  = 0.2
	TimelinessWeight   = 0.1

	// MaxSubScore is the ceiling for each sub-score.
	MaxSubScore = 100.0

	// NegativeValuePenalty is deducted from the accuracy sub-score per
	// negative quantity found.
	NegativeValuePenalty = 10.0

	// LargeValuePenalty is deducted from the accuracy sub-score per value
	// above LargeValueThreshold.
	LargeValuePenalty = 5.0

	// LargeValueThreshold flags implausibly large quantities, in the
	// item's own unit. The value is an inherited heuristic with no
	// documented industry basis; it needs domain review before being
	// trusted for compliance scoring, which is why it is a named constant
	// rather than a magic number.
	LargeValueThreshold = 1_000_000.0

	// MixedUnitPenalty is deducted from the consistency sub-score when
	// line items use more than MaxDistinctUnits distinct units.
	MixedUnitPenalty = 10.0

	// MaxDistinctUnits is the number of distinct units a request can use
	// before mixed-unit entry is flagged.
	MaxDistinctUnits = 3

	// YearMismatchPenalty is deducted from the consistency sub-score when
	// neither period bound falls in the declared reporting year.
	YearMismatchPenalty = 15.0

	// TimelinessStub is the fixed timeliness sub-score.
	//
	// TODO: replace with a real data-freshness signal once the persistence
	// layer exposes record timestamps; until then timeliness is a
	// documented placeholder, not a measurement.
	TimelinessStub = 90.0

	// Completeness field counts: fields tallied per scoring element.
	topLevelFieldCount        = 2 // company_id, reporting_period
	fuelItemFieldCount        = 3 // fuel_type, amount, unit
	electricityItemFieldCount = 2 // amount, unit
	scope3ItemFieldCount      = 3 // category, quantity, emission_factor
)

// QualityScore computes the composite 0-100 data-quality score for a
// request: 0.4*completeness + 0.3*accuracy + 0.2*consistency +
// 0.1*timeliness, rounded to the nearest integer. A nil request scores 0.
func (e *Engine) QualityScore(req ghg.CalculationRequest) int {
	if isNilRequest(req) {
		return 0
	}

	composite := CompletenessWeight*completenessScore(req) +
		AccuracyWeight*accuracyScore(req) +
		ConsistencyWeight*consistencyScore(req) +
		TimelinessWeight*timelinessScore()

	return int(math.Round(composite))
}

// completenessScore is the populated fraction of counted fields, scaled to
// 0-100. An empty request (no line items) still counts its two top-level
// fields.
func completenessScore(req ghg.CalculationRequest) float64 {
	total := topLevelFieldCount
	populated := 0

	if req.Company() != "" {
		populated++
	}
	if periodPopulated(req.ReportingPeriod()) {
		populated++
	}

	switch r := req.(type) {
	case *ghg.Scope1Request:
		for _, item := range r.FuelData {
			total += fuelItemFieldCount
			if item.FuelType != "" {
				populated++
			}
			if item.Amount != nil {
				populated++
			}
			if item.Unit != "" {
				populated++
			}
		}
	case *ghg.Scope2Request:
		for _, item := range r.ElectricityData {
			total += electricityItemFieldCount
			if item.Amount != nil {
				populated++
			}
			if item.Unit != "" {
				populated++
			}
		}
	case *ghg.Scope3Request:
		for _, item := range r.Categories {
			total += scope3ItemFieldCount
			if item.Category.Valid() {
				populated++
			}
			if item.Quantity != nil {
				populated++
			}
			if item.EmissionFactor != nil {
				populated++
			}
		}
	}

	return MaxSubScore * float64(populated) / float64(total)
}

// accuracyScore starts at 100 and deducts per suspicious quantity: negative
// values and values above the large-value threshold. The threshold check is
// a heuristic outlier flag, not a hard error.
func accuracyScore(req ghg.CalculationRequest) float64 {
	score := MaxSubScore
	for _, q := range quantities(req) {
		switch {
		case q < 0:
			score -= NegativeValuePenalty
		case q > LargeValueThreshold:
			score -= LargeValuePenalty
		}
	}
	return math.Max(0, score)
}

// consistencyScore starts at 100 and deducts for mixed unit entry and for a
// reporting year that matches neither period bound.
func consistencyScore(req ghg.CalculationRequest) float64 {
	score := MaxSubScore

	if len(distinctUnits(req)) > MaxDistinctUnits {
		score -= MixedUnitPenalty
	}
	if !req.ReportingPeriod().MatchesYear() {
		score -= YearMismatchPenalty
	}

	return math.Max(0, score)
}

// timelinessScore returns the fixed placeholder sub-score. See
// TimelinessStub for why this is not a real measurement yet.
func timelinessScore() float64 {
	return TimelinessStub
}

// periodPopulated reports whether a period counts as provided for
// completeness purposes: both bounds and the reporting year present.
func periodPopulated(p ghg.Period) bool {
	return !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.ReportingYear != 0
}

// quantities collects every provided line-item quantity in the request.
func quantities(req ghg.CalculationRequest) []float64 {
	var out []float64
	add := func(v *float64) {
		if v != nil {
			out = append(out, *v)
		}
	}

	switch r := req.(type) {
	case *ghg.Scope1Request:
		for _, item := range r.FuelData {
			add(item.Amount)
		}
		for _, item := range r.ProcessData {
			add(item.Amount)
		}
		for _, item := range r.FugitiveData {
			add(item.Amount)
		}
	case *ghg.Scope2Request:
		for _, item := range r.ElectricityData {
			add(item.Amount)
		}
	case *ghg.Scope3Request:
		for _, item := range r.Categories {
			add(item.Quantity)
		}
	}
	return out
}

// distinctUnits collects the set of normalized units used by line items.
func distinctUnits(req ghg.CalculationRequest) map[string]struct{} {
	units := make(map[string]struct{})
	add := func(unit string) {
		if unit != "" {
			units[ghg.NormalizeUnit(unit)] = struct{}{}
		}
	}

	switch r := req.(type) {
	case *ghg.Scope1Request:
		for _, item := range r.FuelData {
			add(item.Unit)
		}
		for _, item := range r.ProcessData {
			add(item.Unit)
		}
		for _, item := range r.FugitiveData {
			add(item.Unit)
		}
	case *ghg.Scope2Request:
		for _, item := range r.ElectricityData {
			add(item.Unit)
		}
	case *ghg.Scope3Request:
		for _, item := range r.Categories {
			add(item.Unit)
		}
	}
	return units
}
