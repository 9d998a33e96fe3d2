package engine

import (
	"fmt"
	"reflect"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidRequest is the sentinel all guard failures wrap. Check
	// with errors.Is to distinguish rejected input from provider or
	// persistence failures.
	ErrInvalidRequest = constError("invalid calculation request")

	// ErrNoStore indicates a read or approval accessor was called on an
	// engine constructed without a calculation store.
	ErrNoStore = constError("no calculation store configured")
)

// GuardError reports the first pre-flight violation found in a request.
// It wraps ErrInvalidRequest.
type GuardError struct {
	// Field is the dotted request path of the offending field.
	Field string

	// Reason describes the violation.
	Reason string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRequest, e.Field, e.Reason)
}

func (e *GuardError) Unwrap() error { return ErrInvalidRequest }

// isNilRequest reports whether req is nil, including a typed-nil pointer
// hiding inside a non-nil interface. The calculation entry points take
// concrete request pointers, so a nil *ScopeNRequest always arrives here
// wrapped in a non-nil interface.
func isNilRequest(req ghg.CalculationRequest) bool {
	if req == nil {
		return true
	}
	v := reflect.ValueOf(req)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// guardRequest is the fail-fast pre-flight check every calculation entry
// point runs before touching the factor provider. It is deliberately
// stricter and cheaper than the validation engine: the first violation is
// returned immediately, and a zero quantity is rejected here even though
// validation only warns on it, because computing over it would be
// pointless work against an external provider.
func guardRequest(req ghg.CalculationRequest) error {
	if isNilRequest(req) {
		return &GuardError{Field: "root", Reason: "request is nil"}
	}
	if req.Name() == "" {
		return &GuardError{Field: "calculation_name", Reason: "calculation name is required"}
	}
	if req.Company() == "" {
		return &GuardError{Field: "company_id", Reason: "company identifier is required"}
	}

	p := req.ReportingPeriod()
	if p.StartDate.IsZero() {
		return &GuardError{Field: "reporting_period.start_date", Reason: "start date is required"}
	}
	if p.EndDate.IsZero() {
		return &GuardError{Field: "reporting_period.end_date", Reason: "end date is required"}
	}
	if !p.Chronological() {
		return &GuardError{Field: "reporting_period", Reason: "start date must be before end date"}
	}

	switch r := req.(type) {
	case *ghg.Scope1Request:
		return guardScope1(r)
	case *ghg.Scope2Request:
		return guardScope2(r)
	case *ghg.Scope3Request:
		return guardScope3(r)
	default:
		return &GuardError{Field: "root", Reason: "unrecognized request type"}
	}
}

func guardScope1(r *ghg.Scope1Request) error {
	if len(r.FuelData) == 0 && len(r.ProcessData) == 0 && len(r.FugitiveData) == 0 {
		return &GuardError{Field: "fuel_data", Reason: "at least one line item is required"}
	}
	for i, item := range r.FuelData {
		field := fmt.Sprintf("fuel_data[%d]", i)
		if item.FuelType == "" {
			return &GuardError{Field: field + ".fuel_type", Reason: "fuel type is required"}
		}
		if err := guardQuantity(item.Amount, field+".amount"); err != nil {
			return err
		}
		if item.Unit == "" {
			return &GuardError{Field: field + ".unit", Reason: "unit is required"}
		}
	}
	for i, item := range r.ProcessData {
		field := fmt.Sprintf("process_data[%d]", i)
		if item.ProcessType == "" {
			return &GuardError{Field: field + ".process_type", Reason: "process type is required"}
		}
		if err := guardQuantity(item.Amount, field+".amount"); err != nil {
			return err
		}
		if item.Unit == "" {
			return &GuardError{Field: field + ".unit", Reason: "unit is required"}
		}
	}
	for i, item := range r.FugitiveData {
		field := fmt.Sprintf("fugitive_data[%d]", i)
		if item.GasType == "" {
			return &GuardError{Field: field + ".gas_type", Reason: "gas type is required"}
		}
		if err := guardQuantity(item.Amount, field+".amount"); err != nil {
			return err
		}
		if item.Unit == "" {
			return &GuardError{Field: field + ".unit", Reason: "unit is required"}
		}
	}
	return nil
}

func guardScope2(r *ghg.Scope2Request) error {
	if len(r.ElectricityData) == 0 {
		return &GuardError{Field: "electricity_data", Reason: "at least one line item is required"}
	}
	if !r.Methodology.Valid() {
		return &GuardError{Field: "methodology", Reason: fmt.Sprintf("methodology %q is not recognized", r.Methodology)}
	}
	for i, item := range r.ElectricityData {
		field := fmt.Sprintf("electricity_data[%d]", i)
		if err := guardQuantity(item.Amount, field+".amount"); err != nil {
			return err
		}
		if item.Unit == "" {
			return &GuardError{Field: field + ".unit", Reason: "unit is required"}
		}
		if item.Region == "" {
			return &GuardError{Field: field + ".electricity_region", Reason: "grid region is required"}
		}
	}
	return nil
}

func guardScope3(r *ghg.Scope3Request) error {
	if len(r.Categories) == 0 {
		return &GuardError{Field: "categories", Reason: "at least one category is required"}
	}
	for i, item := range r.Categories {
		field := fmt.Sprintf("categories[%d]", i)
		if !item.Category.Valid() {
			return &GuardError{Field: field + ".category", Reason: "category must be one of the 15 GHG Protocol categories"}
		}
		if err := guardQuantity(item.Quantity, field+".quantity"); err != nil {
			return err
		}
		if item.EmissionFactor == nil {
			return &GuardError{Field: field + ".emission_factor", Reason: "emission factor is required"}
		}
		if *item.EmissionFactor < 0 {
			return &GuardError{Field: field + ".emission_factor", Reason: "emission factor must not be negative"}
		}
	}
	return nil
}

func guardQuantity(amount *float64, field string) error {
	if amount == nil {
		return &GuardError{Field: field, Reason: "quantity is required"}
	}
	if *amount <= 0 {
		return &GuardError{Field: field, Reason: "quantity must be positive"}
	}
	return nil
}
