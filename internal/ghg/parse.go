package ghg

import (
	"encoding/json"
	"fmt"
)

// ParseRequest maps an untyped JSON payload onto the calculation request
// union. This is the one place request-shape discrimination happens at
// runtime: the typed constructors make an unrecognizable shape impossible,
// but payloads arriving from clients are duck-typed by the collection field
// they carry (fuel_data, electricity_data, or categories).
//
// Returns ErrUnrecognizedRequest when the payload matches no scope shape;
// callers surface that as an INVALID_DATA_TYPE validation error.
func ParseRequest(data []byte) (CalculationRequest, error) {
	var probe struct {
		FuelData        json.RawMessage `json:"fuel_data"`
		ElectricityData json.RawMessage `json:"electricity_data"`
		Categories      json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrecognizedRequest, err)
	}

	switch {
	case probe.FuelData != nil:
		var req Scope1Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing scope 1 request: %w", err)
		}
		return &req, nil
	case probe.ElectricityData != nil:
		var req Scope2Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing scope 2 request: %w", err)
		}
		return &req, nil
	case probe.Categories != nil:
		var req Scope3Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing scope 3 request: %w", err)
		}
		return &req, nil
	default:
		return nil, ErrUnrecognizedRequest
	}
}

// Float returns a pointer to v. Convenience for building requests with
// optional numeric fields.
func Float(v float64) *float64 { return &v }
