package ghg

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for domain-type operations. Compare with errors.Is().
var (
	// ErrUnrecognizedRequest indicates a JSON payload that matches none of
	// the scope request shapes.
	ErrUnrecognizedRequest = constError("unrecognized calculation request shape")

	// ErrInvalidUnit indicates an unrecognized activity unit.
	ErrInvalidUnit = constError("invalid activity unit")

	// ErrNegativeQuantity indicates a negative activity quantity.
	ErrNegativeQuantity = constError("negative activity quantity")
)
