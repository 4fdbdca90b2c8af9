package carbonplan

import "errors"

// Errors returned by the engine. Callers test them with errors.Is, the
// returned errors always wrap one of them with the offending value.
var (
	// ErrInvalidInput reports a malformed argument: non-finite numbers,
	// negative budgets or targets, empty identifiers, wrong sequence lengths.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationRejected reports an operation that could not be applied
	// to a State. The State is left unchanged.
	ErrValidationRejected = errors.New("operation rejected")

	// ErrCatalogIntegrity reports a catalog entry that violates the
	// intervention invariants (positive cost and ceiling, unique id).
	ErrCatalogIntegrity = errors.New("catalog integrity")
)
