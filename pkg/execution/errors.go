package execution

import "errors"

// Sentinel errors returned by the run service.
var (
	// ErrArrayTooLarge is returned when the input exceeds the configured size limit.
	ErrArrayTooLarge = errors.New("array exceeds maximum size")

	// ErrInvalidFilter is returned when a step filter expression cannot be compiled.
	ErrInvalidFilter = errors.New("invalid step filter")

	// ErrUnsafeOperation is returned, wrapped together with ErrInvalidFilter,
	// when a step filter references a blocked identifier.
	ErrUnsafeOperation = errors.New("unsafe operation attempted")
)
