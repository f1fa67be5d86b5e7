package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/sortviz/pkg/domain/execution"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/dshills/sortviz/pkg/validation"
)

// WrapRunError classifies err and wraps it with run context for debugging.
func WrapRunError(algorithm types.AlgorithmTag, err error, details map[string]interface{}) *execution.ExecutionError {
	return &execution.ExecutionError{
		Type:      ExtractErrorType(err),
		Message:   err.Error(),
		Algorithm: algorithm,
		Context:   details,
		Timestamp: time.Now(),
		Cause:     err,
	}
}

// WrapSizeError reports an input that exceeds the configured size limit.
func WrapSizeError(algorithm types.AlgorithmTag, size, limit int) *execution.ExecutionError {
	err := fmt.Errorf("%w: %d elements (limit %d)", ErrArrayTooLarge, size, limit)
	return WrapRunError(algorithm, err, NewErrorContext().
		Add("input_size", size).
		Add("max_array_size", limit).
		Build())
}

// ErrorContext provides helper methods for building error context.
type ErrorContext struct {
	data map[string]interface{}
}

// NewErrorContext creates a new error context builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{
		data: make(map[string]interface{}),
	}
}

// Add adds a key-value pair to the error context.
func (ec *ErrorContext) Add(key string, value interface{}) *ErrorContext {
	ec.data[key] = value
	return ec
}

// AddIf conditionally adds a key-value pair if the condition is true.
func (ec *ErrorContext) AddIf(condition bool, key string, value interface{}) *ErrorContext {
	if condition {
		ec.data[key] = value
	}
	return ec
}

// Build returns the constructed context map.
func (ec *ErrorContext) Build() map[string]interface{} {
	return ec.data
}

// FormatErrorChain formats an error and its chain for logging.
func FormatErrorChain(err error) string {
	if err == nil {
		return ""
	}

	var execErr *execution.ExecutionError
	if errors.As(err, &execErr) {
		msg := fmt.Sprintf("[%s] %s", execErr.Type, execErr.Message)
		if execErr.Algorithm != "" {
			msg = fmt.Sprintf("Algorithm %s: %s", execErr.Algorithm, msg)
		}
		if len(execErr.Context) > 0 {
			msg = fmt.Sprintf("%s\nContext: %v", msg, execErr.Context)
		}
		return msg
	}

	return err.Error()
}

// ExtractErrorType returns the error type from any error.
func ExtractErrorType(err error) execution.ErrorType {
	var execErr *execution.ExecutionError
	switch {
	case errors.As(err, &execErr):
		return execErr.Type
	case errors.Is(err, sorting.ErrUnknownAlgorithm):
		return execution.ErrorTypeUnknownAlgorithm
	case errors.Is(err, validation.ErrInvalidInput), errors.Is(err, ErrArrayTooLarge):
		return execution.ErrorTypeInvalidInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return execution.ErrorTypeCancelled
	default:
		return execution.ErrorTypeInternal
	}
}
