// Package errors provides structured error types for the panic formatter.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the element path, the offending value and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOverflow).
//		Path("byte_array", "full_word[0]").
//		Value(word).
//		Detail("value does not fit 31 bytes").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 4, 3)
//	err := errors.NotFound(errors.PhaseRuntime, "export", "main")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
