// Package errors provides structured error types for the base64-stream library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: offending value, detail message, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRestore, errors.KindInvalidInput).
//		Value(version).
//		Detail("unsupported checkpoint version %d", version).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MalformedLength(leftover)
//	err := errors.AlreadyFinalized(errors.PhaseEncode, "WriteU8")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
