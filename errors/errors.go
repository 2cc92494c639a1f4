package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // byte stream to Base64 text
	PhaseDecode   Phase = "decode"   // Base64 text to byte stream
	PhaseFinalize Phase = "finalize" // consuming finalize
	PhaseDrive    Phase = "drive"    // bounded-round driving
	PhaseConfig   Phase = "config"   // tuning load and validation
	PhaseRestore  Phase = "restore"  // checkpoint restore
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedLength  Kind = "malformed_length"
	KindAlreadyFinalized Kind = "already_finalized"
	KindInvalidInput     Kind = "invalid_input"
	KindInternal         Kind = "internal"
	KindIO               Kind = "io"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedLength creates the fatal finalize error raised when the total
// appended text length is not a multiple of 4. The leftover count is the
// number of dangling characters (1-3).
func MalformedLength(leftover int) *Error {
	return &Error{
		Phase:  PhaseFinalize,
		Kind:   KindMalformedLength,
		Detail: fmt.Sprintf("text length is not a multiple of 4 (%d character(s) left over)", leftover),
		Value:  leftover,
	}
}

// AlreadyFinalized creates a use-after-finalize error
func AlreadyFinalized(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyFinalized,
		Detail: fmt.Sprintf("%s called after finalize consumed the codec", op),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Internal creates an internal invariant violation error
func Internal(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: detail,
	}
}

// ReadFailed creates an IO error for a failed file read
func ReadFailed(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: fmt.Sprintf("read %s", path),
		Cause:  cause,
	}
}

// RestoreFailed creates a checkpoint restore error
func RestoreFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseRestore,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("restore %s", what),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
