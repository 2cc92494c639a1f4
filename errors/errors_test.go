package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseFinalize,
				Kind:   KindMalformedLength,
				Detail: "2 character(s) left over",
			},
			contains: []string{"[finalize]", "malformed_length", "2 character(s) left over"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindAlreadyFinalized,
			},
			contains: []string{"[decode]", "already_finalized"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRestore,
				Kind:   KindInvalidInput,
				Detail: "restore encoder",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[restore]", "invalid_input", "restore encoder", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConfig,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseFinalize,
		Kind:   KindMalformedLength,
		Detail: "3 character(s) left over",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseFinalize, Kind: KindMalformedLength}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindMalformedLength}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseFinalize, Kind: KindAlreadyFinalized}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseFinalize, Kind: KindMalformedLength}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindInvalidInput).
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "bytes", "nothing").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindInvalidInput {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected bytes, got nothing" {
		t.Errorf("Detail = %v, want 'expected bytes, got nothing'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MalformedLength", func(t *testing.T) {
		err := MalformedLength(2)
		if err.Phase != PhaseFinalize {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseFinalize)
		}
		if err.Kind != KindMalformedLength {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMalformedLength)
		}
		if err.Value != 2 {
			t.Errorf("Value = %v, want 2", err.Value)
		}
		if !containsSubstring(err.Detail, "2") {
			t.Errorf("Detail = %v, should contain leftover count", err.Detail)
		}
	})

	t.Run("AlreadyFinalized", func(t *testing.T) {
		err := AlreadyFinalized(PhaseEncode, "WriteU8")
		if err.Kind != KindAlreadyFinalized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAlreadyFinalized)
		}
		if !containsSubstring(err.Detail, "WriteU8") {
			t.Errorf("Detail = %v, should contain operation name", err.Detail)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConfig, "encode_bytes_per_round must be positive")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("Internal", func(t *testing.T) {
		err := Internal(PhaseEncode, "pending byte count out of range")
		if err.Kind != KindInternal {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInternal)
		}
	})

	t.Run("ReadFailed", func(t *testing.T) {
		cause := errors.New("no such file")
		err := ReadFailed(PhaseConfig, "tuning.yaml", cause)
		if err.Kind != KindIO {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIO)
		}
		if !errors.Is(err, cause) {
			t.Error("ReadFailed should wrap its cause")
		}
	})

	t.Run("RestoreFailed", func(t *testing.T) {
		cause := errors.New("truncated")
		err := RestoreFailed("decoder", cause)
		if err.Phase != PhaseRestore {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseRestore)
		}
		if !containsSubstring(err.Detail, "decoder") {
			t.Errorf("Detail = %v, should name what was restored", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseDrive, KindInternal, cause, "step failed")
		if err.Phase != PhaseDrive {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseDrive)
		}
		if !errors.Is(err, cause) {
			t.Error("Wrap should wrap its cause")
		}
	})
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && containsSubstringHelper(s, substr)))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
