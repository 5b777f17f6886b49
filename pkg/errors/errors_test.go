package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestStructuredError(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeNotFound, "snapshot not found"),
			want: "[NOT_FOUND] snapshot not found",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeLLM, "completion failed", fmt.Errorf("connection refused")),
			want: "[LLM_FAILED] completion failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrCodeLLMParse, "no json")); got != ErrCodeLLMParse {
		t.Errorf("CodeOf = %q, want %q", got, ErrCodeLLMParse)
	}

	// Wrapped in a plain fmt error, the code should still surface.
	wrapped := fmt.Errorf("outer: %w", New(ErrCodeNotFound, "gone"))
	if got := CodeOf(wrapped); got != ErrCodeNotFound {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ErrCodeNotFound)
	}

	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain) = %q, want %q", got, ErrCodeInternal)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(ErrCodeNotFound, "missing")) {
		t.Error("expected IsNotFound to be true")
	}
	if IsNotFound(New(ErrCodeInternal, "boom")) {
		t.Error("expected IsNotFound to be false")
	}
}
