package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDivideByZero, "denominator vanished at %s", "z0")

	if err.Code != ErrCodeDivideByZero {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDivideByZero)
	}
	if err.Message != "denominator vanished at z0" {
		t.Errorf("Message = %q, want %q", err.Message, "denominator vanished at z0")
	}
	if got, want := err.Error(), "DIVIDE_BY_ZERO: denominator vanished at z0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "read %s", "spiral.toml")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got, want := err.Error(), "FILE_NOT_FOUND: read spiral.toml: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// recipeError carries its own code like group.ParameterError.
type recipeError struct{ err error }

func (e *recipeError) Error() string { return "recipe: " + e.err.Error() }
func (e *recipeError) Unwrap() error { return e.err }
func (e *recipeError) Code() Code    { return ErrCodeInvalidParameters }

func TestIs(t *testing.T) {
	recipe := &recipeError{err: New(ErrCodeDivideByZero, "z0")}
	wrapped := Wrap(ErrCodeInvalidInput, New(ErrCodeDivideByZero, "inner"), "outer")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", New(ErrCodeSingularMatrix, "det"), ErrCodeSingularMatrix, true},
		{"other code", New(ErrCodeSingularMatrix, "det"), ErrCodeDivideByZero, false},
		{"outer of wrapped", wrapped, ErrCodeInvalidInput, true},
		{"inner of wrapped", wrapped, ErrCodeDivideByZero, true},
		{"coder", recipe, ErrCodeInvalidParameters, true},
		{"cause of coder", recipe, ErrCodeDivideByZero, true},
		{"fmt wrapped coder", fmt.Errorf("frame 3: %w", recipe), ErrCodeInvalidParameters, true},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"error", New(ErrCodeUnimplemented, "imaginary circle"), ErrCodeUnimplemented},
		{"coder before its cause", &recipeError{err: New(ErrCodeDivideByZero, "z0")}, ErrCodeInvalidParameters},
		{"fmt wrapped", fmt.Errorf("ctx: %w", New(ErrCodeSingularMatrix, "det")), ErrCodeSingularMatrix},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "root must be plus or minus")); got != "root must be plus or minus" {
		t.Errorf("UserMessage(*Error) = %q", got)
	}
	if got := UserMessage(fmt.Errorf("load: %w", New(ErrCodeInvalidFormat, "bad curve"))); got != "bad curve" {
		t.Errorf("UserMessage(wrapped) = %q, want the inner message", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
