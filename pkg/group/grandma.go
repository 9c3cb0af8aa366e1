package group

import (
	"fmt"
	"math/cmplx"
	"strings"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/mobius"
)

// Root selects a solution of the trace quadratic. The zero value is not a
// valid choice.
type Root int

const (
	// PlusRoot takes (p + √disc)/2.
	PlusRoot Root = iota + 1
	// MinusRoot takes (p - √disc)/2.
	MinusRoot
)

// String returns "plus", "minus" or "invalid".
func (r Root) String() string {
	switch r {
	case PlusRoot:
		return "plus"
	case MinusRoot:
		return "minus"
	default:
		return "invalid"
	}
}

// ParseRoot parses "plus" or "minus" (case-insensitive).
func ParseRoot(s string) (Root, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plus", "+":
		return PlusRoot, nil
	case "minus", "-":
		return MinusRoot, nil
	default:
		return 0, kerrors.New(kerrors.ErrCodeInvalidInput, "root must be plus or minus, got %q", s)
	}
}

// ParameterError reports a trace pair for which the recipe has no valid
// group. Err is the DIVIDE_BY_ZERO failure that stopped it.
type ParameterError struct {
	TraceA, TraceB complex128
	Err            error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: trace_a = %v, trace_b = %v: %v",
		kerrors.ErrCodeInvalidParameters, e.TraceA, e.TraceB, e.Err)
}

func (e *ParameterError) Unwrap() error { return e.Err }

// Code returns INVALID_PARAMETERS.
func (e *ParameterError) Code() kerrors.Code { return kerrors.ErrCodeInvalidParameters }

// TraceAB solves x² - ta·tb·x + (ta² + tb²) = 0 and returns the root
// selected by root. It only fails for an invalid root.
func TraceAB(traceA, traceB complex128, root Root) (complex128, error) {
	p := traceA * traceB
	q := traceA*traceA + traceB*traceB
	s := cmplx.Sqrt(p*p - 4*q)

	switch root {
	case PlusRoot:
		return (p + s) / 2, nil
	case MinusRoot:
		return (p - s) / 2, nil
	default:
		return 0, kerrors.New(kerrors.ErrCodeInvalidInput, "root selection is required, got %d", int(root))
	}
}

// GrandmasRecipe returns {a, b, a⁻¹, b⁻¹} with tr a = traceA, tr b = traceB
// and tr abAB = -2. Trace pairs that make a denominator vanish fail with a
// *ParameterError.
func GrandmasRecipe(traceA, traceB complex128, root Root) (Group, error) {
	tab, err := TraceAB(traceA, traceB, root)
	if err != nil {
		return nil, err
	}

	fail := func(err error) (Group, error) {
		return nil, &ParameterError{TraceA: traceA, TraceB: traceB, Err: err}
	}

	z0, err := divide((tab-2)*traceB, traceB*tab-2*traceA+2i*tab, "z0")
	if err != nil {
		return fail(err)
	}

	ab := traceA * tab
	aB, err := divide(ab-2*traceB+4i, (2*tab+4)*z0, "a.B")
	if err != nil {
		return fail(err)
	}
	aC, err := divide((ab-2*traceB-4i)*z0, 2*tab-4, "a.C")
	if err != nil {
		return fail(err)
	}

	a := mobius.New(traceA/2, aB, aC, traceA/2)
	b := mobius.New((traceB-2i)/2, traceB/2, traceB/2, (traceB+2i)/2)
	return Make(a, b), nil
}

func divide(num, den complex128, what string) (complex128, error) {
	if den == 0 {
		return 0, kerrors.New(kerrors.ErrCodeDivideByZero, "denominator of %s is zero", what)
	}
	return num / den, nil
}
