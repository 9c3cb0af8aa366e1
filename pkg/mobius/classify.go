package mobius

import (
	"math/cmplx"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// Class is the conjugacy type of a transformation, determined by its trace.
type Class int

const (
	// Loxodromic maps have a trace with non-zero imaginary part.
	Loxodromic Class = iota
	// Hyperbolic maps have a real trace with |tr| > 2.
	Hyperbolic
	// Elliptic maps have a real trace with |tr| < 2.
	Elliptic
	// Parabolic maps have trace ±2.
	Parabolic
	// Undefined marks a NaN or infinite trace, which has no class.
	Undefined
)

var classNames = map[Class]string{
	Loxodromic: "loxodromic",
	Hyperbolic: "hyperbolic",
	Elliptic:   "elliptic",
	Parabolic:  "parabolic",
	Undefined:  "undefined",
}

// String returns the lower-case name of the class.
func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "unknown"
}

// Classify returns the class of m from its trace alone.
//
// The trace is only meaningful for det = 1, so classifying matrices with a
// different scale gives scale-dependent answers. Normalize first when
// comparing transformations built in different ways.
func (m Mobius) Classify() Class {
	t := m.Trace()
	switch {
	case cmplx.IsNaN(t) || cmplx.IsInf(t):
		return Undefined
	case imag(t) != 0:
		return Loxodromic
	case cmplx.Abs(t) > 2:
		return Hyperbolic
	case cmplx.Abs(t) < 2:
		return Elliptic
	case cmplx.Abs(t) == 2:
		return Parabolic
	default:
		return Undefined
	}
}

// FixedPoints holds the solutions of z = M(z).
type FixedPoints struct {
	// Plus is ((a - d) + √(tr² - 4)) / 2c, or the only fixed point when
	// Single is set.
	Plus complex128
	// Minus is ((a - d) - √(tr² - 4)) / 2c. It is zero when Single is set.
	Minus complex128
	// Single reports a zero discriminant (the parabolic case), leaving one
	// fixed point.
	Single bool
}

// Points returns the fixed points as a slice of length one or two.
func (f FixedPoints) Points() []complex128 {
	if f.Single {
		return []complex128{f.Plus}
	}
	return []complex128{f.Plus, f.Minus}
}

// FixedPoints solves z = M(z) with the quadratic formula
//
//	Fix M = ((a - d) ± √(tr² - 4)) / 2c
//
// The formula needs c ≠ 0; maps fixing infinity (c = 0) fail with
// DIVIDE_BY_ZERO.
func (m Mobius) FixedPoints() (FixedPoints, error) {
	bottom := 2 * m.C
	if bottom == 0 {
		return FixedPoints{}, kerrors.New(kerrors.ErrCodeDivideByZero, "fixed points of %v: c is zero", m)
	}

	top := m.A - m.D
	t := m.Trace()
	disc := t*t - 4
	if disc == 0 {
		return FixedPoints{Plus: top / bottom, Single: true}, nil
	}

	root := cmplx.Sqrt(disc)
	return FixedPoints{
		Plus:  (top + root) / bottom,
		Minus: (top - root) / bottom,
	}, nil
}
