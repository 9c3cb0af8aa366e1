package mobius

import (
	"math/cmplx"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// Identity is the map z ↦ z.
var Identity = Mobius{A: 1, D: 1}

// Reciprocal is z ↦ 1/z written with determinant 1 as [[0, i], [i, 0]].
// On the Riemann sphere it is a half turn about the real axis, the complex
// conjugate of inversion in the unit circle.
var Reciprocal = Mobius{B: 1i, C: 1i}

// Translate returns z ↦ z + offset. It is parabolic for any offset ≠ 0.
func Translate(offset complex128) Mobius {
	return Mobius{A: 1, B: offset, D: 1}
}

// Rotate returns the rotation by theta radians about the origin,
// [[e^{iθ/2}, 0], [0, e^{-iθ/2}]], which has determinant 1.
func Rotate(theta float64) Mobius {
	a := cmplx.Exp(complex(0, theta/2))
	return Mobius{A: a, D: cmplx.Conj(a)}
}

// Scale returns z ↦ k·z normalized to determinant 1. A zero factor has no
// such matrix and fails with SINGULAR_MATRIX.
func Scale(k complex128) (Mobius, error) {
	if k == 0 {
		return Mobius{}, kerrors.New(kerrors.ErrCodeSingularMatrix, "scale factor is zero")
	}
	s := cmplx.Sqrt(k)
	return Mobius{A: s, D: 1 / s}, nil
}

// UnitCircleInversion returns 1/z̄, the reflection in the unit circle. It
// reverses orientation, so it is not a Möbius map and only serves as a
// building block for circle pairings.
func UnitCircleInversion(z complex128) (complex128, error) {
	return divide(1, cmplx.Conj(z), "unit circle inversion")
}
