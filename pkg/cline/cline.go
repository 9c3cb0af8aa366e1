// Package cline represents generalized circles ("clines") of the extended
// complex plane and moves them with Möbius transformations.
//
// A circle |z - center| = r expands to
//
//	z·z̄ - z·center̄ - z̄·center + |center|² - r² = 0
//
// and after scaling by any real number to the Hermitian form
//
//	A·z·z̄ + B·z + C·z̄ + D = 0,  C = B̄
//
// Straight lines are the clines with A = 0. The four coefficients multiply
// like a 2×2 matrix, so a Möbius map M moves a cline by the sandwich
//
//	C' = (M⁻¹)ᵀ · C · conj(M⁻¹)
package cline

import (
	"fmt"
	"math/cmplx"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/mobius"
)

// Cline is the relation A·z·z̄ + B·z + C·z̄ + D = 0.
type Cline struct {
	A, B, C, D complex128
}

// FromCircle returns the cline of |z - center| = radius with A = 1. The
// radius may be complex; an imaginary radius gives an imaginary circle.
func FromCircle(center, radius complex128) Cline {
	b := -cmplx.Conj(center)
	return Cline{
		A: 1,
		B: b,
		C: cmplx.Conj(b),
		D: center*cmplx.Conj(center) - radius*radius,
	}
}

// FromLine returns the line A·x + B·y = C in cline form.
func FromLine(l Line) Cline {
	c := complex(l.A, l.B)
	return Cline{B: cmplx.Conj(c), C: c, D: complex(-2*l.C, 0)}
}

// Transform returns the image of the cline under m. Singular maps have no
// inverse and fail with SINGULAR_MATRIX.
func (c Cline) Transform(m mobius.Mobius) (Cline, error) {
	if m.Det() == 0 {
		return Cline{}, kerrors.New(kerrors.ErrCodeSingularMatrix, "cannot transform cline by singular %v", m)
	}
	inv := m.Inverse()
	// The cline is not a transformation, but it multiplies like one.
	out := inv.Transpose().Mul(c.matrix()).Mul(inv.Conjugate())
	return Cline{A: out.A, B: out.B, C: out.C, D: out.D}, nil
}

// Discriminant returns AD - BC.
func (c Cline) Discriminant() complex128 {
	return c.A*c.D - c.B*c.C
}

// String formats the cline as its defining equation.
func (c Cline) String() string {
	return fmt.Sprintf("%v * |z|^2 + %v * z + %v * z.conj + %v = 0", c.A, c.B, c.C, c.D)
}

func (c Cline) matrix() mobius.Mobius {
	return mobius.New(c.A, c.B, c.C, c.D)
}
