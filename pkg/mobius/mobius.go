// Package mobius implements Möbius transformations of the extended complex plane.
//
// A Möbius transformation (linear fractional transformation) is a map
//
//	M(z) = (a*z + b) / (c*z + d)
//
// with complex coefficients. It is represented by the 2×2 complex matrix
//
//	[a b]
//	[c d]
//
// and composing maps is matrix multiplication. Matrices are only defined up
// to a scalar factor: [Mobius.Inverse] is exact only after [Mobius.Normalize]
// has scaled the determinant to 1.
//
// [Mobius] is an immutable value. Every operation returns a new value and
// nothing in this package holds state, so values can be shared freely
// between goroutines.
//
// Operations that would divide by zero return an error with code
// DIVIDE_BY_ZERO instead of propagating Inf or NaN. There is no explicit
// point at infinity: callers decide what a vanishing denominator means.
//
// # Building Transformations
//
// Besides [New], the package provides elementary maps ([Translate],
// [Rotate], [Scale], [Reciprocal]), rotations of the Riemann sphere
// ([RotateX], [RotateY], [RotateZ], [RX90] and friends) and recipes from
// Indra's Pearls ([CayleyMap], [UnitCircleMap], [UpperHalfPlane]).
package mobius

import (
	"fmt"
	"math/cmplx"
	"strings"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// Mobius is the matrix [[A, B], [C, D]] acting as z ↦ (Az + B)/(Cz + D).
// Construction does not require a non-zero determinant.
type Mobius struct {
	A, B, C, D complex128
}

// New returns the transformation with the given coefficients. The matrix is
// not normalized.
func New(a, b, c, d complex128) Mobius {
	return Mobius{A: a, B: b, C: c, D: d}
}

// Apply evaluates the map at z. It fails with DIVIDE_BY_ZERO when
// c*z + d = 0, i.e. when z is sent to infinity.
func (m Mobius) Apply(z complex128) (complex128, error) {
	den := m.C*z + m.D
	if den == 0 {
		return 0, kerrors.New(kerrors.ErrCodeDivideByZero, "%v sends %v to infinity", m, z)
	}
	return (m.A*z + m.B) / den, nil
}

// Mul returns the composition m∘other, the matrix product m·other.
// The result applies other first, then m.
//
//	[a b]   [e f]   [ae + bg  af + bh]
//	[c d] * [g h] = [ce + dg  cf + dh]
func (m Mobius) Mul(other Mobius) Mobius {
	return Mobius{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
	}
}

// Inverse returns the adjugate [[d, -b], [-c, a]]. It inverts the map but is
// the inverse matrix only when det = 1, otherwise m.Mul(m.Inverse()) is
// det·I.
func (m Mobius) Inverse() Mobius {
	return Mobius{A: m.D, B: -m.B, C: -m.C, D: m.A}
}

// Det returns ad - bc.
func (m Mobius) Det() complex128 {
	return m.A*m.D - m.B*m.C
}

// Trace returns a + d.
func (m Mobius) Trace() complex128 {
	return m.A + m.D
}

// Normalize scales the matrix by 1/√det so that its determinant is 1.
// A singular matrix cannot be normalized and yields SINGULAR_MATRIX.
func (m Mobius) Normalize() (Mobius, error) {
	det := m.Det()
	if det == 0 {
		return Mobius{}, kerrors.New(kerrors.ErrCodeSingularMatrix, "cannot normalize %v: determinant is zero", m)
	}
	s := cmplx.Sqrt(det)
	return Mobius{A: m.A / s, B: m.B / s, C: m.C / s, D: m.D / s}, nil
}

// Transpose swaps b and c. As a map this equals Ry(π)·m⁻¹·Ry(π)⁻¹, where
// Ry(π)(z) = -1/z.
func (m Mobius) Transpose() Mobius {
	return Mobius{A: m.A, B: m.C, C: m.B, D: m.D}
}

// Conjugate replaces every coefficient with its complex conjugate, which is
// the same as conjugating the map by z ↦ z̄.
func (m Mobius) Conjugate() Mobius {
	return Mobius{
		A: cmplx.Conj(m.A),
		B: cmplx.Conj(m.B),
		C: cmplx.Conj(m.C),
		D: cmplx.Conj(m.D),
	}
}

// ConjugateBy returns other·m·other⁻¹: the same motion seen from the frame
// that other moves the sphere into.
func (m Mobius) ConjugateBy(other Mobius) Mobius {
	return other.Mul(m).Mul(other.Inverse())
}

// Coefficients returns Re and Im of a, b, c and d in that order, the eight
// numbers a flame xform stores.
func (m Mobius) Coefficients() [8]float64 {
	return [8]float64{
		real(m.A), imag(m.A),
		real(m.B), imag(m.B),
		real(m.C), imag(m.C),
		real(m.D), imag(m.D),
	}
}

// ApproxEqual reports whether every coefficient of m is within tol of the
// corresponding coefficient of other.
func (m Mobius) ApproxEqual(other Mobius, tol float64) bool {
	return cmplx.Abs(m.A-other.A) <= tol &&
		cmplx.Abs(m.B-other.B) <= tol &&
		cmplx.Abs(m.C-other.C) <= tol &&
		cmplx.Abs(m.D-other.D) <= tol
}

// String formats the map as "(az + b)/(cz + d)", leaving out zero terms and
// unit coefficients.
func (m Mobius) String() string {
	return fmt.Sprintf("(%s)/(%s)", formatTerms(m.A, m.B), formatTerms(m.C, m.D))
}

func formatTerms(coef, constant complex128) string {
	var terms []string
	switch coef {
	case 0:
	case 1:
		terms = append(terms, "z")
	default:
		terms = append(terms, formatComplex(coef)+"z")
	}
	if constant != 0 {
		terms = append(terms, formatComplex(constant))
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func formatComplex(z complex128) string {
	if imag(z) == 0 {
		return fmt.Sprintf("%g", real(z))
	}
	return fmt.Sprintf("%g", z)
}
