package cline

import (
	"math/cmplx"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// Kind is the geometric type of a cline.
type Kind int

const (
	// KindCircle is a real circle: A ≠ 0, Re Δ < 0.
	KindCircle Kind = iota
	// KindPoint is a circle of radius zero: A ≠ 0, Re Δ = 0.
	KindPoint
	// KindImaginaryCircle has an imaginary radius: A ≠ 0, Re Δ > 0.
	KindImaginaryCircle
	// KindLine is a straight line: A = 0, Re Δ < 0.
	KindLine
	// KindNotACircle is the degenerate A = 0, Re Δ = 0 case.
	KindNotACircle
	// KindInvalid cannot occur for Hermitian clines: A = 0, Re Δ > 0.
	KindInvalid
)

var kindNames = map[Kind]string{
	KindCircle:          "circle",
	KindPoint:           "point",
	KindImaginaryCircle: "imag_circle",
	KindLine:            "line",
	KindNotACircle:      "not_circle",
	KindInvalid:         "invalid",
}

// String returns the kind's short name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Classify determines the kind from A and the real part of the
// discriminant Δ.
func (c Cline) Classify() Kind {
	disc := real(c.Discriminant())
	if c.A != 0 {
		switch {
		case disc < 0:
			return KindCircle
		case disc == 0:
			return KindPoint
		default:
			return KindImaginaryCircle
		}
	}
	switch {
	case disc < 0:
		return KindLine
	case disc == 0:
		return KindNotACircle
	default:
		return KindInvalid
	}
}

// Shape is the decoded geometry of a cline: one of [Circle], [Point],
// [Line] or [Degenerate].
type Shape interface {
	Kind() Kind
}

// Circle is |z - Center| = Radius.
type Circle struct {
	Center complex128
	Radius float64
}

// Point is the zero-radius circle at Center.
type Point struct {
	Center complex128
}

// Line is A·x + B·y = C.
type Line struct {
	A, B, C float64
}

// Degenerate is a cline with no geometric shape (not_circle or invalid).
type Degenerate struct {
	K Kind
}

func (Circle) Kind() Kind       { return KindCircle }
func (Point) Kind() Kind        { return KindPoint }
func (Line) Kind() Kind         { return KindLine }
func (d Degenerate) Kind() Kind { return d.K }

// Params decodes the cline into its shape.
//
// Circles and points have center -C/A; circles have radius √(-Δ/A). Lines
// come from C̄·z + C·z̄ + D = 0, i.e. 2·Re(C̄·z) = -D, giving
// Re(C)·x + Im(C)·y = -D/2. Decoding imaginary circles is not supported
// and fails with UNIMPLEMENTED.
func (c Cline) Params() (Shape, error) {
	switch k := c.Classify(); k {
	case KindCircle:
		radius := cmplx.Sqrt(-c.Discriminant() / c.A)
		return Circle{Center: -c.C / c.A, Radius: real(radius)}, nil
	case KindPoint:
		return Point{Center: -c.C / c.A}, nil
	case KindImaginaryCircle:
		return nil, kerrors.New(kerrors.ErrCodeUnimplemented, "imaginary circle parameters")
	case KindLine:
		return Line{A: real(c.C), B: imag(c.C), C: real(-c.D / 2)}, nil
	default:
		return Degenerate{K: k}, nil
	}
}
