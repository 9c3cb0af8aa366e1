package mobius

import (
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// divide returns num/den or a DIVIDE_BY_ZERO error naming what was computed.
func divide(num, den complex128, what string) (complex128, error) {
	if den == 0 {
		return 0, kerrors.New(kerrors.ErrCodeDivideByZero, "%s: denominator is zero", what)
	}
	return num / den, nil
}

// FromZero returns M(0) = b/d.
func (m Mobius) FromZero() (complex128, error) {
	return divide(m.B, m.D, "M(0)")
}

// FromOne returns M(1) = (a + b)/(c + d).
func (m Mobius) FromOne() (complex128, error) {
	return divide(m.A+m.B, m.C+m.D, "M(1)")
}

// FromInf returns M(∞) = a/c.
func (m Mobius) FromInf() (complex128, error) {
	return divide(m.A, m.C, "M(inf)")
}

// ToZero returns M⁻¹(0) = -b/a, the point sent to 0.
func (m Mobius) ToZero() (complex128, error) {
	return divide(-m.B, m.A, "M^-1(0)")
}

// ToOne returns M⁻¹(1) = (d - b)/(a - c), the point sent to 1.
func (m Mobius) ToOne() (complex128, error) {
	return divide(m.D-m.B, m.A-m.C, "M^-1(1)")
}

// ToInf returns M⁻¹(∞) = -d/c, the pole of M.
func (m Mobius) ToInf() (complex128, error) {
	return divide(-m.D, m.C, "M^-1(inf)")
}

// Poles returns (M⁻¹(∞), M(∞)).
func (m Mobius) Poles() (toInf, fromInf complex128, err error) {
	if toInf, err = m.ToInf(); err != nil {
		return 0, 0, err
	}
	if fromInf, err = m.FromInf(); err != nil {
		return 0, 0, err
	}
	return toInf, fromInf, nil
}
