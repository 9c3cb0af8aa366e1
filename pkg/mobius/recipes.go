package mobius

import (
	"math"
	"math/cmplx"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// Recipes from Indra's Pearls (Mumford, Series, Wright), chapter 3.

// CayleyMap is K(z) = (z - i)/(z + i), a 120° turn of the Riemann sphere with
// ∞ → 1, 1 → -i, -i → ∞. It carries the upper half plane onto the unit disk
// and the unit circle onto the imaginary axis. Its determinant is 2i, so
// normalize it before using it as a group element rather than for
// conjugation.
var CayleyMap = Mobius{A: 1, B: -1i, C: 1, D: 1i}

// UpperHalfPlane builds an element of SL(2, R), which maps the upper half
// plane to itself (Recipe I). Taking float64 arguments keeps the entries
// real.
func UpperHalfPlane(a, b, c, d float64) Mobius {
	return Mobius{
		A: complex(a, 0),
		B: complex(b, 0),
		C: complex(c, 0),
		D: complex(d, 0),
	}
}

// UnitCircleMap returns [[u, v], [v̄, ū]], a map sending the unit circle to
// itself (Recipe III).
func UnitCircleMap(u, v complex128) Mobius {
	return Mobius{A: u, B: v, C: cmplx.Conj(v), D: cmplx.Conj(u)}
}

// UnitCircleMapCayley turns an upper half plane map into a unit circle map by
// conjugating with the Cayley map. Strictly loxodromic maps preserve no
// circle and are rejected with INVALID_INPUT.
func UnitCircleMapCayley(m Mobius) (Mobius, error) {
	if m.Classify() == Loxodromic {
		return Mobius{}, kerrors.New(kerrors.ErrCodeInvalidInput, "cannot make unit circle map from loxodromic %v", m)
	}
	return m.ConjugateBy(CayleyMap), nil
}

// SpecialStretchMap is the one-parameter unit circle map [[u, v], [v, u]]
// with v = √(u² - 1). It requires u > 1.
func SpecialStretchMap(u float64) (Mobius, error) {
	if !(u > 1) {
		return Mobius{}, kerrors.New(kerrors.ErrCodeInvalidInput, "stretch factor must be > 1, got %g", u)
	}
	v := complex(math.Sqrt(u*u-1), 0)
	return Mobius{A: complex(u, 0), B: v, C: v, D: complex(u, 0)}, nil
}
