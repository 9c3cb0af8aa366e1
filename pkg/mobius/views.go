package mobius

// Rotations of the Riemann sphere, used to look at a group from another
// viewpoint via [Mobius.ConjugateBy]. All are normalized to determinant 1.
var (
	RX180 = mustNormalize(Mobius{B: 1, C: 1})
	RY180 = mustNormalize(Mobius{B: -1, C: 1})
	RZ180 = mustNormalize(Mobius{A: -1, D: 1})

	RZ90 = mustNormalize(Mobius{A: 1i, D: 1})
	RX90 = mustNormalize(Mobius{A: 1, B: 1i, C: 1i, D: 1})
	RY90 = RX90.ConjugateBy(RZ90)
)

// RotateZ rotates the sphere by theta about its z axis, which is a plain
// rotation of the plane about the origin.
func RotateZ(theta float64) Mobius {
	return Rotate(theta)
}

// RotateX rotates the sphere by theta about its x axis: carry the x axis to
// the z axis, rotate, and carry it back.
func RotateX(theta float64) Mobius {
	return Rotate(theta).ConjugateBy(RY90)
}

// RotateY rotates the sphere by theta about its y axis.
func RotateY(theta float64) Mobius {
	return Rotate(theta).ConjugateBy(RX90.Inverse())
}

// mustNormalize panics for singular input. Only used for constant matrices.
func mustNormalize(m Mobius) Mobius {
	n, err := m.Normalize()
	if err != nil {
		panic(err)
	}
	return n
}
