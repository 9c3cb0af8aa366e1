// Package parametric provides curves t ↦ z from [0, 1] to the complex plane.
//
// Animations sample a [Curve] once per frame to obtain traces and zoom
// levels. Curves compose: [Reverse] runs one backwards, [Chain] plays
// several in sequence and [Loop] plays one forwards then backwards so an
// animation ends where it began.
//
//	c := parametric.Loop(parametric.Line{Start: 2, End: 2 + 1i})
//	c.At(0.25) // 2 + 0.5i
package parametric

import (
	"math"
	"math/cmplx"
)

// Curve maps a parameter t in [0, 1] to a complex value.
type Curve interface {
	At(t float64) complex128
}

// Const is a curve that ignores t.
type Const complex128

// At returns the constant.
func (c Const) At(float64) complex128 { return complex128(c) }

// Func adapts an ordinary function to [Curve].
type Func func(t float64) complex128

// At calls f(t).
func (f Func) At(t float64) complex128 { return f(t) }

// Line interpolates linearly from Start at t = 0 to End at t = 1.
type Line struct {
	Start, End complex128
}

// At returns (1-t)·Start + t·End.
func (l Line) At(t float64) complex128 {
	return complex(1-t, 0)*l.Start + complex(t, 0)*l.End
}

// Circle traces Center + Radius·e^{i(Theta0 + 2π·Freq·t)}. Freq is the
// number of turns made over [0, 1].
type Circle struct {
	Center complex128
	Radius float64
	Theta0 float64
	Freq   float64
}

// At returns the point at angle Theta0 + 2π·Freq·t.
func (c Circle) At(t float64) complex128 {
	theta := c.Theta0 + 2*math.Pi*c.Freq*t
	return c.Center + complex(c.Radius, 0)*cmplx.Exp(complex(0, theta))
}

// Reverse runs a curve backwards.
type Reverse struct {
	Curve Curve
}

// At returns Curve.At(1 - t).
func (r Reverse) At(t float64) complex128 { return r.Curve.At(1 - t) }

// Chain plays curves one after another, giving each an equal share of
// [0, 1]. An empty chain is the constant 0.
type Chain []Curve

// At finds the bucket containing t and evaluates that curve at the offset
// inside the bucket. t = 1 evaluates the end of the last curve rather than
// the start of a bucket past the end.
func (c Chain) At(t float64) complex128 {
	n := len(c)
	if n == 0 {
		return 0
	}
	if t >= 1 {
		return c[n-1].At(1)
	}
	if t <= 0 {
		return c[0].At(0)
	}
	scaled := float64(n) * t
	i := int(math.Floor(scaled))
	if i >= n {
		i = n - 1
	}
	return c[i].At(scaled - float64(i))
}

// Loop plays c forwards over [0, 0.5] and backwards over [0.5, 1]. Loops
// need twice the frames to keep the same speed.
func Loop(c Curve) Chain {
	return Chain{c, Reverse{Curve: c}}
}
