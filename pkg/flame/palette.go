package flame

import (
	"fmt"
	"math"
	"math/rand/v2"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

const (
	// TotalColors is the number of entries in a flame palette.
	TotalColors = 256
	// ColorsPerRow is how many hex colors are written per palette line.
	ColorsPerRow = 8
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex formats the color as six upper-case hex digits.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Palette holds the 256 colors a flame renderer indexes by xform color.
type Palette [TotalColors]Color

// NewPalette copies colors into a palette. Exactly [TotalColors] colors
// are required.
func NewPalette(colors []Color) (Palette, error) {
	var p Palette
	if len(colors) != TotalColors {
		return p, kerrors.New(kerrors.ErrCodeInvalidInput, "palettes must have %d colors, got %d", TotalColors, len(colors))
	}
	copy(p[:], colors)
	return p, nil
}

// RandomPalette returns a cosine palette
//
//	color(t) = a + b·cos(2π(c·t + d))
//
// with a = b = 0.5 and, per channel, an integer frequency c in [0, 5] and
// a phase d in [0, 1).
func RandomPalette(rng *rand.Rand) Palette {
	var freq [3]float64
	var phase [3]float64
	for ch := range freq {
		freq[ch] = float64(rng.IntN(6))
		phase[ch] = rng.Float64()
	}

	var p Palette
	for i := range p {
		t := float64(i) / TotalColors
		p[i] = Color{
			R: cosineComponent(t, freq[0], phase[0]),
			G: cosineComponent(t, freq[1], phase[1]),
			B: cosineComponent(t, freq[2], phase[2]),
		}
	}
	return p
}

// NewRand returns a generator for [RandomPalette]. A zero seed draws a
// random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func cosineComponent(t, c, d float64) uint8 {
	v := 0.5 + 0.5*math.Cos(2*math.Pi*(c*t+d))
	return uint8(v * 255)
}

// Rows formats the palette as lines of [ColorsPerRow] hex colors.
func (p *Palette) Rows() []string {
	rows := make([]string, 0, TotalColors/ColorsPerRow)
	for start := 0; start < TotalColors; start += ColorsPerRow {
		var row []byte
		for _, c := range p[start : start+ColorsPerRow] {
			row = append(row, c.Hex()...)
		}
		rows = append(rows, string(row))
	}
	return rows
}
