package flame

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/mobius"
)

// DefaultSize is the render size of a standalone flame.
const DefaultSize = "1500 2100"

// Flame is one fractal: a set of Möbius xforms plus render settings.
type Flame struct {
	Name    string
	Xforms  group.Group
	Palette Palette
	Zoom    float64 // linear weight of the final xform
	Size    string  // "width height"
}

// Validate checks the name, size and zoom.
func (f *Flame) Validate() error {
	if err := kerrors.ValidateName(f.Name); err != nil {
		return err
	}
	if err := kerrors.ValidateSize(f.Size); err != nil {
		return err
	}
	if math.IsNaN(f.Zoom) || math.IsInf(f.Zoom, 0) {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "zoom must be finite, got %g", f.Zoom)
	}
	return nil
}

// Pack is a .flame file holding many flames.
type Pack struct {
	Name   string
	Flames []Flame
}

// Validate checks the pack name and every flame.
func (p *Pack) Validate() error {
	if err := kerrors.ValidateName(p.Name); err != nil {
		return err
	}
	for i := range p.Flames {
		if err := p.Flames[i].Validate(); err != nil {
			return kerrors.Wrap(kerrors.GetCode(err), err, "flame %d", i)
		}
	}
	return nil
}

// Attribute values shared by every flame we emit.
const (
	apoVersion = "Apophysis 7x Version 15C.9"
	toneCurves = "0 0 1 0 0 1 1 1 1 1 1 1 0 0 1 0 0 1 1 1 1 1 1 1 0 0 1 0 " +
		"0 1 1 1 1 1 1 1 0 0 1 0 0 1 1 1 1 1 1 1"
	identityCoefs = "1 0 0 1 0 0"
)

type xmlPack struct {
	XMLName xml.Name   `xml:"flames"`
	Name    string     `xml:"name,attr"`
	Flames  []xmlFlame `xml:"flame"`
}

type xmlFlame struct {
	XMLName          xml.Name   `xml:"flame"`
	Name             string     `xml:"name,attr"`
	Version          string     `xml:"version,attr"`
	Size             string     `xml:"size,attr"`
	Center           string     `xml:"center,attr"`
	Scale            int        `xml:"scale,attr"`
	Oversample       int        `xml:"oversample,attr"`
	Filter           float64    `xml:"filter,attr"`
	Quality          int        `xml:"quality,attr"`
	Background       string     `xml:"background,attr"`
	Brightness       int        `xml:"brightness,attr"`
	Gamma            int        `xml:"gamma,attr"`
	GammaThreshold   float64    `xml:"gamma_threshold,attr"`
	EstimatorRadius  int        `xml:"estimator_radius,attr"`
	EstimatorMinimum int        `xml:"estimator_minimum,attr"`
	EstimatorCurve   float64    `xml:"estimator_curve,attr"`
	EnableDE         int        `xml:"enable_de,attr"`
	Plugins          string     `xml:"plugins,attr"`
	NewLinear        int        `xml:"new_linear,attr"`
	Curves           string     `xml:"curves,attr"`
	Xforms           []xmlXform `xml:"xform"`
	Final            xmlFinal   `xml:"finalxform"`
	Palette          xmlPalette `xml:"palette"`
}

type xmlXform struct {
	Weight  float64 `xml:"weight,attr"`
	Color   float64 `xml:"color,attr"`
	Mobius  int     `xml:"mobius,attr"`
	Coefs   string  `xml:"coefs,attr"`
	ReA     float64 `xml:"Re_A,attr"`
	ImA     float64 `xml:"Im_A,attr"`
	ReB     float64 `xml:"Re_B,attr"`
	ImB     float64 `xml:"Im_B,attr"`
	ReC     float64 `xml:"Re_C,attr"`
	ImC     float64 `xml:"Im_C,attr"`
	ReD     float64 `xml:"Re_D,attr"`
	ImD     float64 `xml:"Im_D,attr"`
	Opacity int     `xml:"opacity,attr"`
}

type xmlFinal struct {
	Color    int     `xml:"color,attr"`
	Symmetry int     `xml:"symmetry,attr"`
	Linear   float64 `xml:"linear,attr"`
	Coefs    string  `xml:"coefs,attr"`
}

type xmlPalette struct {
	Count  int    `xml:"count,attr"`
	Format string `xml:"format,attr"`
	Rows   string `xml:",chardata"`
}

// xform converts one map. color spreads the xforms evenly along the
// palette.
func xform(m mobius.Mobius, color float64) xmlXform {
	c := m.Coefficients()
	return xmlXform{
		Weight:  0.5,
		Color:   color,
		Mobius:  1,
		Coefs:   identityCoefs,
		ReA:     c[0],
		ImA:     c[1],
		ReB:     c[2],
		ImB:     c[3],
		ReC:     c[4],
		ImC:     c[5],
		ReD:     c[6],
		ImD:     c[7],
		Opacity: 1,
	}
}

func (f *Flame) wire() xmlFlame {
	n := len(f.Xforms)
	xforms := make([]xmlXform, n)
	for i, m := range f.Xforms {
		xforms[i] = xform(m, float64(i)/float64(n+1))
	}
	return xmlFlame{
		Name:             f.Name,
		Version:          apoVersion,
		Size:             f.Size,
		Center:           "0 0",
		Scale:            200,
		Oversample:       1,
		Filter:           0.2,
		Quality:          1,
		Background:       "0 0 0",
		Brightness:       4,
		Gamma:            4,
		GammaThreshold:   0.01,
		EstimatorRadius:  9,
		EstimatorMinimum: 0,
		EstimatorCurve:   0.4,
		EnableDE:         0,
		Plugins:          "",
		NewLinear:        1,
		Curves:           toneCurves,
		Xforms:           xforms,
		Final: xmlFinal{
			Color:    0,
			Symmetry: 1,
			Linear:   f.Zoom,
			Coefs:    identityCoefs,
		},
		Palette: xmlPalette{
			Count:  TotalColors,
			Format: "RGB",
			Rows:   "\n" + strings.Join(f.Palette.Rows(), "\n") + "\n",
		},
	}
}

// Write encodes a single <flame> element to w.
func (f *Flame) Write(w io.Writer) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return encode(w, f.wire())
}

// Write encodes the pack as a <flames> document to w.
func (p *Pack) Write(w io.Writer) error {
	if err := p.Validate(); err != nil {
		return err
	}
	out := xmlPack{Name: p.Name, Flames: make([]xmlFlame, len(p.Flames))}
	for i := range p.Flames {
		out.Flames[i] = p.Flames[i].wire()
	}
	return encode(w, out)
}

// Bytes returns the encoded pack.
func (p *Pack) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes the pack to a .flame file at path.
func (p *Pack) Export(path string) error {
	if err := kerrors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := p.Write(f); err != nil {
		return err
	}
	return f.Close()
}

func encode(w io.Writer, v any) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "   ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
