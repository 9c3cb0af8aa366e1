// Package animation turns parametric curves of traces into flame packs.
//
// A [Grandma] animation samples its trace and zoom curves once per frame,
// runs Grandma's recipe on the sampled traces and emits one flame per
// frame. Frames whose traces make the recipe fail are skipped and reported
// instead of ending the animation.
//
// Animations are usually described in a file read by [Load]:
//
//	animator = "grandma"
//	pack_name = "Orbit"
//	fname = "orbit.flame"
//
//	[params]
//	num_frames = 120
//	root = "plus"
//	palette = "random"
//	curve_trace_a = ["loop", ["line", [1.87, 0.1], [1.87, -0.1]]]
//	curve_trace_b = 2.0
//	curve_zoom = ["line", 0.5, 1.0]
package animation

import (
	"fmt"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/parametric"
)

// Size is the render size of animation frames.
const Size = "500 500"

// Grandma animates Grandma's recipe along trace curves.
type Grandma struct {
	Frames  int
	TraceA  parametric.Curve
	TraceB  parametric.Curve
	Zoom    parametric.Curve // only the real part is used
	Root    group.Root
	Palette flame.Palette
	Size    string
}

// Frame is the sampled state of one frame.
type Frame struct {
	Index          int
	T              float64
	TraceA, TraceB complex128
	Zoom           float64
}

// Name formats the frame as
// frame_NNNN_zoom_Z_tr_a_RE_IMi_tr_b_RE_IMi.
func (f Frame) Name() string {
	return fmt.Sprintf("frame_%04d_zoom_%.3f_tr_a_%s_tr_b_%s",
		f.Index, f.Zoom, formatComplex(f.TraceA), formatComplex(f.TraceB))
}

func formatComplex(z complex128) string {
	return fmt.Sprintf("%.3f_%.3fi", real(z), imag(z))
}

// Skipped is a frame the recipe rejected.
type Skipped struct {
	Frame Frame
	Err   error
}

// Validate checks the frame count, curves and root.
func (g *Grandma) Validate() error {
	if g.Frames <= 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "frame count must be positive, got %d", g.Frames)
	}
	if g.TraceA == nil || g.TraceB == nil || g.Zoom == nil {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "trace and zoom curves are required")
	}
	if g.Root != group.PlusRoot && g.Root != group.MinusRoot {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "root selection is required")
	}
	return kerrors.ValidateSize(g.size())
}

func (g *Grandma) size() string {
	if g.Size == "" {
		return Size
	}
	return g.Size
}

// Params samples the curves at t = i/Frames for every frame. The last
// frame stops short of t = 1 so looped curves do not repeat their start.
func (g *Grandma) Params() []Frame {
	frames := make([]Frame, g.Frames)
	dt := 1 / float64(g.Frames)
	for i := range frames {
		t := float64(i) * dt
		frames[i] = Frame{
			Index:  i,
			T:      t,
			TraceA: g.TraceA.At(t),
			TraceB: g.TraceB.At(t),
			Zoom:   real(g.Zoom.At(t)),
		}
	}
	return frames
}

// Flames runs the recipe for every frame. Frames the recipe rejects are
// returned in skipped; any other failure is returned as an error.
func (g *Grandma) Flames() (flames []flame.Flame, skipped []Skipped, err error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	for _, fr := range g.Params() {
		xforms, err := group.GrandmasRecipe(fr.TraceA, fr.TraceB, g.Root)
		if err != nil {
			if kerrors.Is(err, kerrors.ErrCodeInvalidParameters) {
				skipped = append(skipped, Skipped{Frame: fr, Err: err})
				continue
			}
			return nil, nil, err
		}
		flames = append(flames, flame.Flame{
			Name:    fr.Name(),
			Xforms:  xforms,
			Palette: g.Palette,
			Zoom:    fr.Zoom,
			Size:    g.size(),
		})
	}
	return flames, skipped, nil
}
