package animation

import (
	"encoding/json"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/parametric"
)

// Description is the contents of an animation file.
type Description struct {
	Animator string         `toml:"animator" json:"animator"`
	PackName string         `toml:"pack_name" json:"pack_name"`
	Fname    string         `toml:"fname" json:"fname"`
	Params   map[string]any `toml:"params" json:"params"`
}

// Load reads a description from path. Files ending in .json are decoded as
// JSON, everything else as TOML.
func Load(path string) (*Description, error) {
	if err := kerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "animation file %s", path)
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "read %s", path)
	}

	var d Description
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &d)
	} else {
		err = toml.Unmarshal(data, &d)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the animator, names and output file.
func (d *Description) Validate() error {
	if d.Animator != "grandma" {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "unknown animator %q", d.Animator)
	}
	if err := kerrors.ValidateName(d.PackName); err != nil {
		return err
	}
	if err := kerrors.ValidatePath(d.Fname); err != nil {
		return err
	}
	if d.Params == nil {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "params table is required")
	}
	return nil
}

// Grandma builds the animation from Params. Keys starting with "curve_"
// are parsed with [ParseCurve]. The root comes from either root = "plus"
// or "minus", or the boolean plus_root; one of them must be present. A
// palette of "random" draws from rng.
func (d *Description) Grandma(rng *rand.Rand) (*Grandma, error) {
	p := d.Params
	g := &Grandma{Size: Size}

	frames, ok := toFloat(p["num_frames"])
	if !ok || frames != float64(int(frames)) {
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "num_frames must be an integer")
	}
	g.Frames = int(frames)

	var err error
	for key, dst := range map[string]*parametric.Curve{
		"curve_trace_a": &g.TraceA,
		"curve_trace_b": &g.TraceB,
		"curve_zoom":    &g.Zoom,
	} {
		v, ok := p[key]
		if !ok {
			return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "%s is required", key)
		}
		if *dst, err = ParseCurve(v); err != nil {
			return nil, kerrors.Wrap(kerrors.GetCode(err), err, "%s", key)
		}
	}

	switch {
	case p["root"] != nil:
		s, _ := p["root"].(string)
		if g.Root, err = group.ParseRoot(s); err != nil {
			return nil, err
		}
	case p["plus_root"] != nil:
		plus, ok := p["plus_root"].(bool)
		if !ok {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "plus_root must be a boolean")
		}
		g.Root = group.MinusRoot
		if plus {
			g.Root = group.PlusRoot
		}
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "root or plus_root is required")
	}

	switch pal := p["palette"]; pal {
	case nil, "random":
		g.Palette = flame.RandomPalette(rng)
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "unknown palette %v", pal)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseCurve builds a curve from decoded TOML or JSON:
//
//	curve = number                               constant
//	      | [re, im]                             constant complex
//	      | ["loop", curve]
//	      | ["reverse", curve]
//	      | ["chain", curve, ...]
//	      | ["line", start, end]                 start, end: number | [re, im]
//	      | ["circle", center, radius, theta0, freq]
func ParseCurve(v any) (parametric.Curve, error) {
	if f, ok := toFloat(v); ok {
		return parametric.Const(complex(f, 0)), nil
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "%v is not a valid curve", v)
	}
	if _, ok := toFloat(list[0]); ok {
		z, err := parseComplex(list)
		if err != nil {
			return nil, err
		}
		return parametric.Const(z), nil
	}

	kind, _ := list[0].(string)
	args := list[1:]
	switch kind {
	case "loop", "reverse":
		if len(args) != 1 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "%s takes one curve, got %d", kind, len(args))
		}
		c, err := ParseCurve(args[0])
		if err != nil {
			return nil, err
		}
		if kind == "loop" {
			return parametric.Loop(c), nil
		}
		return parametric.Reverse{Curve: c}, nil

	case "chain":
		if len(args) == 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "chain needs at least one curve")
		}
		chain := make(parametric.Chain, len(args))
		for i, a := range args {
			c, err := ParseCurve(a)
			if err != nil {
				return nil, err
			}
			chain[i] = c
		}
		return chain, nil

	case "line":
		if len(args) != 2 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "line takes start and end, got %d values", len(args))
		}
		start, err := parseComplex(args[0])
		if err != nil {
			return nil, err
		}
		end, err := parseComplex(args[1])
		if err != nil {
			return nil, err
		}
		return parametric.Line{Start: start, End: end}, nil

	case "circle":
		if len(args) != 4 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "circle takes center, radius, theta0 and freq, got %d values", len(args))
		}
		center, err := parseComplex(args[0])
		if err != nil {
			return nil, err
		}
		var nums [3]float64
		for i, a := range args[1:] {
			f, ok := toFloat(a)
			if !ok {
				return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "circle parameter %v is not a number", a)
			}
			nums[i] = f
		}
		return parametric.Circle{Center: center, Radius: nums[0], Theta0: nums[1], Freq: nums[2]}, nil
	}
	return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "%v is not a valid curve", v)
}

// parseComplex accepts a number or [re, im].
func parseComplex(v any) (complex128, error) {
	if f, ok := toFloat(v); ok {
		return complex(f, 0), nil
	}
	if list, ok := v.([]any); ok && len(list) == 2 {
		re, ok1 := toFloat(list[0])
		im, ok2 := toFloat(list[1])
		if ok1 && ok2 {
			return complex(re, im), nil
		}
	}
	return 0, kerrors.New(kerrors.ErrCodeInvalidFormat, "%v not in the form [real, imag]", v)
}

// toFloat accepts the numeric types TOML and JSON decode into.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
