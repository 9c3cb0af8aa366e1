// Package atlas sweeps Grandma's recipe over a lattice of trace pairs.
//
// The lattice is the square of Gaussian integers with |Re|, |Im| ≤ radius.
// Every ordered pair (ta, tb) of lattice points is one recipe evaluation,
// so a sweep runs (2·radius + 1)⁴ of them. Evaluations are independent and
// run on a bounded worker pool; a pair whose denominators vanish is
// recorded as invalid and counted without stopping its siblings. Results
// are stored by index, so [Result.Items] follows lattice order no matter
// how the workers interleave.
package atlas

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/observability"
)

const (
	// DefaultRadius is the lattice radius used when none is given.
	DefaultRadius = 4
	// MaxRadius bounds the sweep: radius 16 is already 33⁴ ≈ 1.2M pairs.
	MaxRadius = 16

	// Zoom and Size are the render settings of atlas flames.
	Zoom = 0.5
	Size = "500 500"
)

// Options configures a sweep.
type Options struct {
	Radius  int
	Root    group.Root
	Workers int                      // 0 means GOMAXPROCS
	Logger  func(string, ...any)     // receives one line per invalid pair
	Hooks   observability.SweepHooks // nil means the registered hooks
}

// WithDefaults fills in workers, logger and hooks. Radius and Root are
// never defaulted.
func (o Options) WithDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	if o.Hooks == nil {
		o.Hooks = observability.Sweep()
	}
	return o
}

// Validate checks the radius and root.
func (o Options) Validate() error {
	if o.Radius < 0 || o.Radius > MaxRadius {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "radius must be in [0, %d], got %d", MaxRadius, o.Radius)
	}
	if o.Root != group.PlusRoot && o.Root != group.MinusRoot {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "root selection is required")
	}
	return nil
}

// Item is the outcome of one trace pair: a group or the error that
// prevented it.
type Item struct {
	Index          int
	TraceA, TraceB complex128
	Group          group.Group
	Err            error
}

// Result holds every item of a sweep in lattice order.
type Result struct {
	Radius   int
	Root     group.Root
	Items    []Item
	Valid    int
	Invalid  int
	Duration time.Duration
}

// Lattice returns the Gaussian integers x + yi with |x|, |y| ≤ radius,
// x-major.
func Lattice(radius int) []complex128 {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	pts := make([]complex128, 0, side*side)
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			pts = append(pts, complex(float64(x), float64(y)))
		}
	}
	return pts
}

// Sweep evaluates the recipe for every ordered pair of lattice points.
// It returns an error only for invalid options or a cancelled context;
// invalid pairs are part of the result.
func Sweep(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	pts := Lattice(opts.Radius)
	n := len(pts)
	total := n * n
	items := make([]Item, total)

	start := time.Now()
	opts.Hooks.OnSweepStart(ctx, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for idx := 0; idx < total; idx++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ta, tb := pts[idx/n], pts[idx%n]
			grp, err := group.GrandmasRecipe(ta, tb, opts.Root)
			items[idx] = Item{Index: idx, TraceA: ta, TraceB: tb, Group: grp, Err: err}
			if err != nil {
				opts.Logger("invalid pair ta=%v tb=%v sum=%v diff=%v: %v", ta, tb, ta+tb, ta-tb, err)
			}
			opts.Hooks.OnSweepItem(gctx, idx, ta, tb, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Radius: opts.Radius, Root: opts.Root, Items: items}
	for i := range items {
		if items[i].Err != nil {
			res.Invalid++
		} else {
			res.Valid++
		}
	}
	res.Duration = time.Since(start)
	opts.Hooks.OnSweepComplete(ctx, res.Valid, res.Invalid, res.Duration)
	return res, nil
}

// InvalidItems returns the failed pairs in lattice order.
func (r *Result) InvalidItems() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// Pack turns the valid items into one flame each, with a fresh random
// palette per flame drawn from rng.
func (r *Result) Pack(name string, rng *rand.Rand) flame.Pack {
	pack := flame.Pack{Name: name, Flames: make([]flame.Flame, 0, r.Valid)}
	for _, it := range r.Items {
		if it.Err != nil {
			continue
		}
		pack.Flames = append(pack.Flames, flame.Flame{
			Name:    fmt.Sprintf("Grandma_a_%v_b_%v", it.TraceA, it.TraceB),
			Xforms:  it.Group,
			Palette: flame.RandomPalette(rng),
			Zoom:    Zoom,
			Size:    Size,
		})
	}
	return pack
}
