// Package pipeline turns recipe parameters into encoded flame packs.
//
// It is shared by the CLI and the HTTP API so both apply the same defaults,
// cache keys and hooks.
//
// # Jobs
//
// A [Runner] runs three kinds of job:
//
//  1. Grandma: one recipe evaluation, one flame
//  2. Atlas: a lattice sweep, one flame per valid trace pair
//  3. Animate: an animation description, one flame per valid frame
//
// Each job returns a [Result] holding the encoded pack and its stats.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Grandma(ctx, pipeline.GrandmaOptions{
//	    TraceA: 2, TraceB: 2, Root: group.MinusRoot, Seed: 42,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("grandma.flame", res.Pack, 0644)
//
// # Caching
//
// Jobs are cached only when the palette seed is fixed. A zero seed draws a
// random palette, so the output is not reproducible and the cache is
// bypassed.
package pipeline

import (
	"math"
	"time"

	"github.com/google/uuid"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/group"
)

// Job kinds reported to hooks and logs.
const (
	JobGrandma = "grandma"
	JobAtlas   = "atlas"
	JobAnimate = "animate"
)

// Defaults shared by the CLI and the API.
const (
	DefaultZoom     = 1.0
	DefaultName     = "Grandma"
	DefaultPackName = "Kleinian"
)

// GrandmaOptions configures a single recipe evaluation.
type GrandmaOptions struct {
	TraceA  complex128
	TraceB  complex128
	Root    group.Root
	Name    string  // flame and pack name, default "Grandma"
	Zoom    float64 // default 1
	Size    string  // default flame.DefaultSize
	Seed    uint64  // palette seed; 0 draws a random palette and skips the cache
	Refresh bool    // recompute even on a cache hit
}

// WithDefaults fills in name, zoom and size.
func (o GrandmaOptions) WithDefaults() GrandmaOptions {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Size == "" {
		o.Size = flame.DefaultSize
	}
	return o
}

// Validate checks the traces, root and render settings.
func (o GrandmaOptions) Validate() error {
	if !finite(o.TraceA) || !finite(o.TraceB) {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "traces must be finite")
	}
	if o.Root != group.PlusRoot && o.Root != group.MinusRoot {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "root selection is required")
	}
	if err := kerrors.ValidateName(o.Name); err != nil {
		return err
	}
	return kerrors.ValidateSize(o.Size)
}

// AtlasOptions configures a lattice sweep.
type AtlasOptions struct {
	Radius  int
	Root    group.Root
	Workers int    // 0 means GOMAXPROCS
	Name    string // pack name, default "Kleinian"
	Seed    uint64
	Refresh bool
}

// WithDefaults fills in the pack name.
func (o AtlasOptions) WithDefaults() AtlasOptions {
	if o.Name == "" {
		o.Name = DefaultPackName
	}
	return o
}

// Result is the output of one job.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID uuid.UUID

	// Name is the pack name.
	Name string

	// Pack is the encoded .flame file.
	Pack []byte

	// Stats describes the work done. On a cache hit Duration is the lookup
	// time and Flames is recovered from the cached entry.
	Stats Stats

	// CacheHit reports whether Pack came from the cache.
	CacheHit bool
}

// Stats contains job statistics.
type Stats struct {
	Flames   int           // flames in the pack
	Invalid  int           // trace pairs or frames the recipe rejected
	Duration time.Duration // wall time of the job
}

func finite(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsNaN(imag(z)) &&
		!math.IsInf(real(z), 0) && !math.IsInf(imag(z), 0)
}
