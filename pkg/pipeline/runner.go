package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kleinian/pkg/animation"
	"github.com/matzehuels/kleinian/pkg/atlas"
	"github.com/matzehuels/kleinian/pkg/cache"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/observability"
)

// Runner executes jobs with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-job state, so multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Grandma evaluates Grandma's recipe once and returns a pack with a single
// flame. Invalid parameters are returned as an error carrying
// INVALID_PARAMETERS.
func (r *Runner) Grandma(ctx context.Context, opts GrandmaOptions) (*Result, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var key string
	if opts.Seed != 0 {
		key = r.Keyer.GrandmaKey(cache.GrandmaKeyOpts{
			TraceA: cache.FormatComplex(opts.TraceA),
			TraceB: cache.FormatComplex(opts.TraceB),
			Root:   opts.Root.String(),
			Zoom:   opts.Zoom,
			Size:   opts.Size,
			Seed:   opts.Seed,
		})
	}

	return r.run(ctx, JobGrandma, key, opts.Refresh, func(ctx context.Context) (*entry, error) {
		xforms, err := group.GrandmasRecipe(opts.TraceA, opts.TraceB, opts.Root)
		if err != nil {
			return nil, err
		}
		pack := flame.Pack{
			Name: opts.Name,
			Flames: []flame.Flame{{
				Name:    opts.Name,
				Xforms:  xforms,
				Palette: flame.RandomPalette(flame.NewRand(opts.Seed)),
				Zoom:    opts.Zoom,
				Size:    opts.Size,
			}},
		}
		return encodePack(&pack, 0)
	})
}

// Atlas sweeps the recipe over the trace lattice and packs every valid
// pair. Invalid pairs are counted in Stats.Invalid, not returned as errors.
func (r *Runner) Atlas(ctx context.Context, opts AtlasOptions) (*Result, error) {
	opts = opts.WithDefaults()
	sweep := atlas.Options{
		Radius:  opts.Radius,
		Root:    opts.Root,
		Workers: opts.Workers,
		Logger:  r.Logger.Debugf,
	}
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	if err := kerrors.ValidateName(opts.Name); err != nil {
		return nil, err
	}

	var key string
	if opts.Seed != 0 {
		key = r.Keyer.AtlasKey(cache.AtlasKeyOpts{
			Radius: opts.Radius,
			Root:   opts.Root.String(),
			Seed:   opts.Seed,
		})
	}

	return r.run(ctx, JobAtlas, key, opts.Refresh, func(ctx context.Context) (*entry, error) {
		res, err := atlas.Sweep(ctx, sweep)
		if err != nil {
			return nil, err
		}
		r.Logger.Info("swept lattice",
			"radius", res.Radius,
			"pairs", len(res.Items),
			"valid", res.Valid,
			"duration", res.Duration)
		if res.Invalid > 0 {
			r.Logger.Warn("recipe rejected trace pairs", "invalid", res.Invalid)
		}
		pack := res.Pack(opts.Name, flame.NewRand(opts.Seed))
		return encodePack(&pack, res.Invalid)
	})
}

// Animate renders an animation description. descHash identifies the
// description contents for caching; pass "" to skip the cache. Frames the
// recipe rejects are counted in Stats.Invalid.
func (r *Runner) Animate(ctx context.Context, desc *animation.Description, descHash string, seed uint64) (*Result, error) {
	if desc == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "animation description is required")
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	var key string
	if seed != 0 && descHash != "" {
		key = r.Keyer.AnimationKey(descHash, cache.AnimationKeyOpts{Seed: seed})
	}

	return r.run(ctx, JobAnimate, key, false, func(ctx context.Context) (*entry, error) {
		anim, err := desc.Grandma(flame.NewRand(seed))
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		flames, skipped, err := anim.Flames()
		if err != nil {
			return nil, err
		}
		for _, s := range skipped {
			r.Logger.Debug("skipped frame",
				"frame", s.Frame.Index,
				"ta", s.Frame.TraceA,
				"tb", s.Frame.TraceB,
				"err", s.Err)
		}
		if len(skipped) > 0 {
			r.Logger.Warn("recipe rejected frames", "invalid", len(skipped), "frames", anim.Frames)
		}
		pack := flame.Pack{Name: desc.PackName, Flames: flames}
		return encodePack(&pack, len(skipped))
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// entry is a finished job as stored in the cache.
type entry struct {
	Name    string `json:"name"`
	Pack    []byte `json:"pack"`
	Flames  int    `json:"flames"`
	Invalid int    `json:"invalid"`
}

func encodePack(p *flame.Pack, invalid int) (*entry, error) {
	data, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	return &entry{Name: p.Name, Pack: data, Flames: len(p.Flames), Invalid: invalid}, nil
}

// run wraps build with cache lookup, cache store, hooks and logging. An
// empty key disables the cache for this job.
func (r *Runner) run(ctx context.Context, kind, key string, refresh bool, build func(context.Context) (*entry, error)) (*Result, error) {
	start := time.Now()
	runID := uuid.New()
	logger := r.Logger.With("job", kind, "run", runID.String()[:8])

	hooks := observability.Pipeline()
	hooks.OnJobStart(ctx, kind)

	if key != "" && !refresh {
		if e, ok := r.lookup(ctx, kind, key); ok {
			res := e.result(runID, time.Since(start), true)
			logger.Debug("cache hit", "key", key)
			hooks.OnJobComplete(ctx, kind, res.Stats.Flames, res.Stats.Invalid, res.Stats.Duration, nil)
			return res, nil
		}
	}

	e, err := build(ctx)
	if err != nil {
		hooks.OnJobComplete(ctx, kind, 0, 0, time.Since(start), err)
		return nil, err
	}

	if key != "" {
		r.store(ctx, logger, kind, key, e)
	}

	res := e.result(runID, time.Since(start), false)
	logger.Info("built pack",
		"name", res.Name,
		"flames", res.Stats.Flames,
		"bytes", len(res.Pack),
		"duration", res.Stats.Duration)
	hooks.OnJobComplete(ctx, kind, res.Stats.Flames, res.Stats.Invalid, res.Stats.Duration, nil)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, kind, key string) (*entry, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Unreadable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return &e, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, kind, key string, e *entry) {
	data, err := json.Marshal(e)
	if err != nil {
		logger.Warn("encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (e *entry) result(runID uuid.UUID, d time.Duration, hit bool) *Result {
	return &Result{
		RunID:    runID,
		Name:     e.Name,
		Pack:     e.Pack,
		CacheHit: hit,
		Stats: Stats{
			Flames:   e.Flames,
			Invalid:  e.Invalid,
			Duration: d,
		},
	}
}
