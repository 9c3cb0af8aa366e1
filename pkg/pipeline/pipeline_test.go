package pipeline

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kleinian/pkg/animation"
	"github.com/matzehuels/kleinian/pkg/cache"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/observability"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("Cache = %T, want NullCache", r.Cache)
	}
	if _, ok := r.Keyer.(cache.DefaultKeyer); !ok {
		t.Errorf("Keyer = %T, want DefaultKeyer", r.Keyer)
	}
	if r.Logger == nil {
		t.Error("Logger should default to log.Default()")
	}
	if r.TTL != cache.DefaultTTL {
		t.Errorf("TTL = %v, want %v", r.TTL, cache.DefaultTTL)
	}
}

func TestGrandmaOptionsDefaults(t *testing.T) {
	o := GrandmaOptions{}.WithDefaults()
	if o.Name != DefaultName {
		t.Errorf("Name = %q, want %q", o.Name, DefaultName)
	}
	if o.Zoom != DefaultZoom {
		t.Errorf("Zoom = %v, want %v", o.Zoom, DefaultZoom)
	}
	if o.Size != flame.DefaultSize {
		t.Errorf("Size = %q, want %q", o.Size, flame.DefaultSize)
	}

	o = GrandmaOptions{Name: "x", Zoom: 0.25, Size: "10 10"}.WithDefaults()
	if o.Name != "x" || o.Zoom != 0.25 || o.Size != "10 10" {
		t.Errorf("WithDefaults overwrote explicit values: %+v", o)
	}
}

func TestGrandmaOptionsValidate(t *testing.T) {
	valid := GrandmaOptions{TraceA: 2, TraceB: 2, Root: group.MinusRoot}.WithDefaults()

	tests := []struct {
		name   string
		mutate func(o *GrandmaOptions)
		code   kerrors.Code
	}{
		{"valid", func(*GrandmaOptions) {}, ""},
		{"nan trace", func(o *GrandmaOptions) { o.TraceA = complex(math.NaN(), 0) }, kerrors.ErrCodeInvalidInput},
		{"inf trace", func(o *GrandmaOptions) { o.TraceB = complex(0, math.Inf(1)) }, kerrors.ErrCodeInvalidInput},
		{"missing root", func(o *GrandmaOptions) { o.Root = 0 }, kerrors.ErrCodeInvalidInput},
		{"bad name", func(o *GrandmaOptions) { o.Name = "a<b" }, kerrors.ErrCodeInvalidInput},
		{"bad size", func(o *GrandmaOptions) { o.Size = "big" }, kerrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !kerrors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunnerGrandma(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := GrandmaOptions{TraceA: 2, TraceB: 2, Root: group.MinusRoot, Seed: 42}

	first, err := r.Grandma(ctx, opts)
	if err != nil {
		t.Fatalf("Grandma: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Flames != 1 || first.Stats.Invalid != 0 {
		t.Errorf("stats = %+v, want 1 flame, 0 invalid", first.Stats)
	}
	if first.Name != DefaultName {
		t.Errorf("Name = %q, want %q", first.Name, DefaultName)
	}
	if !bytes.Contains(first.Pack, []byte(`<flames name="Grandma">`)) {
		t.Errorf("pack missing flames element:\n%s", first.Pack)
	}
	if got := bytes.Count(first.Pack, []byte("<xform ")); got != 4 {
		t.Errorf("xforms = %d, want 4", got)
	}

	second, err := r.Grandma(ctx, opts)
	if err != nil {
		t.Fatalf("Grandma: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Pack, second.Pack) {
		t.Error("cached pack differs from the original")
	}
	if second.Stats.Flames != 1 {
		t.Errorf("cached Flames = %d, want 1", second.Stats.Flames)
	}
	if first.RunID == second.RunID {
		t.Error("each run should get its own RunID")
	}

	opts.Refresh = true
	third, err := r.Grandma(ctx, opts)
	if err != nil {
		t.Fatalf("Grandma: %v", err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerGrandmaRandomSeedSkipsCache(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := GrandmaOptions{TraceA: 2, TraceB: 2, Root: group.MinusRoot}

	for i := 0; i < 2; i++ {
		res, err := r.Grandma(ctx, opts)
		if err != nil {
			t.Fatalf("Grandma: %v", err)
		}
		if res.CacheHit {
			t.Errorf("run %d hit the cache with a random palette", i)
		}
	}
}

func TestRunnerGrandmaInvalidParameters(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Grandma(context.Background(), GrandmaOptions{TraceA: 0, TraceB: 0, Root: group.PlusRoot, Seed: 1})
	if !kerrors.Is(err, kerrors.ErrCodeInvalidParameters) {
		t.Errorf("Grandma(0, 0) error = %v, want INVALID_PARAMETERS", err)
	}
}

func TestRunnerAtlas(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := AtlasOptions{Radius: 1, Root: group.MinusRoot, Workers: 4, Seed: 7}

	res, err := r.Atlas(ctx, opts)
	if err != nil {
		t.Fatalf("Atlas: %v", err)
	}
	if res.Stats.Flames+res.Stats.Invalid != 81 {
		t.Errorf("flames + invalid = %d, want 81", res.Stats.Flames+res.Stats.Invalid)
	}
	if res.Stats.Invalid == 0 {
		t.Error("radius 1 with the minus root includes (0, 0), want invalid pairs")
	}
	if got := bytes.Count(res.Pack, []byte("<flame ")); got != res.Stats.Flames {
		t.Errorf("flame elements = %d, want %d", got, res.Stats.Flames)
	}
	if res.Name != DefaultPackName {
		t.Errorf("Name = %q, want %q", res.Name, DefaultPackName)
	}

	again, err := r.Atlas(ctx, opts)
	if err != nil {
		t.Fatalf("Atlas: %v", err)
	}
	if !again.CacheHit {
		t.Error("second sweep should hit the cache")
	}
	if again.Stats.Invalid != res.Stats.Invalid {
		t.Errorf("cached Invalid = %d, want %d", again.Stats.Invalid, res.Stats.Invalid)
	}
}

func TestRunnerAtlasValidation(t *testing.T) {
	r := newTestRunner(t)
	tests := []struct {
		name string
		opts AtlasOptions
	}{
		{"missing root", AtlasOptions{Radius: 1}},
		{"negative radius", AtlasOptions{Radius: -1, Root: group.PlusRoot}},
		{"bad name", AtlasOptions{Radius: 1, Root: group.PlusRoot, Name: "a&b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Atlas(context.Background(), tt.opts)
			if !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
				t.Errorf("Atlas error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func testDescription() *animation.Description {
	// The first half of the frames sit at (0, 0), where the recipe fails.
	half := []any{"chain", 0.0, 2.0}
	return &animation.Description{
		Animator: "grandma",
		PackName: "Halves",
		Fname:    "halves.flame",
		Params: map[string]any{
			"num_frames":    int64(4),
			"curve_trace_a": half,
			"curve_trace_b": half,
			"curve_zoom":    0.5,
			"root":          "minus",
		},
	}
}

func TestRunnerAnimate(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	desc := testDescription()

	res, err := r.Animate(ctx, desc, "deadbeef", 3)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if res.Stats.Flames != 2 || res.Stats.Invalid != 2 {
		t.Errorf("stats = %+v, want 2 flames, 2 invalid", res.Stats)
	}
	if res.Name != "Halves" {
		t.Errorf("Name = %q, want Halves", res.Name)
	}
	if !strings.Contains(string(res.Pack), "frame_0002_zoom_0.500") {
		t.Errorf("pack missing frame 2:\n%s", res.Pack)
	}

	again, err := r.Animate(ctx, desc, "deadbeef", 3)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !again.CacheHit {
		t.Error("second run should hit the cache")
	}

	// No description hash disables caching.
	uncached, err := r.Animate(ctx, desc, "", 3)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if uncached.CacheHit {
		t.Error("empty description hash should skip the cache")
	}
}

func TestRunnerAnimateErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Animate(ctx, nil, "", 1); !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("Animate(nil) error = %v, want INVALID_INPUT", err)
	}

	desc := testDescription()
	desc.Animator = "spiral"
	if _, err := r.Animate(ctx, desc, "", 1); !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("unknown animator error = %v, want INVALID_INPUT", err)
	}

	desc = testDescription()
	delete(desc.Params, "curve_zoom")
	if _, err := r.Animate(ctx, desc, "", 1); !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("missing curve error = %v, want INVALID_INPUT", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Animate(cctx, testDescription(), "", 1); err != context.Canceled {
		t.Errorf("cancelled Animate error = %v, want context.Canceled", err)
	}
}

type countingHooks struct {
	started, completed, failed atomic.Int32
	hits, misses, sets         atomic.Int32
}

func (h *countingHooks) OnJobStart(context.Context, string) { h.started.Add(1) }
func (h *countingHooks) OnJobComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	h.completed.Add(1)
	if err != nil {
		h.failed.Add(1)
	}
}
func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits.Add(1) }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses.Add(1) }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets.Add(1) }

func TestRunnerHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	r := newTestRunner(t)
	opts := GrandmaOptions{TraceA: 2, TraceB: 2, Root: group.MinusRoot, Seed: 9}

	for i := 0; i < 2; i++ {
		if _, err := r.Grandma(ctx, opts); err != nil {
			t.Fatalf("Grandma: %v", err)
		}
	}
	if _, err := r.Grandma(ctx, GrandmaOptions{Root: group.PlusRoot, Seed: 9}); err == nil {
		t.Fatal("Grandma(0, 0) should fail")
	}

	if got := hooks.started.Load(); got != 3 {
		t.Errorf("started = %d, want 3", got)
	}
	if got := hooks.completed.Load(); got != 3 {
		t.Errorf("completed = %d, want 3", got)
	}
	if got := hooks.failed.Load(); got != 1 {
		t.Errorf("failed = %d, want 1", got)
	}
	if got := hooks.hits.Load(); got != 1 {
		t.Errorf("cache hits = %d, want 1", got)
	}
	if got := hooks.misses.Load(); got != 2 {
		t.Errorf("cache misses = %d, want 2", got)
	}
	if got := hooks.sets.Load(); got != 1 {
		t.Errorf("cache sets = %d, want 1", got)
	}
}
