// Package observability lets a binary attach metrics or tracing to pipeline
// jobs, lattice sweeps, cache lookups and API requests.
//
// Every event category is an interface with a no-op default. main registers
// real implementations once at startup; the math packages never see them.
//
//	observability.SetSweepHooks(&sweepMetrics{})
//	observability.SetCacheHooks(&cacheMetrics{})
//
// Emitters fetch the current hooks at the call site:
//
//	observability.Sweep().OnSweepStart(ctx, total)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives one start and one completion event per job.
// kind is the job name: grandma, atlas or animate.
type PipelineHooks interface {
	OnJobStart(ctx context.Context, kind string)
	OnJobComplete(ctx context.Context, kind string, flames, invalid int, duration time.Duration, err error)
}

// SweepHooks receives events from lattice sweeps. OnSweepItem is called
// from worker goroutines, so implementations must be safe for concurrent
// use. err is nil for pairs that produced a group.
type SweepHooks interface {
	OnSweepStart(ctx context.Context, total int)
	OnSweepItem(ctx context.Context, index int, traceA, traceB complex128, err error)
	OnSweepComplete(ctx context.Context, valid, invalid int, duration time.Duration)
}

// CacheHooks receives pipeline cache events, labelled with the job kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives API server events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnJobStart(context.Context, string)                                     {}
func (NoopPipelineHooks) OnJobComplete(context.Context, string, int, int, time.Duration, error) {}

type NoopSweepHooks struct{}

func (NoopSweepHooks) OnSweepStart(context.Context, int)                               {}
func (NoopSweepHooks) OnSweepItem(context.Context, int, complex128, complex128, error) {}
func (NoopSweepHooks) OnSweepComplete(context.Context, int, int, time.Duration)        {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook value and its no-op fallback.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set ignores nil so a missing implementation never replaces the fallback.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	sweepSlot    = newSlot[SweepHooks](NoopSweepHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers h for pipeline job events.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetSweepHooks registers h for lattice sweep events.
func SetSweepHooks(h SweepHooks) { sweepSlot.set(h) }

// SetCacheHooks registers h for cache events.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks registers h for API server events.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Sweep() SweepHooks       { return sweepSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores every category to its no-op default.
func Reset() {
	pipelineSlot.reset()
	sweepSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
