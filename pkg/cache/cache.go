// Package cache stores rendered flame packs so that repeated runs with the
// same parameters skip the recipe evaluation.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the XDG cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (API server)
//   - [NullCache]: stores nothing (--no-cache)
//
// # Keys
//
// A [Keyer] turns job parameters into keys. [DefaultKeyer] hashes the
// parameters with SHA-256, so any change to traces, root, zoom, size or
// palette seed produces a new key. [ScopedKeyer] adds a prefix for callers
// that share a backend.
//
// Outputs are deterministic for a fixed seed, so entries only expire to
// bound disk and memory use.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// DefaultTTL is how long rendered packs are kept.
const DefaultTTL = 7 * 24 * time.Hour

// keyVersion is bumped when the flame output format changes.
const keyVersion = "v1"

// Keyer builds cache keys for pipeline jobs.
type Keyer interface {
	GrandmaKey(opts GrandmaKeyOpts) string
	AtlasKey(opts AtlasKeyOpts) string
	AnimationKey(descHash string, opts AnimationKeyOpts) string
}

// GrandmaKeyOpts identifies a single-flame job.
type GrandmaKeyOpts struct {
	TraceA string  `json:"ta"`
	TraceB string  `json:"tb"`
	Root   string  `json:"root"`
	Zoom   float64 `json:"zoom"`
	Size   string  `json:"size"`
	Seed   uint64  `json:"seed"`
}

// AtlasKeyOpts identifies a lattice sweep.
type AtlasKeyOpts struct {
	Radius int    `json:"radius"`
	Root   string `json:"root"`
	Seed   uint64 `json:"seed"`
}

// AnimationKeyOpts holds the animation settings that are not part of the
// description file.
type AnimationKeyOpts struct {
	Seed uint64 `json:"seed"`
}

// FormatComplex formats z exactly so it can be part of a key.
func FormatComplex(z complex128) string {
	return strconv.FormatComplex(z, 'g', -1, 128)
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GrandmaKey returns "grandma:<hash>".
func (DefaultKeyer) GrandmaKey(opts GrandmaKeyOpts) string {
	return hashKey("grandma", keyVersion, opts)
}

// AtlasKey returns "atlas:<hash>".
func (DefaultKeyer) AtlasKey(opts AtlasKeyOpts) string {
	return hashKey("atlas", keyVersion, opts)
}

// AnimationKey returns "animation:<hash>" for a description file hash.
func (DefaultKeyer) AnimationKey(descHash string, opts AnimationKeyOpts) string {
	return hashKey("animation", keyVersion, descHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
