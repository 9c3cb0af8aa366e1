package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/kleinian/pkg/atlas"
	"github.com/matzehuels/kleinian/pkg/cache"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Cache.Backend != backendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, backendFile)
	}
	if cfg.Cache.TTL != cache.DefaultTTL {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL, cache.DefaultTTL)
	}
	if cfg.Render.Size != flame.DefaultSize {
		t.Errorf("Render.Size = %q, want %q", cfg.Render.Size, flame.DefaultSize)
	}
	if cfg.Atlas.Radius != atlas.DefaultRadius {
		t.Errorf("Atlas.Radius = %d, want %d", cfg.Atlas.Radius, atlas.DefaultRadius)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "2h"
key_prefix = "staging:"

[render]
size = "800 600"
zoom = 0.5
seed = 42

[atlas]
radius = 2
workers = 3
`)
	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.KeyPrefix != "staging:" {
		t.Errorf("Cache.KeyPrefix = %q, want %q", cfg.Cache.KeyPrefix, "staging:")
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h", cfg.Cache.TTL)
	}
	if cfg.Render != (RenderConfig{Size: "800 600", Zoom: 0.5, Seed: 42}) {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Atlas != (AtlasConfig{Radius: 2, Workers: 3}) {
		t.Errorf("Atlas = %+v", cfg.Atlas)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, defaultAddr)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("loadConfig(implicit missing) = %v, want nil", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("missing implicit config should give defaults, got %+v", cfg)
	}

	if _, err := loadConfig(missing, true); !kerrors.Is(err, kerrors.ErrCodeFileNotFound) {
		t.Errorf("loadConfig(explicit missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		code     kerrors.Code
	}{
		{"syntax", "[cache\nbackend = ", kerrors.ErrCodeInvalidFormat},
		{"unknown key", "[render]\ncolour = \"red\"\n", kerrors.ErrCodeInvalidFormat},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", kerrors.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", kerrors.ErrCodeInvalidInput},
		{"bad size", "[render]\nsize = \"big\"\n", kerrors.ErrCodeInvalidFormat},
		{"radius too large", "[atlas]\nradius = 99\n", kerrors.ErrCodeInvalidInput},
		{"bad key prefix", "[cache]\nkey_prefix = \"a<b\"\n", kerrors.ErrCodeInvalidInput},
		{"negative workers", "[atlas]\nworkers = -1\n", kerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.contents), true)
			if !kerrors.Is(err, tt.code) {
				t.Errorf("loadConfig error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", backendFile, false, "*cache.FileCache"},
		{"none", backendNone, false, "cache.NullCache"},
		{"no-cache flag", backendFile, true, "cache.NullCache"},
		{"redis", backendRedis, false, "*cache.RedisCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			c.config.Cache.Backend = tt.backend
			c.config.Cache.RedisURL = "redis://localhost:6379/0"
			c.noCache = tt.noCache

			store, err := c.newCache()
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer store.Close()
			if got := typeName(store); got != tt.want {
				t.Errorf("newCache() = %s, want %s", got, tt.want)
			}
		})
	}

	c := New(os.Stderr, LogInfo)
	c.config.Cache.Backend = "memcached"
	if _, err := c.newCache(); !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("newCache(unknown) = %v, want INVALID_INPUT", err)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *cache.FileCache:
		return "*cache.FileCache"
	case cache.NullCache:
		return "cache.NullCache"
	case *cache.RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}

func TestNewRunnerKeyPrefix(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	opts := cache.GrandmaKeyOpts{TraceA: "2", TraceB: "2", Root: "minus", Seed: 1}

	c := New(os.Stderr, LogInfo)
	r, err := c.newRunner()
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	plain := r.Keyer.GrandmaKey(opts)
	r.Close()

	c.config.Cache.KeyPrefix = "staging:"
	r, err = c.newRunner()
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer r.Close()
	if _, ok := r.Keyer.(*cache.ScopedKeyer); !ok {
		t.Fatalf("Keyer = %T, want *cache.ScopedKeyer", r.Keyer)
	}
	if got := r.Keyer.GrandmaKey(opts); got != "staging:"+plain {
		t.Errorf("GrandmaKey = %q, want %q", got, "staging:"+plain)
	}
}
