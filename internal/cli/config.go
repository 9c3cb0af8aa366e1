package cli

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kleinian/pkg/atlas"
	"github.com/matzehuels/kleinian/pkg/cache"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/flame"
	"github.com/matzehuels/kleinian/pkg/pipeline"
)

// Cache backends accepted in [cache] backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// defaultAddr is where serve listens unless configured otherwise.
const defaultAddr = ":8080"

// Config is the contents of config.toml.
//
//	[cache]
//	backend = "file"          # file, redis or none
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
//	key_prefix = "staging:"   # namespace for a shared redis
//
//	[render]
//	size = "1500 2100"
//	zoom = 1.0
//	seed = 42                 # 0 draws a random palette
//
//	[atlas]
//	radius = 4
//	workers = 0               # 0 means one per CPU
//
//	[server]
//	addr = ":8080"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
	Atlas  AtlasConfig  `toml:"atlas"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	RedisURL  string        `toml:"redis_url"`
	TTL       time.Duration `toml:"ttl"`
	Dir       string        `toml:"dir"`
	KeyPrefix string        `toml:"key_prefix"`
}

// RenderConfig holds flame defaults.
type RenderConfig struct {
	Size string  `toml:"size"`
	Zoom float64 `toml:"zoom"`
	Seed uint64  `toml:"seed"`
}

// AtlasConfig holds sweep defaults.
type AtlasConfig struct {
	Radius  int `toml:"radius"`
	Workers int `toml:"workers"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: backendFile,
			TTL:     cache.DefaultTTL,
		},
		Render: RenderConfig{
			Size: flame.DefaultSize,
			Zoom: pipeline.DefaultZoom,
		},
		Atlas: AtlasConfig{
			Radius: atlas.DefaultRadius,
		},
		Server: ServerConfig{
			Addr: defaultAddr,
		},
	}
}

// loadConfig decodes path over the defaults. A missing file is an error
// only when the user named it explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return defaultConfig(), nil
		}
		return cfg, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, kerrors.New(kerrors.ErrCodeInvalidFormat, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks the backend, size and sweep settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if err := kerrors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	default:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "cache backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.KeyPrefix != "" {
		if err := kerrors.ValidateName(c.Cache.KeyPrefix); err != nil {
			return err
		}
	}
	if c.Cache.TTL < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if err := kerrors.ValidateSize(c.Render.Size); err != nil {
		return err
	}
	if c.Atlas.Radius < 0 || c.Atlas.Radius > atlas.MaxRadius {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "atlas radius must be in [0, %d]", atlas.MaxRadius)
	}
	if c.Atlas.Workers < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "atlas workers must not be negative")
	}
	return nil
}
