package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	stagingKeyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GrandmaKey generates a prefixed key for a single-flame job.
func (k *ScopedKeyer) GrandmaKey(opts GrandmaKeyOpts) string {
	return k.prefix + k.inner.GrandmaKey(opts)
}

// AtlasKey generates a prefixed key for a lattice sweep.
func (k *ScopedKeyer) AtlasKey(opts AtlasKeyOpts) string {
	return k.prefix + k.inner.AtlasKey(opts)
}

// AnimationKey generates a prefixed key for an animation.
func (k *ScopedKeyer) AnimationKey(descHash string, opts AnimationKeyOpts) string {
	return k.prefix + k.inner.AnimationKey(descHash, opts)
}
