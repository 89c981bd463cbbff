package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can share
// one Redis database without clobbering each other's mappings.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "shop:")
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

// MappingKey generates a prefixed dependency mapping key.
func (k *ScopedKeyer) MappingKey(dir, manifestHash string) string {
	return k.prefix + k.inner.MappingKey(dir, manifestHash)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
