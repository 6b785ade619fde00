package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several deployments or users share one Redis instance and
// need separate cache namespaces.
//
// Example usage:
//
//	// Per-instance keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "studio-a:")
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

// FieldKey generates a prefixed key for field caching.
func (k *ScopedKeyer) FieldKey(params any) string {
	return k.prefix + k.inner.FieldKey(params)
}

// MeshKey generates a prefixed key for mesh caching.
func (k *ScopedKeyer) MeshKey(fieldHash string, params any) string {
	return k.prefix + k.inner.MeshKey(fieldHash, params)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sourceHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, format)
}
