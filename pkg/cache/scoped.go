package cache

// ScopedKeyer wraps a Keyer with a prefix so several sites can share one
// Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "portfolio:dzikri:")
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

// ProjectsKey generates a prefixed catalog key.
func (k *ScopedKeyer) ProjectsKey(kind, location string) string {
	return k.prefix + k.inner.ProjectsKey(kind, location)
}

// PageKey generates a prefixed page key.
func (k *ScopedKeyer) PageKey(catalogHash string, opts PageKeyOpts) string {
	return k.prefix + k.inner.PageKey(catalogHash, opts)
}

// DetailKey generates a prefixed detail key.
func (k *ScopedKeyer) DetailKey(catalogHash, id string, image int) string {
	return k.prefix + k.inner.DetailKey(catalogHash, id, image)
}
