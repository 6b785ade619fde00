// Package cache provides pluggable byte caches and cache-key derivation
// for the generation pipeline.
//
// Three stages are cached independently: generated fields, solidified
// meshes, and rendered artifacts. Keys are derived by hashing the full
// option set of a stage, so any parameter change misses cleanly.
//
// Backends:
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Per-stage TTLs. Fields are cheap to regenerate; meshes and artifacts
// keep longer since solidification dominates pipeline time.
const (
	TTLField    = 24 * time.Hour
	TTLMesh     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the minimal byte-cache contract used by the pipeline.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// FieldKey derives a key for a generated field from its full
	// generation parameters.
	FieldKey(params any) string

	// MeshKey derives a key for a solidified mesh from the hash of its
	// source field and the solidification parameters.
	MeshKey(fieldHash string, params any) string

	// ArtifactKey derives a key for a rendered artifact from the hash
	// of its source and the output format.
	ArtifactKey(sourceHash, format string) string
}

// DefaultKeyer hashes option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// FieldKey generates a key for field caching.
func (k *DefaultKeyer) FieldKey(params any) string {
	return hashKey("field", params)
}

// MeshKey generates a key for mesh caching.
func (k *DefaultKeyer) MeshKey(fieldHash string, params any) string {
	return hashKey("mesh", fieldHash, params)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(sourceHash, format string) string {
	return hashKey("artifact", sourceHash, format)
}
