package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "field:abc", []byte("payload"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "field:abc")
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want payload", data)
	}

	if err := c.Delete(ctx, "field:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "field:abc"); hit {
		t.Error("expected miss after Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheClearAndStats(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatal(err)
		}
	}
	entries, bytes, err := fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if entries != 3 || bytes == 0 {
		t.Errorf("Stats = %d entries / %d bytes, want 3 entries", entries, bytes)
	}

	if err := fc.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, _, err = fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if entries != 0 {
		t.Errorf("entries after Clear = %d, want 0", entries)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	type params struct{ Seeds, Petals int }

	// FieldKey should include parameters in the hash
	fk1 := k.FieldKey(params{Seeds: 18, Petals: 12})
	fk2 := k.FieldKey(params{Seeds: 20, Petals: 12})
	if fk1 == fk2 {
		t.Error("Different field params should produce different keys")
	}
	if fk1 != k.FieldKey(params{Seeds: 18, Petals: 12}) {
		t.Error("FieldKey should be deterministic")
	}

	// MeshKey depends on the source field hash
	mk1 := k.MeshKey("hash-a", params{})
	mk2 := k.MeshKey("hash-b", params{})
	if mk1 == mk2 {
		t.Error("Different field hashes should produce different mesh keys")
	}

	// ArtifactKey depends on the format
	ak1 := k.ArtifactKey("hash-a", "stl")
	ak2 := k.ArtifactKey("hash-a", "obj")
	if ak1 == ak2 {
		t.Error("Different formats should produce different artifact keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "studio-a:")

	key := scoped.ArtifactKey("h", "svg")
	if key == base.ArtifactKey("h", "svg") {
		t.Error("scoped key should differ from unscoped")
	}
	if key[:9] != "studio-a:" {
		t.Errorf("scoped key missing prefix: %s", key)
	}
}
