package store

import (
	"context"
	"testing"
	"time"

	"github.com/florelab/bloomforge/pkg/design"
	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/field"
	"github.com/florelab/bloomforge/pkg/geom"
)

func testDesign(t *testing.T) *design.Design {
	t.Helper()
	cfg := field.DefaultConfig(geom.Rect{Width: 20, Height: 25, Margin: 0.1})
	cfg.SeedCount = 3
	cfg.PetalCount = 4
	f, err := field.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return design.New(f)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	d := testDesign(t)
	if err := s.Save(ctx, d); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != d.ID {
		t.Errorf("id = %q, want %q", got.ID, d.ID)
	}
	if len(got.Field.PetalEnds) != len(d.Field.PetalEnds) {
		t.Error("field geometry lost in store")
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := testDesign(t)
	if err := s.Save(ctx, d); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's copy must not reach the stored design.
	d.Size = "mutated"
	d.Field.PetalEnds[0].Diameter = -99

	got, err := s.Get(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Size == "mutated" || got.Field.PetalEnds[0].Diameter == -99 {
		t.Error("stored design shares memory with the caller")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	missing := "00000000-0000-0000-0000-000000000000"
	if _, err := s.Get(ctx, missing); !errors.Is(err, errors.ErrCodeDesignNotFound) {
		t.Errorf("get missing = %v", err)
	}
	if err := s.Delete(ctx, missing); !errors.Is(err, errors.ErrCodeDesignNotFound) {
		t.Errorf("delete missing = %v", err)
	}
}

func TestMemoryStoreRejectsBadID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("path traversal id accepted: %v", err)
	}
	d := testDesign(t)
	d.ID = ""
	if err := s.Save(ctx, d); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("empty id accepted: %v", err)
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	old := testDesign(t)
	old.CreatedAt = time.Now().Add(-time.Hour)
	mid := testDesign(t)
	mid.CreatedAt = time.Now().Add(-time.Minute)
	newest := testDesign(t)

	for _, d := range []*design.Design{old, newest, mid} {
		if err := s.Save(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 3 {
		t.Fatalf("listed %d designs, want 3", len(stats))
	}
	if stats[0].ID != newest.ID || stats[2].ID != old.ID {
		t.Error("list is not newest first")
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored, got %d entries", len(limited))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := testDesign(t)
	if err := s.Save(ctx, d); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, d.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, d.ID); !errors.Is(err, errors.ErrCodeDesignNotFound) {
		t.Error("design still present after delete")
	}
}
