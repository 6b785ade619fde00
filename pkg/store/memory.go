package store

import (
	"context"
	"sort"
	"sync"

	"github.com/florelab/bloomforge/pkg/design"
	"github.com/florelab/bloomforge/pkg/errors"
)

// MemoryStore keeps designs in process memory. It is safe for
// concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]*design.Design
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: make(map[string]*design.Design)}
}

// Save inserts or replaces a design. The design is deep-copied through
// its serialized form so later caller mutations cannot reach the store.
func (s *MemoryStore) Save(ctx context.Context, d *design.Design) error {
	if err := errors.ValidateDesignID(d.ID); err != nil {
		return err
	}
	data, err := design.Marshal(d)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "serialize design %s", d.ID)
	}
	copied, err := design.Unmarshal(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "copy design %s", d.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.designs[d.ID] = copied
	return nil
}

// Get retrieves a design by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*design.Design, error) {
	if err := errors.ValidateDesignID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	d, ok := s.designs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "design %s not found", id)
	}
	return d, nil
}

// List returns summaries of stored designs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]design.Stats, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	stats := make([]design.Stats, 0, len(s.designs))
	for _, d := range s.designs {
		stats = append(stats, d.Stats())
	}
	s.mu.RUnlock()

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].CreatedAt.After(stats[j].CreatedAt)
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// Delete removes a design.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateDesignID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[id]; !ok {
		return errors.New(errors.ErrCodeDesignNotFound, "design %s not found", id)
	}
	delete(s.designs, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }
