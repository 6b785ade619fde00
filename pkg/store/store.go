// Package store persists designs.
//
// Two backends are provided: an in-memory store for tests and
// single-process CLI usage, and a MongoDB store for server deployments.
// Both implement the same Store contract; the server picks one at
// startup from its configuration.
package store

import (
	"context"

	"github.com/florelab/bloomforge/pkg/design"
)

// Store is the design persistence contract.
type Store interface {
	// Save inserts or replaces a design by its ID.
	Save(ctx context.Context, d *design.Design) error

	// Get retrieves a design by ID. A missing design yields an error
	// with code ErrCodeDesignNotFound.
	Get(ctx context.Context, id string) (*design.Design, error)

	// List returns summaries of stored designs, newest first, up to
	// limit entries. A non-positive limit applies the backend default.
	List(ctx context.Context, limit int) ([]design.Stats, error)

	// Delete removes a design. Deleting a missing design yields
	// ErrCodeDesignNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 50
