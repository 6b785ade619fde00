// Package design defines the canonical serialization format for
// generated designs.
//
// A Design bundles a grown flower field with its optional solidified
// mesh and the parameters that produced both. The format is used for
// API responses, storage, and caching, and is tagged for both JSON and
// BSON so the same struct round-trips through the HTTP layer and the
// MongoDB store.
package design

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/florelab/bloomforge/pkg/field"
	"github.com/florelab/bloomforge/pkg/solid"
)

// Design is one generated artifact: the 2D field, the optional 3D mesh,
// and the parameters needed to regenerate both.
type Design struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Size and Material name the presets used, when any.
	Size     string `json:"size,omitempty" bson:"size,omitempty"`
	Material string `json:"material,omitempty" bson:"material,omitempty"`

	Field *field.Field   `json:"field" bson:"field"`
	Solid *solid.Options `json:"solid,omitempty" bson:"solid,omitempty"`
	Mesh  *solid.Mesh    `json:"mesh,omitempty" bson:"mesh,omitempty"`
}

// Stats summarizes a design for listings and API responses that should
// not carry full geometry.
type Stats struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Seeds     int       `json:"seeds" bson:"seeds"`
	PetalEnds int       `json:"petal_ends" bson:"petal_ends"`
	Vertices  int       `json:"vertices,omitempty" bson:"vertices,omitempty"`
	Triangles int       `json:"triangles,omitempty" bson:"triangles,omitempty"`
}

// New wraps a freshly generated field in a Design with a new UUID.
func New(f *field.Field) *Design {
	return &Design{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Field:     f,
	}
}

// Stats derives the summary for this design.
func (d *Design) Stats() Stats {
	s := Stats{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		PetalEnds: len(d.Field.PetalEnds),
		Seeds:     len(d.Field.Seeds),
	}
	if d.Mesh != nil {
		s.Vertices = d.Mesh.VertexCount()
		s.Triangles = d.Mesh.TriangleCount()
	}
	return s
}

// Marshal serializes a design to JSON.
func Marshal(d *Design) ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal deserializes JSON bytes to a Design.
func Unmarshal(data []byte) (*Design, error) {
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
