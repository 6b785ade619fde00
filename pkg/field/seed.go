package field

import "github.com/florelab/bloomforge/pkg/geom"

// NoSeed is the sentinel returned by nearest-seed lookup when the seed
// set is empty. Callers guard against it; normal generation never
// produces an empty set.
const NoSeed = -1

// PetalRecord is one accepted circle along a growing petal: its position,
// its diameter and the radius at which it was placed. Records are owned
// by the seed that grew them and later drive per-circle solidification.
type PetalRecord struct {
	Pos      geom.Vec2 `json:"pos" bson:"pos"`
	Diameter float64   `json:"diameter" bson:"diameter"`
	Radius   float64   `json:"radius" bson:"radius"`
}

// PetalEnd is the terminal circle of one fully grown petal. Ends
// accumulate globally during growth and are the collision obstacles for
// petals of other flowers.
type PetalEnd struct {
	Pos      geom.Vec2 `json:"pos" bson:"pos"`
	Diameter float64   `json:"diameter" bson:"diameter"`
	OwnerID  int       `json:"owner_id" bson:"owner_id"`
}

// Seed is one flower: its origin, fixed base rotation and per-flower
// growth state. Seeds are created once per generation and mutated only
// by relaxation (position) and growth (slots, records).
type Seed struct {
	ID        int       `json:"id" bson:"id"`
	Pos       geom.Vec2 `json:"pos" bson:"pos"`
	BaseAngle float64   `json:"base_angle" bson:"base_angle"`

	// slots holds the remaining petal slot indices in shuffled draw
	// order; it strictly shrinks to empty over one generation.
	slots []int

	Records []PetalRecord `json:"records" bson:"records"`
}

// SlotsLeft returns the number of petal slots not yet grown.
func (s *Seed) SlotsLeft() int { return len(s.slots) }

// popSlot removes and returns the next slot in the seed's shuffled order.
func (s *Seed) popSlot() int {
	last := len(s.slots) - 1
	slot := s.slots[last]
	s.slots = s.slots[:last]
	return slot
}

// Field is the complete result of one generation: the seeds (with their
// petal records) and the flat list of petal ends in growth order.
type Field struct {
	Config    Config     `json:"config" bson:"config"`
	Seeds     []*Seed    `json:"seeds" bson:"seeds"`
	PetalEnds []PetalEnd `json:"petal_ends" bson:"petal_ends"`
}

// EndsOf returns the petal ends owned by the given seed.
func (f *Field) EndsOf(id int) []PetalEnd {
	var out []PetalEnd
	for _, p := range f.PetalEnds {
		if p.OwnerID == id {
			out = append(out, p)
		}
	}
	return out
}

// CenterRadius derives the display radius of a flower's center from the
// mean diameter of its own finished petals, as the source sketches do.
// The coupling to growth order is deliberate; callers that want a stable
// center size pass an explicit radius to the solidifier instead.
// A flower whose petals all collapsed to stubs gets a zero radius.
func (f *Field) CenterRadius(id int) float64 {
	ends := f.EndsOf(id)
	if len(ends) == 0 || f.Config.PetalCount == 0 {
		return 0
	}
	var sum float64
	for _, p := range ends {
		sum += p.Diameter
	}
	mean := sum / float64(len(ends))
	return geom.Sanitize(mean/float64(f.Config.PetalCount), 0)
}
