package field

import "github.com/florelab/bloomforge/pkg/geom"

// Partition answers "which seed owns this point?" by nearest-seed lookup
// over the current seed positions. This point-sampling test is the
// system's approximation of a Voronoi cell: relaxation and growth both
// use it, so the territories they see are consistent even though no
// exact cell boundary is ever computed.
//
// Lookup is a linear scan, O(seedCount) per call. Seed counts are small
// (tens) and both heavy call sites are bounded by construction, so no
// spatial index is warranted.
type Partition struct {
	seeds []*Seed
}

// NewPartition creates a partition over the given seeds. The partition
// reads seed positions live; relaxation moves seeds between rounds and
// the next lookup sees the updated positions.
func NewPartition(seeds []*Seed) Partition {
	return Partition{seeds: seeds}
}

// NearestSeed returns the ID of the seed closest to p by squared
// Euclidean distance, or NoSeed if the partition is empty. Ties resolve
// to the lowest ID, which keeps lookups deterministic.
func (pt Partition) NearestSeed(p geom.Vec2) int {
	best := NoSeed
	bestDist := 0.0
	for _, s := range pt.seeds {
		d := s.Pos.DistSq(p)
		if best == NoSeed || d < bestDist {
			best = s.ID
			bestDist = d
		}
	}
	return best
}
