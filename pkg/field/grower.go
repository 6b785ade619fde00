package field

import (
	"math"

	"github.com/florelab/bloomforge/pkg/geom"
)

// grower grows petals for one field generation. It reads territory
// ownership through the partition and the accumulating petal-end list,
// which makes growth greedy and order dependent.
type grower struct {
	cfg  Config
	part Partition
	ends *[]PetalEnd
}

// growPetal grows the petal in the given angular slot of s and returns
// its terminal circle. Every accepted circle along the way is appended
// to the seed's records. A petal whose very first candidate is rejected
// still terminates in a zero-size stub at the seed position, so every
// slot contributes exactly one end.
func (g *grower) growPetal(s *Seed, slot int) PetalEnd {
	theta := 2*math.Pi*float64(slot)/float64(g.cfg.PetalCount) + s.BaseAngle
	rMax := g.territoryRadius(s, theta)

	wedge := math.Sin(2 * math.Pi / float64(g.cfg.PetalCount))
	inset := math.Min(g.cfg.Canvas.Width, g.cfg.Canvas.Height) * g.cfg.Canvas.Margin * 0.5

	last := PetalRecord{Pos: s.Pos}
	accepted := 0
	for r := 0.0; r < rMax; r += g.cfg.GrowthStep {
		pos := geom.Polar(s.Pos, r, theta)
		d := r * wedge

		if !g.cfg.Canvas.ContainsInner(pos, inset) {
			break
		}
		if g.collides(pos, d, s.ID) {
			break
		}

		rec := PetalRecord{Pos: geom.SanitizeVec2(pos, s.Pos), Diameter: geom.Sanitize(d, 0), Radius: r}
		s.Records = append(s.Records, rec)
		last = rec
		accepted++
	}

	end := PetalEnd{Pos: last.Pos, Diameter: last.Diameter, OwnerID: s.ID}
	if accepted == 0 {
		// Zero-size stub: the slot is consumed but contributes no area.
		end = PetalEnd{Pos: s.Pos, OwnerID: s.ID}
	}
	*g.ends = append(*g.ends, end)
	return end
}

// territoryRadius marches a test point outward from s in direction theta
// and returns the last radius that stayed both inside the canvas and
// inside s's own territory. The march is capped at the distance from the
// seed to the nearest canvas edge, which bounds it without changing the
// result: past that cap the point has left the canvas anyway.
func (g *grower) territoryRadius(s *Seed, theta float64) float64 {
	edge := math.Min(
		math.Min(s.Pos.X, g.cfg.Canvas.Width-s.Pos.X),
		math.Min(s.Pos.Y, g.cfg.Canvas.Height-s.Pos.Y),
	)

	r := 0.0
	for r < edge {
		r += g.cfg.RayStep
		p := geom.Polar(s.Pos, r, theta)
		if !g.cfg.Canvas.Contains(p) {
			break
		}
		if g.part.NearestSeed(p) != s.ID {
			break
		}
	}
	return math.Max(0, r-g.cfg.RayStep)
}

// collides reports whether a candidate circle at pos with diameter d
// comes within the collision margin of a finished petal end belonging to
// a different flower.
func (g *grower) collides(pos geom.Vec2, d float64, owner int) bool {
	for _, p := range *g.ends {
		if p.OwnerID == owner {
			continue
		}
		if pos.Dist(p.Pos) < d/2+p.Diameter/2+g.cfg.CollisionMargin {
			return true
		}
	}
	return false
}
