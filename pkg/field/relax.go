package field

import "github.com/florelab/bloomforge/pkg/geom"

// relax runs the configured number of discretized Lloyd relaxation
// rounds. Each round lays a gridN×gridN sample grid over the canvas,
// assigns every grid point to its nearest seed, and moves each seed to
// the centroid of its assigned points, clamped back inside the margin.
//
// A seed that captured no grid points keeps its position; that round is
// a no-op for it rather than a division by zero. Relaxation consumes no
// randomness, so it does not perturb the reproducible stream.
func relax(seeds []*Seed, canvas geom.Rect, iterations, gridN int) {
	part := NewPartition(seeds)

	for range iterations {
		sums := make([]geom.Vec2, len(seeds))
		counts := make([]int, len(seeds))

		stepX := canvas.Width / float64(gridN)
		stepY := canvas.Height / float64(gridN)
		for i := range gridN {
			x := (float64(i) + 0.5) * stepX
			for j := range gridN {
				y := (float64(j) + 0.5) * stepY
				id := part.NearestSeed(geom.Vec2{X: x, Y: y})
				if id == NoSeed {
					continue
				}
				sums[id] = sums[id].Add(geom.Vec2{X: x, Y: y})
				counts[id]++
			}
		}

		for i, s := range seeds {
			if counts[i] == 0 {
				continue
			}
			centroid := sums[i].Scale(1 / float64(counts[i]))
			s.Pos = canvas.ClampInner(geom.SanitizeVec2(centroid, s.Pos))
		}
	}
}
