package solid

import (
	"math"

	"github.com/florelab/bloomforge/pkg/geom"
)

// plate emits an axis-aligned box spanning [0,width]×[0,height] in the
// plane, from z=0 to z=thickness: 8 vertices, 12 triangles.
func plate(width, height, thickness float64) ([]geom.Vec3, [][3]int) {
	verts := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: width, Y: 0, Z: 0},
		{X: width, Y: height, Z: 0},
		{X: 0, Y: height, Z: 0},
		{X: 0, Y: 0, Z: thickness},
		{X: width, Y: 0, Z: thickness},
		{X: width, Y: height, Z: thickness},
		{X: 0, Y: height, Z: thickness},
	}
	faces := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // bottom
		{4, 7, 6}, {4, 6, 5}, // top
		{0, 4, 5}, {0, 5, 1}, // front
		{2, 6, 7}, {2, 7, 3}, // back
		{0, 3, 7}, {0, 7, 4}, // left
		{1, 5, 6}, {1, 6, 2}, // right
	}
	return verts, faces
}

// cylinder emits a closed vertical cylinder at center with the given
// radius between zBottom and zTop. Vertices interleave bottom/top rim
// pairs, followed by the two cap centers.
func cylinder(center geom.Vec2, radius, zBottom, zTop float64, segments int) ([]geom.Vec3, [][3]int) {
	verts := make([]geom.Vec3, 0, 2*segments+2)
	for i := range segments {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x := center.X + radius*math.Cos(angle)
		y := center.Y + radius*math.Sin(angle)
		verts = append(verts,
			geom.Vec3{X: x, Y: y, Z: zBottom},
			geom.Vec3{X: x, Y: y, Z: zTop},
		)
	}
	bottomCenter := len(verts)
	topCenter := bottomCenter + 1
	verts = append(verts,
		geom.Vec3{X: center.X, Y: center.Y, Z: zBottom},
		geom.Vec3{X: center.X, Y: center.Y, Z: zTop},
	)

	faces := make([][3]int, 0, 4*segments)
	for i := range segments {
		next := (i + 1) % segments
		faces = append(faces,
			[3]int{i * 2, next * 2, i*2 + 1},
			[3]int{next * 2, next*2 + 1, i*2 + 1},
			[3]int{bottomCenter, next * 2, i * 2},
			[3]int{topCenter, i*2 + 1, next*2 + 1},
		)
	}
	return verts, faces
}

// beam emits a rectangular prism whose long axis runs from a point on
// the center cylinder's circumference toward the petal to a point on the
// petal cylinder's circumference toward the center. Width is 0.6× the
// smaller of the two radii, height 0.8× the given height, both resting
// on top of the plate.
//
// A zero separation between center and petal yields no geometry at all:
// a degenerate beam is skipped, not emitted.
func beam(center geom.Vec2, centerRadius float64, petal geom.Vec2, petalRadius float64, zBottom, height float64) ([]geom.Vec3, [][3]int) {
	delta := petal.Sub(center)
	if delta.X == 0 && delta.Y == 0 {
		return nil, nil
	}
	dir := delta.Norm()

	from := center.Add(dir.Scale(centerRadius))
	to := petal.Sub(dir.Scale(petalRadius))

	width := 0.6 * math.Min(centerRadius, petalRadius)
	perp := dir.Perp().Scale(width / 2)

	zTop := zBottom + 0.8*height

	corner := func(p geom.Vec2, z float64) geom.Vec3 {
		return geom.Vec3{X: p.X, Y: p.Y, Z: z}
	}
	verts := []geom.Vec3{
		corner(from.Add(perp), zBottom),
		corner(from.Sub(perp), zBottom),
		corner(to.Sub(perp), zBottom),
		corner(to.Add(perp), zBottom),
		corner(from.Add(perp), zTop),
		corner(from.Sub(perp), zTop),
		corner(to.Sub(perp), zTop),
		corner(to.Add(perp), zTop),
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // near side
		{2, 3, 7}, {2, 7, 6}, // far side
		{1, 2, 6}, {1, 6, 5}, // long side
		{3, 0, 4}, {3, 4, 7}, // long side
	}
	return verts, faces
}
