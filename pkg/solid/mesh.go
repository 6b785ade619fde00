// Package solid converts a finished 2D flower field into a triangulated,
// printable mesh: a base plate, a cylinder per flower center, a cylinder
// per recorded petal circle, and a thin beam stitching every petal to its
// flower's center so the result is one connected solid.
//
// Geometry emitters (plate, cylinder, beam) return component-local
// vertex and face lists; [Mesh.Append] is the single place where indices
// are offset into the global buffers. Model units are millimeters.
package solid

import "github.com/florelab/bloomforge/pkg/geom"

// Mesh is a flat triangle mesh: a vertex buffer and faces indexing it.
type Mesh struct {
	Vertices []geom.Vec3 `json:"vertices" bson:"vertices"`
	Faces    [][3]int    `json:"faces" bson:"faces"`
}

// Append merges a component-local vertex/face pair into the mesh,
// offsetting the face indices past the existing vertices. Incoming
// vertices are scrubbed: a non-finite coordinate is replaced by the
// last good vertex's coordinate, so corrupted geometry can never reach
// an exporter.
func (m *Mesh) Append(verts []geom.Vec3, faces [][3]int) {
	offset := len(m.Vertices)

	lastGood := geom.Vec3{}
	if offset > 0 {
		lastGood = m.Vertices[offset-1]
	}
	for _, v := range verts {
		v = geom.SanitizeVec3(v, lastGood)
		lastGood = v
		m.Vertices = append(m.Vertices, v)
	}

	for _, f := range faces {
		m.Faces = append(m.Faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
	}
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }

// Normal computes the unit normal of face i. Degenerate triangles get a
// zero normal rather than NaN components.
func (m *Mesh) Normal(i int) geom.Vec3 {
	f := m.Faces[i]
	a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	return b.Sub(a).Cross(c.Sub(a)).Norm()
}
