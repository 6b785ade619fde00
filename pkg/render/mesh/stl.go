// Package mesh exports solidified meshes to printer and modeling
// formats: binary STL for slicers, Wavefront OBJ for inspection.
package mesh

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/florelab/bloomforge/pkg/solid"
)

// stlHeader fills the 80-byte comment field of a binary STL. Slicers
// ignore it, but an empty header confuses some viewers.
var stlHeader = func() [80]byte {
	var h [80]byte
	copy(h[:], "bloomforge binary stl")
	return h
}()

// EncodeSTL serializes the mesh as binary STL: 80-byte header, triangle
// count, then 50 bytes per triangle (normal, three vertices, attribute
// word), all little-endian float32.
func EncodeSTL(m *solid.Mesh) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 84+50*m.TriangleCount()))
	buf.Write(stlHeader[:])

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(m.TriangleCount()))
	buf.Write(count[:])

	var tri [50]byte
	for i, f := range m.Faces {
		n := m.Normal(i)
		putVec(tri[0:], n.X, n.Y, n.Z)
		for j := range 3 {
			v := m.Vertices[f[j]]
			putVec(tri[12+12*j:], v.X, v.Y, v.Z)
		}
		tri[48], tri[49] = 0, 0
		buf.Write(tri[:])
	}
	return buf.Bytes()
}

func putVec(b []byte, x, y, z float64) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(x)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(z)))
}
