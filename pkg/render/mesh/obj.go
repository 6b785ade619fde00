package mesh

import (
	"bytes"
	"fmt"

	"github.com/florelab/bloomforge/pkg/solid"
)

// EncodeOBJ serializes the mesh as Wavefront OBJ. Vertex references in
// face lines are 1-based per the format.
func EncodeOBJ(m *solid.Mesh) []byte {
	var buf bytes.Buffer
	buf.WriteString("# bloomforge mesh\n")
	fmt.Fprintf(&buf, "o flowerfield\n")

	for _, v := range m.Vertices {
		fmt.Fprintf(&buf, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(&buf, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return buf.Bytes()
}
