package render

import (
	"bytes"
	"fmt"

	"github.com/florelab/bloomforge/pkg/field"
)

// DXF layer names. Cutters treat CUT as through-cuts and ENGRAVE as
// surface marks.
const (
	LayerCut     = "CUT"
	LayerEngrave = "ENGRAVE"
)

// DXFOption configures DXF rendering via [RenderDXF].
type DXFOption func(*dxfRenderer)

type dxfRenderer struct {
	endsOnly     bool
	construction bool
}

// WithDXFEndsOnly emits only the terminal circle of each petal, the
// usual choice for cutting paths.
func WithDXFEndsOnly() DXFOption { return func(r *dxfRenderer) { r.endsOnly = true } }

// WithDXFConstruction adds seed-to-petal lines on the ENGRAVE layer.
func WithDXFConstruction() DXFOption { return func(r *dxfRenderer) { r.construction = true } }

// RenderDXF emits a minimal ASCII DXF with petal and center circles.
// Petal outlines land on the CUT layer, centers and construction lines
// on ENGRAVE.
func RenderDXF(f *field.Field, opts ...DXFOption) []byte {
	var r dxfRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("0\nSECTION\n2\nENTITIES\n")

	if r.endsOnly {
		for _, p := range f.PetalEnds {
			if p.Diameter <= 0 {
				continue
			}
			dxfCircle(&buf, LayerCut, p.Pos.X, p.Pos.Y, p.Diameter/2)
		}
	} else {
		for _, s := range f.Seeds {
			for _, rec := range s.Records {
				if rec.Diameter <= 0 {
					continue
				}
				dxfCircle(&buf, LayerCut, rec.Pos.X, rec.Pos.Y, rec.Diameter/2)
			}
		}
	}

	if r.construction {
		for _, s := range f.Seeds {
			for _, p := range f.EndsOf(s.ID) {
				dxfLine(&buf, LayerEngrave, s.Pos.X, s.Pos.Y, p.Pos.X, p.Pos.Y)
			}
		}
	}

	for _, s := range f.Seeds {
		cr := f.CenterRadius(s.ID)
		if cr <= 0 {
			continue
		}
		dxfCircle(&buf, LayerEngrave, s.Pos.X, s.Pos.Y, cr)
	}

	buf.WriteString("0\nENDSEC\n0\nEOF\n")
	return buf.Bytes()
}

func dxfCircle(buf *bytes.Buffer, layer string, x, y, r float64) {
	fmt.Fprintf(buf, "0\nCIRCLE\n8\n%s\n10\n%.4f\n20\n%.4f\n40\n%.4f\n", layer, x, y, r)
}

func dxfLine(buf *bytes.Buffer, layer string, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, "0\nLINE\n8\n%s\n10\n%.4f\n20\n%.4f\n11\n%.4f\n21\n%.4f\n", layer, x1, y1, x2, y2)
}
