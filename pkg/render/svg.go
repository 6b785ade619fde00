package render

import (
	"bytes"
	"fmt"

	"github.com/florelab/bloomforge/pkg/field"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette      Palette
	endsOnly     bool
	construction bool
}

// WithSVGPalette selects the color scheme.
func WithSVGPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithSVGEndsOnly draws only the terminal circle of each petal instead
// of every recorded circle along it.
func WithSVGEndsOnly() SVGOption { return func(r *svgRenderer) { r.endsOnly = true } }

// WithSVGConstruction overlays dashed construction lines from each seed
// to its petal ends, for debugging growth.
func WithSVGConstruction() SVGOption { return func(r *svgRenderer) { r.construction = true } }

// RenderSVG renders the field as an SVG document. Petal circles are
// drawn per seed in growth order with a center-outward color gradient,
// then flower centers on top.
func RenderSVG(f *field.Field, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	canvas := f.Config.Canvas

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		canvas.Width, canvas.Height, canvas.Width, canvas.Height)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		canvas.Width, canvas.Height, r.palette.Background)

	if r.endsOnly {
		for _, p := range f.PetalEnds {
			if p.Diameter <= 0 {
				continue
			}
			fmt.Fprintf(&buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="0.3"/>`+"\n",
				p.Pos.X, p.Pos.Y, p.Diameter/2, r.palette.petalColor(p.Diameter, p.Diameter), r.palette.Accent)
		}
	} else {
		for _, s := range f.Seeds {
			rMax := maxRecordRadius(s)
			for _, rec := range s.Records {
				if rec.Diameter <= 0 {
					continue
				}
				fmt.Fprintf(&buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
					rec.Pos.X, rec.Pos.Y, rec.Diameter/2, r.palette.petalColor(rec.Radius, rMax))
			}
		}
	}

	if r.construction {
		for _, s := range f.Seeds {
			for _, p := range f.EndsOf(s.ID) {
				fmt.Fprintf(&buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.2" stroke-dasharray="1,1"/>`+"\n",
					s.Pos.X, s.Pos.Y, p.Pos.X, p.Pos.Y, r.palette.Accent)
			}
		}
	}

	for _, s := range f.Seeds {
		cr := f.CenterRadius(s.ID)
		if cr <= 0 {
			continue
		}
		fmt.Fprintf(&buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="0.4"/>`+"\n",
			s.Pos.X, s.Pos.Y, cr, r.palette.Centers, r.palette.Accent)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: palettes[DefaultPalette]}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// maxRecordRadius returns the largest recorded radius of any petal of s,
// the reference for the color gradient.
func maxRecordRadius(s *field.Seed) float64 {
	var max float64
	for _, rec := range s.Records {
		if rec.Radius > max {
			max = rec.Radius
		}
	}
	return max
}
