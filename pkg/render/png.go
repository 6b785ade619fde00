package render

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/florelab/bloomforge/pkg/field"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette      Palette
	scale        float64
	endsOnly     bool
	construction bool
}

// WithPNGPalette selects the color scheme.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithPNGScale sets pixels per canvas unit. Fields generated in model
// millimeters need scaling up to make a useful preview; the default is 4.
func WithPNGScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGEndsOnly draws only the terminal circle of each petal instead
// of every recorded circle along it.
func WithPNGEndsOnly() PNGOption { return func(r *pngRenderer) { r.endsOnly = true } }

// WithPNGConstruction overlays dashed construction lines from each seed
// to its petal ends, for debugging growth.
func WithPNGConstruction() PNGOption { return func(r *pngRenderer) { r.construction = true } }

// RenderPNG rasters the field to a PNG preview.
func RenderPNG(f *field.Field, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: palettes[DefaultPalette], scale: 4}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := f.Config.Canvas
	w := int(canvas.Width * r.scale)
	h := int(canvas.Height * r.scale)
	dc := gg.NewContext(w, h)

	dc.SetHexColor(r.palette.Background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	if r.endsOnly {
		for _, p := range f.PetalEnds {
			if p.Diameter <= 0 {
				continue
			}
			dc.SetHexColor(r.palette.petalColor(p.Diameter, p.Diameter))
			dc.DrawCircle(p.Pos.X, p.Pos.Y, p.Diameter/2)
			dc.Fill()
			dc.SetHexColor(r.palette.Accent)
			dc.SetLineWidth(0.3)
			dc.DrawCircle(p.Pos.X, p.Pos.Y, p.Diameter/2)
			dc.Stroke()
		}
	} else {
		for _, s := range f.Seeds {
			rMax := maxRecordRadius(s)
			for _, rec := range s.Records {
				if rec.Diameter <= 0 {
					continue
				}
				dc.SetHexColor(r.palette.petalColor(rec.Radius, rMax))
				dc.DrawCircle(rec.Pos.X, rec.Pos.Y, rec.Diameter/2)
				dc.Fill()
			}
		}
	}

	if r.construction {
		dc.SetHexColor(r.palette.Accent)
		dc.SetLineWidth(0.2)
		dc.SetDash(1, 1)
		for _, s := range f.Seeds {
			for _, p := range f.EndsOf(s.ID) {
				dc.DrawLine(s.Pos.X, s.Pos.Y, p.Pos.X, p.Pos.Y)
				dc.Stroke()
			}
		}
		dc.SetDash()
	}

	for _, s := range f.Seeds {
		cr := f.CenterRadius(s.ID)
		if cr <= 0 {
			continue
		}
		dc.SetHexColor(r.palette.Centers)
		dc.DrawCircle(s.Pos.X, s.Pos.Y, cr)
		dc.Fill()
		dc.SetHexColor(r.palette.Accent)
		dc.SetLineWidth(0.4)
		dc.DrawCircle(s.Pos.X, s.Pos.Y, cr)
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
