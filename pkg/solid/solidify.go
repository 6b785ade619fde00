package solid

import (
	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/field"
)

// Default extrusion parameters, in millimeters. Heights follow the
// earring designer's defaults.
const (
	DefaultPlateThickness = 2.0
	DefaultCenterHeight   = 2.5
	DefaultPetalHeight    = 1.5
	DefaultCenterSegments = 12
	DefaultPetalSegments  = 8
)

// Options controls solidification of a field into a printable mesh.
type Options struct {
	// PlateThickness is the base plate height. Cylinders and beams rise
	// from its top face.
	PlateThickness float64 `json:"plate_thickness" bson:"plate_thickness"`

	// CenterHeight and PetalHeight are measured above the plate top.
	CenterHeight float64 `json:"center_height" bson:"center_height"`
	PetalHeight  float64 `json:"petal_height" bson:"petal_height"`

	// CenterSegments and PetalSegments set cylinder tessellation.
	CenterSegments int `json:"center_segments" bson:"center_segments"`
	PetalSegments  int `json:"petal_segments" bson:"petal_segments"`

	// CenterRadius, when positive, overrides the growth-derived center
	// size ([field.Field.CenterRadius]) with a fixed radius.
	CenterRadius float64 `json:"center_radius,omitempty" bson:"center_radius,omitempty"`

	// MinFeature drops petal circles thinner than this diameter, so a
	// material's minimum printable feature size can be enforced.
	MinFeature float64 `json:"min_feature,omitempty" bson:"min_feature,omitempty"`
}

// DefaultOptions returns the standard extrusion parameters.
func DefaultOptions() Options {
	return Options{
		PlateThickness: DefaultPlateThickness,
		CenterHeight:   DefaultCenterHeight,
		PetalHeight:    DefaultPetalHeight,
		CenterSegments: DefaultCenterSegments,
		PetalSegments:  DefaultPetalSegments,
	}
}

// ValidateAndSetDefaults checks the options and fills zero values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.PlateThickness == 0 {
		o.PlateThickness = DefaultPlateThickness
	}
	if o.PlateThickness < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "plate thickness must be positive, got %g", o.PlateThickness)
	}
	if o.CenterHeight == 0 {
		o.CenterHeight = DefaultCenterHeight
	}
	if o.PetalHeight == 0 {
		o.PetalHeight = DefaultPetalHeight
	}
	if o.CenterHeight < 0 || o.PetalHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "heights must be positive, got center=%g petal=%g", o.CenterHeight, o.PetalHeight)
	}
	if o.CenterSegments == 0 {
		o.CenterSegments = DefaultCenterSegments
	}
	if o.PetalSegments == 0 {
		o.PetalSegments = DefaultPetalSegments
	}
	if o.CenterSegments < 3 || o.PetalSegments < 3 {
		return errors.New(errors.ErrCodeInvalidConfig, "cylinders need at least 3 segments, got center=%d petal=%d", o.CenterSegments, o.PetalSegments)
	}
	if o.CenterRadius < 0 || o.MinFeature < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radii must be non-negative")
	}
	return nil
}

// Solidify extrudes a finished flower field into a single mesh. The
// plate footprint is the field's canvas; the field should therefore be
// generated in model units (millimeters).
//
// Flowers whose petals all collapsed to stubs contribute no center
// cylinder, and coincident center/petal pairs contribute no beam; both
// cases degrade locally instead of failing the whole solidification.
func Solidify(f *field.Field, opts Options) (*Mesh, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	m := &Mesh{}
	m.Append(plate(f.Config.Canvas.Width, f.Config.Canvas.Height, opts.PlateThickness))

	top := opts.PlateThickness
	for _, s := range f.Seeds {
		centerRadius := opts.CenterRadius
		if centerRadius == 0 {
			centerRadius = f.CenterRadius(s.ID)
		}
		if centerRadius > 0 {
			m.Append(cylinder(s.Pos, centerRadius, top, top+opts.CenterHeight, opts.CenterSegments))
		}

		for _, rec := range s.Records {
			if rec.Diameter <= 0 || rec.Diameter < opts.MinFeature {
				continue
			}
			m.Append(cylinder(rec.Pos, rec.Diameter/2, top, top+opts.PetalHeight, opts.PetalSegments))
			if centerRadius > 0 {
				m.Append(beam(s.Pos, centerRadius, rec.Pos, rec.Diameter/2, top, opts.PetalHeight))
			}
		}
	}

	return m, nil
}
