// Package pipeline provides the core generation pipeline for bloomforge.
//
// This package implements the complete generate → solidify → render
// pipeline that can be used by CLI and API components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Place seeds, relax them, and grow petals into a field
//  2. Solidify: Extrude the field into a printable triangle mesh
//  3. Render: Generate output in various formats (SVG, PNG, DXF, JSON, STL, OBJ)
//
// Each stage can be run independently or as part of the complete pipeline.
// The solidify stage runs only when a mesh format is requested or when
// Options.Solidify forces it.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Field:   field.DefaultConfig(geom.Rect{Width: 20, Height: 25, Margin: 0.1}),
//	    Formats: []string{"svg", "stl"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/field"
	"github.com/florelab/bloomforge/pkg/preset"
	"github.com/florelab/bloomforge/pkg/render"
	"github.com/florelab/bloomforge/pkg/solid"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDXF  = "dxf"
	FormatJSON = "json"
	FormatSTL  = "stl"
	FormatOBJ  = "obj"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDXF:  true,
	FormatJSON: true,
	FormatSTL:  true,
	FormatOBJ:  true,
}

// meshFormats are the formats that require solidification.
var meshFormats = map[string]bool{
	FormatSTL: true,
	FormatOBJ: true,
}

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Field holds the generation parameters. A zero canvas is filled
	// from the Size preset (or the builtin "medium" plate).
	Field field.Config `json:"field"`

	// Solid holds the extrusion parameters for mesh formats.
	Solid solid.Options `json:"solid"`

	// Size and Material name catalog presets. When set, Size fixes the
	// canvas footprint and plate thickness, Material the minimum
	// printable feature.
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`

	// Textile switches generation to the coarse textile profile
	// (larger collision margin, coarser rays).
	Textile bool `json:"textile,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Palette      string   `json:"palette,omitempty"`
	EndsOnly     bool     `json:"ends_only,omitempty"`
	Construction bool     `json:"construction,omitempty"`

	// Solidify forces the mesh stage even when no mesh format is
	// requested, so the result can be stored with its geometry.
	Solidify bool `json:"solidify,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Catalog *preset.Catalog `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Field is the generated flower field.
	Field *field.Field

	// FieldHash is the content hash of the field, used for cache keys
	// and API responses.
	FieldHash string

	// Mesh is the solidified mesh, nil when the stage did not run.
	Mesh *solid.Mesh

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Seeds        int
	PetalEnds    int
	Vertices     int
	Triangles    int
	GenerateTime time.Duration
	SolidifyTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FieldHit  bool // Whether the generated field came from cache
	MeshHit   bool // Whether the mesh came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dxf, json, stl, obj)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// NeedsMesh reports whether this run requires the solidify stage.
func (o *Options) NeedsMesh() bool {
	if o.Solidify {
		return true
	}
	for _, f := range o.Formats {
		if meshFormats[f] {
			return true
		}
	}
	return false
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Catalog == nil {
		o.Catalog = preset.Builtin()
	}

	// Resolve presets before field validation so the canvas is known.
	if o.Size != "" {
		size, err := o.Catalog.Size(o.Size)
		if err != nil {
			return err
		}
		margin := o.Field.Canvas.Margin
		if margin == 0 {
			margin = field.DefaultMarginFraction
		}
		o.Field.Canvas = size.Canvas(margin)
		o.Solid.PlateThickness = size.Thickness
	}
	if o.Material != "" {
		mat, err := o.Catalog.Material(o.Material)
		if err != nil {
			return err
		}
		o.Solid.MinFeature = mat.MinFeature
	}
	if o.Field.Canvas.Width == 0 && o.Field.Canvas.Height == 0 {
		size, err := o.Catalog.Size(preset.DefaultSize)
		if err != nil {
			return err
		}
		o.Field.Canvas = size.Canvas(field.DefaultMarginFraction)
		if o.Solid.PlateThickness == 0 {
			o.Solid.PlateThickness = size.Thickness
		}
	}

	if o.Textile {
		tp := field.TextileProfile(o.Field.Canvas)
		if o.Field.CollisionMargin == 0 {
			o.Field.CollisionMargin = tp.CollisionMargin
		}
		if o.Field.RayStep == 0 {
			o.Field.RayStep = tp.RayStep
		}
	}
	if err := o.Field.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := o.Solid.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := render.LookupPalette(o.Palette); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
