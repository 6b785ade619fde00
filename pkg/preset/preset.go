// Package preset holds the named plate sizes and print materials a
// design can be built against, with optional overrides from a TOML
// catalog file.
package preset

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/geom"
	"github.com/florelab/bloomforge/pkg/solid"
)

// PlateSize names a canvas footprint and base thickness, in millimeters.
type PlateSize struct {
	Name      string  `toml:"name" json:"name"`
	Width     float64 `toml:"width" json:"width"`
	Height    float64 `toml:"height" json:"height"`
	Thickness float64 `toml:"thickness" json:"thickness"`
}

// Material names a print material and its minimum printable feature
// diameter. Petals thinner than MinFeature are dropped during
// solidification.
type Material struct {
	Name       string  `toml:"name" json:"name"`
	MinFeature float64 `toml:"min_feature" json:"min_feature"`
}

// Catalog is the set of presets available to the CLI and API.
type Catalog struct {
	Sizes     []PlateSize `toml:"size"`
	Materials []Material  `toml:"material"`
}

// DefaultSize is the plate size used when none is requested.
const DefaultSize = "medium"

// Builtin returns the default catalog.
func Builtin() *Catalog {
	return &Catalog{
		Sizes: []PlateSize{
			{Name: "small", Width: 15, Height: 20, Thickness: 3},
			{Name: "medium", Width: 20, Height: 25, Thickness: 4},
			{Name: "large", Width: 25, Height: 30, Thickness: 5},
		},
		Materials: []Material{
			{Name: "pla", MinFeature: 0.8},
			{Name: "petg", MinFeature: 1.0},
			{Name: "resin", MinFeature: 0.4},
		},
	}
}

// Load reads a TOML catalog file and merges it over the builtin
// presets. Entries with a builtin name replace the builtin; new names
// extend the catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset catalog %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read preset catalog %s", path)
	}

	var overlay Catalog
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset catalog %s", path)
	}

	cat := Builtin()
	for _, s := range overlay.Sizes {
		if err := errors.ValidatePresetName(s.Name); err != nil {
			return nil, err
		}
		if s.Width <= 0 || s.Height <= 0 || s.Thickness <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidPreset, "size %q has non-positive dimensions", s.Name)
		}
		cat.Sizes = upsertSize(cat.Sizes, s)
	}
	for _, m := range overlay.Materials {
		if err := errors.ValidatePresetName(m.Name); err != nil {
			return nil, err
		}
		if m.MinFeature < 0 {
			return nil, errors.New(errors.ErrCodeInvalidPreset, "material %q has negative min feature", m.Name)
		}
		cat.Materials = upsertMaterial(cat.Materials, m)
	}
	return cat, nil
}

func upsertSize(sizes []PlateSize, s PlateSize) []PlateSize {
	for i := range sizes {
		if sizes[i].Name == s.Name {
			sizes[i] = s
			return sizes
		}
	}
	return append(sizes, s)
}

func upsertMaterial(mats []Material, m Material) []Material {
	for i := range mats {
		if mats[i].Name == m.Name {
			mats[i] = m
			return mats
		}
	}
	return append(mats, m)
}

// Size looks up a plate size by name.
func (c *Catalog) Size(name string) (PlateSize, error) {
	for _, s := range c.Sizes {
		if s.Name == name {
			return s, nil
		}
	}
	return PlateSize{}, errors.New(errors.ErrCodeInvalidPreset, "unknown plate size %q (have %v)", name, c.SizeNames())
}

// Material looks up a material by name.
func (c *Catalog) Material(name string) (Material, error) {
	for _, m := range c.Materials {
		if m.Name == name {
			return m, nil
		}
	}
	return Material{}, errors.New(errors.ErrCodeInvalidPreset, "unknown material %q (have %v)", name, c.MaterialNames())
}

// SizeNames lists the plate size names in catalog order.
func (c *Catalog) SizeNames() []string {
	names := make([]string, len(c.Sizes))
	for i, s := range c.Sizes {
		names[i] = s.Name
	}
	return names
}

// MaterialNames lists the material names in catalog order.
func (c *Catalog) MaterialNames() []string {
	names := make([]string, len(c.Materials))
	for i, m := range c.Materials {
		names[i] = m.Name
	}
	return names
}

// Canvas converts a plate size to a generation canvas. The field keeps
// its own margin; the plate only fixes the footprint.
func (s PlateSize) Canvas(margin float64) geom.Rect {
	return geom.Rect{Width: s.Width, Height: s.Height, Margin: margin}
}

// Apply folds a size and material into solidification options: the
// plate thickness comes from the size, the minimum feature from the
// material.
func Apply(opts solid.Options, size PlateSize, mat Material) solid.Options {
	opts.PlateThickness = size.Thickness
	opts.MinFeature = mat.MinFeature
	return opts
}
