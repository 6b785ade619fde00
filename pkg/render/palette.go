// Package render turns a finished flower field into 2D artifacts: SVG
// and DXF vectors for cutting and engraving, PNG rasters for previews,
// and a JSON description for downstream tooling.
//
// Sinks are pure: they read the field and return bytes, configured with
// functional options. Each sink lays circles down in the same order the
// field grew them, so the artifact is as deterministic as the field.
package render

import (
	"fmt"
	"slices"
)

// Palette is a named color scheme for the 2D sinks. Petal colors grade
// from the flower center outward.
type Palette struct {
	Name       string
	Background string
	Petals     []string
	Centers    string
	Accent     string
}

// Built-in palettes from the textile sketches.
var palettes = map[string]Palette{
	"rose_garden": {
		Name:       "rose_garden",
		Background: "#1a0d0d",
		Petals:     []string{"#ff6b9d", "#ffa8cc", "#ffcce5"},
		Centers:    "#8b0000",
		Accent:     "#ff1744",
	},
	"lavender_fields": {
		Name:       "lavender_fields",
		Background: "#2d1b3d",
		Petals:     []string{"#9c88ff", "#c8b5ff", "#e1d4ff"},
		Centers:    "#4a148c",
		Accent:     "#7c4dff",
	},
	"emerald_forest": {
		Name:       "emerald_forest",
		Background: "#0d2818",
		Petals:     []string{"#66bb6a", "#a5d6a7", "#c8e6c9"},
		Centers:    "#1b5e20",
		Accent:     "#4caf50",
	},
	"vintage_gold": {
		Name:       "vintage_gold",
		Background: "#2d2416",
		Petals:     []string{"#ffd700", "#ffecb3", "#fff8e1"},
		Centers:    "#ff8f00",
		Accent:     "#ffc107",
	},
}

// DefaultPalette is used when no palette is requested.
const DefaultPalette = "rose_garden"

// LookupPalette returns the named palette.
func LookupPalette(name string) (Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q", name)
	}
	return p, nil
}

// PaletteNames returns the available palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// petalColor picks the gradient color for a circle at radius r of a
// petal that ended at rMax.
func (p Palette) petalColor(r, rMax float64) string {
	if len(p.Petals) == 0 {
		return p.Accent
	}
	if rMax <= 0 {
		return p.Petals[0]
	}
	idx := int(r / rMax * float64(len(p.Petals)))
	if idx >= len(p.Petals) {
		idx = len(p.Petals) - 1
	}
	return p.Petals[idx]
}
