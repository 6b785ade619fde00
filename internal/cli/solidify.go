package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/florelab/bloomforge/pkg/cache"
	"github.com/florelab/bloomforge/pkg/design"
	"github.com/florelab/bloomforge/pkg/pipeline"
)

// solidifyCommand creates the solidify command for re-extruding a saved
// design with different settings.
func (c *CLI) solidifyCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		material    string
		presetsFile string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solidify [design.json]",
		Short: "Extrude a saved design into a printable mesh",
		Long: `Extrude a saved design into a printable mesh.

The solidify command takes a design file (produced by 'generate --save')
and builds the 3D mesh without regrowing the field, so extrusion
parameters can be tuned while keeping the exact same flowers.

Use 'generate' with a mesh format to go directly from parameters to
mesh.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if formatsStr == "" {
				opts.Formats = []string{pipeline.FormatSTL}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			catalog, err := loadCatalog(presetsFile)
			if err != nil {
				return err
			}
			opts.Catalog = catalog
			opts.Material = material
			return c.runSolidify(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().Float64Var(&opts.Solid.PlateThickness, "plate", 0, "base plate thickness in mm")
	cmd.Flags().Float64Var(&opts.Solid.PetalHeight, "petal-height", 0, "petal extrusion height in mm")
	cmd.Flags().Float64Var(&opts.Solid.CenterHeight, "center-height", 0, "center extrusion height in mm")
	cmd.Flags().Float64Var(&opts.Solid.CenterRadius, "center-radius", 0, "fixed center radius in mm (0 = derive from growth)")
	cmd.Flags().IntVar(&opts.Solid.PetalSegments, "petal-segments", 0, "petal cylinder tessellation")
	cmd.Flags().IntVar(&opts.Solid.CenterSegments, "center-segments", 0, "center cylinder tessellation")
	cmd.Flags().StringVar(&material, "material", "", "material preset for the minimum feature size")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): stl (default), obj (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&presetsFile, "presets", "", "TOML file with extra size/material presets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runSolidify loads the design, extrudes it, and writes the mesh.
func (c *CLI) runSolidify(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load design %s: %w", input, err)
	}
	d, err := design.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("load design %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Field = d.Field.Config
	opts.Solidify = true
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	fieldData, err := json.Marshal(d.Field)
	if err != nil {
		return err
	}
	fieldHash := cache.Hash(fieldData)

	spinner := newSpinnerWithContext(ctx, "Solidifying...")
	spinner.Start()

	mesh, cacheHit, err := runner.SolidifyWithCacheInfo(ctx, d.Field, fieldHash, opts)
	if err != nil {
		spinner.StopWithError("Solidification failed")
		return err
	}
	artifacts, _, err := runner.RenderWithCacheInfo(ctx, d.Field, mesh, fieldHash, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Solidified %d flowers", len(d.Field.Seeds)))
	printDetail("mesh: %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	printStats(len(d.Field.Seeds), len(d.Field.PetalEnds), cacheHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		output:    output,
		base:      strings.TrimSuffix(input, filepath.Ext(input)),
		cacheHit:  cacheHit,
	})
}
