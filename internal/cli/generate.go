package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/florelab/bloomforge/pkg/design"
	"github.com/florelab/bloomforge/pkg/pipeline"
)

// generateCommand creates the generate command, the main entry point of
// the CLI: it runs the full generate → solidify → render pipeline.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		save        string
		presetsFile string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Grow a flower field and render it",
		Long: `Grow a flower field and render it.

Seeds are scattered on the canvas, spread apart by Lloyd relaxation, and
each flower then grows petals outward until it meets a neighbor or its
Voronoi territory boundary. The result is rendered to the requested
formats; mesh formats (stl, obj) solidify the field into a printable
plate first.

Generation is deterministic: the same parameters and --seed always
produce the same field. Results are cached locally for faster
re-renders.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			catalog, err := loadCatalog(presetsFile)
			if err != nil {
				return err
			}
			opts.Catalog = catalog
			return c.runGenerate(cmd.Context(), opts, output, save, noCache)
		},
	}

	// Field flags
	cmd.Flags().StringVar(&opts.Size, "size", "", "plate size preset: small, medium, large")
	cmd.Flags().StringVar(&opts.Material, "material", "", "material preset: pla, petg, resin")
	cmd.Flags().Float64Var(&opts.Field.Canvas.Width, "width", 0, "canvas width in mm (overrides --size)")
	cmd.Flags().Float64Var(&opts.Field.Canvas.Height, "height", 0, "canvas height in mm (overrides --size)")
	cmd.Flags().Float64Var(&opts.Field.Canvas.Margin, "margin", 0, "border margin as a fraction of the canvas")
	cmd.Flags().IntVar(&opts.Field.SeedCount, "flowers", 0, "number of flowers")
	cmd.Flags().IntVar(&opts.Field.PetalCount, "petals", 0, "petals per flower")
	cmd.Flags().Uint64Var(&opts.Field.Seed, "seed", 0, "random seed for reproducible fields")
	cmd.Flags().BoolVar(&opts.Textile, "textile", false, "use the coarse textile profile")

	// Solid flags
	cmd.Flags().Float64Var(&opts.Solid.PlateThickness, "plate", 0, "base plate thickness in mm")
	cmd.Flags().Float64Var(&opts.Solid.PetalHeight, "petal-height", 0, "petal extrusion height in mm")
	cmd.Flags().Float64Var(&opts.Solid.CenterHeight, "center-height", 0, "center extrusion height in mm")
	cmd.Flags().BoolVar(&opts.Solidify, "solidify", false, "build the mesh even without mesh formats")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dxf, json, stl, obj (comma-separated)")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "color palette for 2D formats")
	cmd.Flags().BoolVar(&opts.EndsOnly, "ends-only", false, "draw only terminal petal circles")
	cmd.Flags().BoolVar(&opts.Construction, "construction", false, "overlay construction lines")

	// Output flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&save, "save", "", "save the design (field + mesh) as JSON to this path")
	cmd.Flags().StringVar(&presetsFile, "presets", "", "TOML file with extra size/material presets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache for this run")

	return cmd
}

// runGenerate executes the pipeline and writes artifacts and the
// optional design file.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output, save string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	if save != "" {
		opts.Solidify = true
	}

	spinner := newSpinnerWithContext(ctx, "Growing flower field...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Grew %d flowers", result.Stats.Seeds))
	printStats(result.Stats.Seeds, result.Stats.PetalEnds, result.CacheInfo.FieldHit)
	if result.Mesh != nil {
		printDetail("mesh: %d vertices, %d triangles", result.Stats.Vertices, result.Stats.Triangles)
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    output,
		base:      "field",
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}

	if save != "" {
		d := design.New(result.Field)
		d.Size = opts.Size
		d.Material = opts.Material
		d.Mesh = result.Mesh
		if result.Mesh != nil {
			solidOpts := opts.Solid
			d.Solid = &solidOpts
		}
		data, err := design.Marshal(d)
		if err != nil {
			return err
		}
		if err := os.WriteFile(save, data, 0o644); err != nil {
			return err
		}
		printFile(save, false)
		printNextStep("Re-solidify with other settings", fmt.Sprintf("%s solidify %s", appName, save))
	}
	return nil
}
