package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/florelab/bloomforge/pkg/render"
)

// presetsCommand creates the presets command listing the available
// plate sizes, materials, and palettes.
func (c *CLI) presetsCommand() *cobra.Command {
	var presetsFile string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List available plate sizes, materials, and palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(presetsFile)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Plate sizes"))
			for _, s := range catalog.Sizes {
				printKeyValue(s.Name, fmt.Sprintf("%gx%g mm, %g mm plate", s.Width, s.Height, s.Thickness))
			}
			printNewline()

			fmt.Println(StyleTitle.Render("Materials"))
			for _, m := range catalog.Materials {
				printKeyValue(m.Name, fmt.Sprintf("min feature %g mm", m.MinFeature))
			}
			printNewline()

			fmt.Println(StyleTitle.Render("Palettes"))
			for _, name := range render.PaletteNames() {
				printDetail("%s", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&presetsFile, "presets", "", "TOML file with extra size/material presets")
	return cmd
}
