package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/app"
	"github.com/osmg/osmg/internal/building"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [path ...]",
	Short: "Assemble a building model and prepare it for analysis",
	Long: `Assemble a building model, run the analysis preparation stage and
print the resulting level mass table.

Preparation derives tributary areas from each level's beam layout,
distributes surface dead loads, applies element self-weight and
condenses every free level's mass into a rigid-diaphragm parent node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args, func(cfg *app.Config) {
			cfg.Preprocess = true
		})
		if err != nil {
			return err
		}

		result, err := a.Run(cmd.Context())
		if err != nil {
			return err
		}
		printMassTable(cmd.OutOrStdout(), result.Building)
		return nil
	},
}

func printMassTable(w io.Writer, b *building.Building) {
	color.New(color.Bold).Fprintf(w, "%-16s %12s %14s\n", "level", "elevation", "mass")
	masses := b.LevelMasses()
	for i, lvl := range b.Levels.List() {
		fmt.Fprintf(w, "%-16s %12g %14g\n", lvl.Name, lvl.Elevation, masses[i])
	}
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
}
