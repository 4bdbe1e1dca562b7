package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/app"
	"github.com/osmg/osmg/internal/builder"
)

var reportFlags struct {
	preprocess bool
}

var reportCmd = &cobra.Command{
	Use:   "report [path ...]",
	Short: "Print a full model report",
	Long: `Assemble a building model and print a report of its levels, frame
elements, sections and materials. With --preprocess the level table
also carries the condensed masses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args, func(cfg *app.Config) {
			cfg.Preprocess = reportFlags.preprocess
		})
		if err != nil {
			return err
		}

		result, err := a.Run(cmd.Context())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), result)
		return nil
	},
}

func printReport(w io.Writer, result *builder.Result) {
	bold := color.New(color.Bold)
	b := result.Building

	if result.Description != "" {
		bold.Fprintln(w, result.Description)
		fmt.Fprintln(w)
	}

	bold.Fprintf(w, "%-16s %12s %-8s %8s %8s %12s %14s\n",
		"level", "elevation", "restr", "columns", "beams", "surface_dl", "mass")
	masses := b.LevelMasses()
	for i, lvl := range b.Levels.List() {
		fmt.Fprintf(w, "%-16s %12g %-8s %8d %8d %12g %14g\n",
			lvl.Name, lvl.Elevation, string(lvl.Restraint),
			len(lvl.Columns.List()), len(lvl.Beams.List()),
			lvl.SurfaceDL, masses[i])
	}
	fmt.Fprintln(w)

	sections := b.Sections.List()
	if len(sections) > 0 {
		bold.Fprintf(w, "%-16s %-8s %10s %12s %12s %12s\n",
			"section", "family", "A", "Ix", "Iy", "J")
		for _, sec := range sections {
			fmt.Fprintf(w, "%-16s %-8s %10g %12g %12g %12g\n",
				sec.Name, sec.Family,
				sec.Properties["A"], sec.Properties["Ix"],
				sec.Properties["Iy"], sec.Properties["J"])
		}
		fmt.Fprintln(w)
	}

	materials := b.Materials.List()
	if len(materials) > 0 {
		bold.Fprintf(w, "%-16s %-10s %14s\n", "material", "model", "density")
		for _, mat := range materials {
			fmt.Fprintf(w, "%-16s %-10s %14g\n", mat.Name, mat.Model, mat.Density)
		}
		fmt.Fprintln(w)
	}

	groups := b.Groups.List()
	if len(groups) > 0 {
		bold.Fprintf(w, "%-16s %8s\n", "group", "elements")
		for _, g := range groups {
			fmt.Fprintf(w, "%-16s %8d\n", g.Name, len(g.Elements))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d nodes, %d frame elements, %d internal elements\n",
		len(b.AllNodes()), len(b.FrameElements()), len(b.InternalElements()))
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportFlags.preprocess, "preprocess", false, "Run the analysis preparation stage before reporting")
}
