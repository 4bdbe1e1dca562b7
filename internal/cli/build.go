package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/app"
	"github.com/osmg/osmg/internal/builder"
)

var buildFlags struct {
	watch      bool
	preprocess bool
	format     string
	out        string
}

var buildCmd = &cobra.Command{
	Use:   "build [path ...]",
	Short: "Assemble a building model and print a summary",
	Long: `Assemble a building model from its definition files and print a
summary of the result.

With --watch the command keeps running and rebuilds whenever a model
file changes. With --format the assembled model is also exported, to
--out or to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args, func(cfg *app.Config) {
			cfg.Preprocess = buildFlags.preprocess
			cfg.ExportFormat = buildFlags.format
			cfg.ExportPath = buildFlags.out
		})
		if err != nil {
			return err
		}

		if buildFlags.watch {
			return a.Watch(cmd.Context())
		}

		result, err := a.Run(cmd.Context())
		if err != nil {
			return err
		}
		// The summary would corrupt an export streaming to stdout.
		if buildFlags.format == "" || buildFlags.out != "" {
			printSummary(cmd.OutOrStdout(), result)
		}
		return nil
	},
}

func printSummary(w io.Writer, result *builder.Result) {
	if result.Description != "" {
		color.New(color.Bold).Fprintln(w, result.Description)
	}
	b := result.Building
	fmt.Fprintf(w, "levels:   %d\n", len(b.Levels.List()))
	fmt.Fprintf(w, "columns:  %d\n", len(b.Columns()))
	fmt.Fprintf(w, "beams:    %d\n", len(b.Beams()))
	fmt.Fprintf(w, "nodes:    %d\n", len(b.AllNodes()))
	fmt.Fprintf(w, "sections: %d\n", len(b.Sections.List()))
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildFlags.watch, "watch", false, "Rebuild whenever a model file changes")
	buildCmd.Flags().BoolVar(&buildFlags.preprocess, "preprocess", false, "Run the analysis preparation stage even without a preprocess block")
	buildCmd.Flags().StringVar(&buildFlags.format, "format", "", "Export the model after building: tcl or json")
	buildCmd.Flags().StringVar(&buildFlags.out, "out", "", "Export destination (default stdout)")
}
