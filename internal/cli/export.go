package cli

import (
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/app"
)

var exportFlags struct {
	format     string
	out        string
	preprocess bool
}

var exportCmd = &cobra.Command{
	Use:   "export [path ...]",
	Short: "Assemble a building model and export it",
	Long: `Assemble a building model and write it out in the chosen format.

tcl writes an OpenSees model definition script; json writes an indented
document with the levels, nodes, elements, sections, materials and
level masses. Preparation runs first unless --preprocess=false.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args, func(cfg *app.Config) {
			cfg.Preprocess = exportFlags.preprocess
			cfg.ExportFormat = exportFlags.format
			cfg.ExportPath = exportFlags.out
		})
		if err != nil {
			return err
		}

		_, err = a.Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFlags.format, "format", "", "Export format: tcl or json (required)")
	exportCmd.Flags().StringVar(&exportFlags.out, "out", "", "Export destination (default stdout)")
	exportCmd.Flags().BoolVar(&exportFlags.preprocess, "preprocess", true, "Run the analysis preparation stage before exporting")
	_ = exportCmd.MarkFlagRequired("format")
}
