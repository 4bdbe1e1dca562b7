package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a model workspace",
	Long: `Scaffold a model workspace with a starter definition and a README.
Existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		created, err := workspace.Init(dir)
		if err != nil {
			return err
		}
		green := color.New(color.FgGreen)
		for _, path := range created {
			green.Fprint(cmd.OutOrStdout(), "✅ ")
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
