package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/workspace"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Check the environment and workspace",
	Long: `Check everything a build needs: the Go runtime, model files in the
workspace, the embedded shape database and write access. The command
exits non-zero when a check fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		checks := workspace.Doctor(cmd.Context(), dir)
		failed := printChecks(cmd.OutOrStdout(), checks)
		if failed > 0 {
			return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d checks failed", failed, len(checks))}
		}
		return nil
	},
}

func printChecks(w io.Writer, checks []workspace.Check) (failed int) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	for _, c := range checks {
		if c.Passed() {
			green.Fprint(w, "✅ ")
			fmt.Fprintf(w, "%s", c.Name)
			if c.Detail != "" {
				fmt.Fprintf(w, ": %s", c.Detail)
			}
			fmt.Fprintln(w)
			continue
		}
		failed++
		red.Fprint(w, "❌ ")
		fmt.Fprintf(w, "%s: %v\n", c.Name, c.Err)
	}
	return failed
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
