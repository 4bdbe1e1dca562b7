// Package cli defines the osmg command tree. It translates flags into
// the application's configuration and handles process-level concerns
// like exit codes.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/app"
	"github.com/osmg/osmg/internal/registry"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	logLevel  string
	logFormat string
	noColor   bool
)

const rootHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}{{if .HasAvailableSubCommands}} [command]{{end}}

Model files:
  Commands that take paths accept model files, directories or glob
  patterns. Directories are searched recursively for *.osmg.hcl files.
  Without a path the current directory is used.

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var rootCmd = &cobra.Command{
	Use:   "osmg",
	Short: "Generate structural building models from declarative definitions",
	Long: `osmg assembles three-dimensional building models from declarative
definition files (*.osmg.hcl) and exports them as OpenSees Tcl scripts
or JSON documents.

A definition names levels, grid lines, materials, sections and the
frame elements spanning them; osmg resolves the references between
blocks, evaluates them in dependency order and reports or exports the
assembled model. All quantities are in pound, inch and second units.

Examples:
  # Assemble the models in the current directory and print a summary
  osmg build

  # Rebuild on every change
  osmg build --watch

  # Export an OpenSees model definition
  osmg export --format tcl --out model.tcl

  # Inspect the embedded AISC shape table
  osmg sections list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.SetHelpTemplate(rootHelpTemplate)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log output format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// ExitError carries a specific process exit code through Execute.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// SetBuildInfo records the version metadata injected by the build.
func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// BuildInfo returns the recorded version metadata.
func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// Execute runs the command tree and exits the process on error. Panics
// from wiring bugs, like a shape handler without a manifest, surface as
// ordinary fatal errors.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fail(&ExitError{Code: 1, Message: fmt.Sprint(r)})
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	code := 1
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}
	os.Exit(code)
}

// newApp assembles an App from the persistent flags plus any
// command-specific configuration. Logs go to stderr so exports can
// stream to stdout.
func newApp(paths []string, adjust func(*app.Config)) (*app.App, error) {
	cfg := app.Config{
		Paths:     paths,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
	if adjust != nil {
		adjust(&cfg)
	}

	resolved, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return app.New(os.Stderr, os.Stdout, resolved, registry.Default()), nil
}
