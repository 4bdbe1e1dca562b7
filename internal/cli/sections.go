package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osmg/osmg/internal/hcl"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/registry"
	"github.com/osmg/osmg/internal/section"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Inspect shape databases",
}

var sectionsListFlags struct {
	source string
	family string
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the labels of a shape database",
	Long: `List the labels of a shape database.

Without --source the embedded AISC table is listed. --family keeps only
labels of one shape family, W or HSS.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSource(sectionsListFlags.source)
		if err != nil {
			return err
		}
		for _, label := range db.Labels() {
			if sectionsListFlags.family != "" && familyOf(label) != sectionsListFlags.family {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
		}
		return nil
	},
}

var sectionsShowFlags struct {
	source   string
	family   string
	material string
	fibers   string
}

var sectionsShowCmd = &cobra.Command{
	Use:   "show LABEL",
	Short: "Show a database row and the section generated from it",
	Long: `Show the stored properties of a shape database row along with the
geometry of the cross-section its family generator produces.

The family is read from the label prefix unless --family overrides it.
--fibers "nx ny" additionally subdivides the section into a grid of
fibers and reports their count and combined area. Rectangular tubes
ignore the grid and subdivide along their wall bands.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSource(sectionsShowFlags.source)
		if err != nil {
			return err
		}

		label := args[0]
		row, err := db.Row(label)
		if errors.Is(err, section.ErrNotFound) {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		if err != nil {
			return err
		}

		family := sectionsShowFlags.family
		if family == "" {
			family = familyOf(label)
		}
		handler, err := registry.Default().Shape(family)
		if err != nil {
			return err
		}
		mat, err := material.Preset(sectionsShowFlags.material)
		if err != nil {
			return err
		}

		input := handler.NewInput()
		if err := hcl.DecodeRow(row, input); err != nil {
			return fmt.Errorf("section %s: %w", label, err)
		}
		sec, err := handler.Generate(label, mat, input)
		if err != nil {
			return err
		}

		printSection(cmd.OutOrStdout(), label, family, row, sec)

		if sectionsShowFlags.fibers != "" {
			var nx, ny int
			if n, err := fmt.Sscanf(sectionsShowFlags.fibers, "%d %d", &nx, &ny); err != nil || n != 2 {
				return &ExitError{Code: 2, Message: fmt.Sprintf("invalid --fibers %q: want \"nx ny\"", sectionsShowFlags.fibers)}
			}
			printFibers(cmd.OutOrStdout(), sec, nx, ny)
		}
		return nil
	},
}

// openSource resolves a --source flag to a shape database. Empty and
// "aisc" mean the embedded table.
func openSource(source string) (*section.Database, error) {
	if source == "" || source == "aisc" {
		return section.Embedded()
	}
	return section.OpenDatabase(source)
}

// familyOf reads a shape family from the leading letters of a label,
// like W for W24X94 and HSS for HSS6X6X1/2.
func familyOf(label string) string {
	for i, r := range label {
		if !unicode.IsLetter(r) {
			return label[:i]
		}
	}
	return label
}

func printSection(w io.Writer, label, family string, row map[string]float64, sec *section.Section) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s (family %s)\n", label, family)

	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %g\n", name, row[name])
	}

	props := sec.Mesh.GeometricProperties()
	bold.Fprintln(w, "generated mesh")
	fmt.Fprintf(w, "  %-8s %g\n", "area", props.Area)
	fmt.Fprintf(w, "  %-8s (%g, %g)\n", "centroid", props.Centroid.X, props.Centroid.Y)
	fmt.Fprintf(w, "  %-8s %g\n", "Ixx", props.Ixx)
	fmt.Fprintf(w, "  %-8s %g\n", "Iyy", props.Iyy)
}

func printFibers(w io.Writer, sec *section.Section, nx, ny int) {
	pieces := sec.Subdivide(nx, ny)
	var total float64
	for _, p := range pieces {
		total += p.Area
	}
	color.New(color.Bold).Fprintf(w, "fibers (%d x %d grid)\n", nx, ny)
	fmt.Fprintf(w, "  %-8s %d\n", "count", len(pieces))
	fmt.Fprintf(w, "  %-8s %g\n", "area", total)
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.AddCommand(sectionsListCmd)
	sectionsCmd.AddCommand(sectionsShowCmd)

	sectionsListCmd.Flags().StringVar(&sectionsListFlags.source, "source", "", "Shape database file (default the embedded AISC table)")
	sectionsListCmd.Flags().StringVar(&sectionsListFlags.family, "family", "", "Only list labels of this shape family")

	sectionsShowCmd.Flags().StringVar(&sectionsShowFlags.source, "source", "", "Shape database file (default the embedded AISC table)")
	sectionsShowCmd.Flags().StringVar(&sectionsShowFlags.family, "family", "", "Shape family (default read from the label)")
	sectionsShowCmd.Flags().StringVar(&sectionsShowFlags.material, "material", "A992Fy50", "Material preset for the generated section")
	sectionsShowCmd.Flags().StringVar(&sectionsShowFlags.fibers, "fibers", "", "Subdivide into an \"nx ny\" fiber grid")
}
