// Package cli — layouts.go implements the "watersort layouts" command.
//
// The layouts command lists the built-in puzzles that can be passed to
// --layout, as a text table or a JSON array depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/watersort/internal/layout"
)

// NewLayoutsCommand creates the "layouts" cobra command.
func NewLayoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List built-in puzzle layouts",
		Long: `List the built-in puzzle layouts accepted by --layout.

Examples:
  watersort layouts
  watersort layouts --json`,

		// No positional arguments are required for the layouts command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayouts(cmd.OutOrStdout())
		},
	}
}

// layoutJSON is the JSON output structure for a single layout.
type layoutJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Containers  int    `json:"containers"`
	Capacity    int    `json:"capacity"`
	Default     bool   `json:"default"`
}

// runLayouts is the main logic function for the layouts command.
func runLayouts(out io.Writer) error {
	// Names is sorted, which keeps the output stable between runs.
	names := layout.Names()
	entries := make([]layoutJSON, 0, len(names))
	for _, name := range names {
		// Builtin cannot fail for a name from Names, but keep the error
		// path in case the two ever drift apart.
		l, err := layout.Builtin(name)
		if err != nil {
			return err
		}
		entries = append(entries, layoutJSON{
			Name:        l.Name,
			Description: l.Description,
			Containers:  len(l.Containers),
			Capacity:    l.Capacity,
			Default:     l.Name == layout.DefaultName,
		})
	}

	if IsJSONOutput() {
		return printLayoutsJSON(out, entries)
	}
	printLayoutsText(out, entries)
	return nil
}

// printLayoutsJSON outputs the layouts as structured JSON under a
// top-level "layouts" key.
func printLayoutsJSON(w io.Writer, entries []layoutJSON) error {
	type resultJSON struct {
		Layouts []layoutJSON `json:"layouts"`
	}
	data, err := json.MarshalIndent(resultJSON{Layouts: entries}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printLayoutsText prints the layouts as a table. The default layout is
// marked with an asterisk.
//
//	NAME                 CONTAINERS DESCRIPTION
//	last-step            2          two half-full containers of one color
//	sample *             15         13 colors in 15 containers, two of them empty
func printLayoutsText(w io.Writer, entries []layoutJSON) {
	fmt.Fprintf(w, "%-20s %-10s %s\n", "NAME", "CONTAINERS", "DESCRIPTION")
	for _, e := range entries {
		name := e.Name
		if e.Default {
			name += " *"
		}
		fmt.Fprintf(w, "%-20s %-10d %s\n", name, e.Containers, e.Description)
	}
}
