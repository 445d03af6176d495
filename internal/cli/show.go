// Package cli — show.go implements the "watersort show" command.
//
// The show command prints the initial board of a layout together with the
// pours that are legal from it, without searching. It is useful for
// checking a hand-written puzzle file before solving it.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/watersort/internal/board"
	"github.com/shinji-kodama/watersort/internal/layout"
	"github.com/shinji-kodama/watersort/internal/model"
)

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	flags := &layoutFlags{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a puzzle and its legal pours",
		Long: `Print the containers of a puzzle, bottom unit first, and the pours that
are legal from it.

Examples:
  watersort show --layout single-free-tube
  watersort show --file puzzle.yaml --json`,

		// No positional arguments; the puzzle is selected by flags.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), flags)
		},
	}

	// Same --layout/--file pair as solve, so a puzzle can be checked with
	// show and then solved with the same flags.
	flags.bind(cmd)
	return cmd
}

// showJSON is the JSON output structure of the show command.
type showJSON struct {
	Layout     string       `json:"layout"`
	Capacity   int          `json:"capacity"`
	Containers [][]string   `json:"containers"`
	Solved     bool         `json:"solved"`
	LegalMoves []board.Pour `json:"legalMoves"`
	Unbalanced []string     `json:"unbalancedColors"`
}

// runShow is the main logic function for the show command. It loads the
// layout, builds its board and prints it without searching.
func runShow(out io.Writer, flags *layoutFlags) error {
	// Step 1: Load the layout and build the initial board.
	l, err := flags.resolve()
	if err != nil {
		return err
	}
	b, err := l.Board()
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidPuzzle, fmt.Sprintf("invalid layout %q", l.Name), err)
	}

	// Step 2: Output in the format selected by --json.
	result := newShowResult(l, b)
	if IsJSONOutput() {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	printShowText(out, result, b)
	return nil
}

// newShowResult collects what the show command prints. Slices are always
// non-nil so that JSON output shows [] instead of null.
func newShowResult(l layout.Layout, b *board.Board) showJSON {
	result := showJSON{
		Layout:     l.Name,
		Capacity:   l.Capacity,
		Containers: make([][]string, 0, len(l.Containers)),
		Solved:     b.Solved(),
		LegalMoves: b.LegalMoves(),
		Unbalanced: make([]string, 0),
	}
	if result.LegalMoves == nil {
		result.LegalMoves = []board.Pour{}
	}
	for _, units := range l.Containers {
		names := make([]string, 0, len(units))
		for _, c := range units {
			names = append(names, c.String())
		}
		result.Containers = append(result.Containers, names)
	}
	for _, c := range l.UnbalancedColors() {
		result.Unbalanced = append(result.Unbalanced, c.String())
	}
	return result
}

// printShowText prints the board followed by a short summary:
//
//	Layout: last-step (capacity 4)
//	0: [blue blue]
//	1: [blue blue]
//
//	Legal pours: 0 -> 1, 1 -> 0
func printShowText(w io.Writer, r showJSON, b *board.Board) {
	fmt.Fprintf(w, "Layout: %s (capacity %d)\n", r.Layout, r.Capacity)
	fmt.Fprint(w, b.String())
	fmt.Fprintln(w)

	if r.Solved {
		fmt.Fprintln(w, "Solved: yes")
	}
	// A board with no legal pours is either solved or stuck.
	if len(r.LegalMoves) == 0 {
		fmt.Fprintln(w, "Legal pours: none")
	} else {
		pours := make([]string, 0, len(r.LegalMoves))
		for _, p := range r.LegalMoves {
			pours = append(pours, p.String())
		}
		fmt.Fprintf(w, "Legal pours: %s\n", strings.Join(pours, ", "))
	}
	if len(r.Unbalanced) > 0 {
		fmt.Fprintf(w, "Warning: colors %s cannot fill whole containers\n", strings.Join(r.Unbalanced, ", "))
	}
}
