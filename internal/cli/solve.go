// Package cli — solve.go implements the "watersort solve" command.
//
// The solve command builds the initial board from a built-in layout or a
// puzzle file, runs the depth-first solver and prints the pours of the
// first solution found. A puzzle without a solution prints an empty list
// and still exits 0.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/watersort/internal/board"
	"github.com/shinji-kodama/watersort/internal/layout"
	"github.com/shinji-kodama/watersort/internal/metrics"
	"github.com/shinji-kodama/watersort/internal/model"
	"github.com/shinji-kodama/watersort/internal/solver"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// layoutFlags selects the puzzle to work on. It is shared by solve and show.
type layoutFlags struct {
	// name is a built-in layout name (see "watersort layouts").
	name string

	// file is the path to a YAML or JSONC puzzle file. It takes the place
	// of a built-in layout.
	file string
}

// bind registers --layout and --file on cmd.
func (f *layoutFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "layout", "l", layout.DefaultName, "Built-in layout to use")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Puzzle file (.yaml, .yml, .json, .jsonc)")
	cmd.MarkFlagsMutuallyExclusive("layout", "file")
}

// resolve loads the selected layout.
func (f *layoutFlags) resolve() (layout.Layout, error) {
	if f.file != "" {
		VerboseLog("Loading puzzle file %s", f.file)
		return layout.Load(f.file)
	}
	VerboseLog("Using built-in layout %q", f.name)
	return layout.Builtin(f.name)
}

// solveFlags holds the flag values for the solve command.
type solveFlags struct {
	layoutFlags

	// format is the output format: text, json or yaml. --json overrides it.
	format string

	// timeout bounds the search. Zero means no limit.
	timeout time.Duration

	// noMemo disables the dead-state cache of the solver.
	noMemo bool

	// metrics prints search metrics in Prometheus text format to stderr.
	metrics bool
}

// NewSolveCommand creates the "solve" cobra command.
func NewSolveCommand() *cobra.Command {
	flags := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a pour sequence that solves a puzzle",
		Long: `Solve a water sort puzzle and print the pours of the first solution found.

Pours are printed as "from -> to" container indices, counted from 0.
The search tries pours in (from, to) order, so the solution is the first
one in that order, not necessarily the shortest.

The default "sample" layout (15 containers, 13 colors) is large enough
that an exhaustive search can run for a very long time. Pass --timeout to
bound it; the command exits with code 5 when the limit is reached.

Examples:
  watersort solve --timeout 1m
  watersort solve --layout single-free-tube
  watersort solve --file puzzle.yaml --format yaml
  watersort solve --timeout 30s --json`,

		// The puzzle comes from --layout or --file, never from arguments.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		// Output goes through cmd's writers so tests can capture it.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	// --layout and --file are shared with the show command.
	flags.bind(cmd)
	cmd.Flags().StringVar(&flags.format, "format", formatText, "Output format: text, json, yaml")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Stop searching after this long (0 = no limit)")
	cmd.Flags().BoolVar(&flags.noMemo, "no-memo", false, "Do not remember unsolvable states")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Print search metrics to stderr")

	return cmd
}

// runSolve is the main logic function for the solve command.
// Results go to out; logs and --metrics output go to errOut.
func runSolve(ctx context.Context, out, errOut io.Writer, flags *solveFlags) error {
	// Step 1: Validate --format before doing any work.
	format, err := outputFormat(flags.format)
	if err != nil {
		return err
	}

	// Step 2: Load the layout. resolve already returns CLIErrors with the
	// right exit code (unknown layout, missing or invalid file).
	l, err := flags.resolve()
	if err != nil {
		return err
	}
	b, err := l.Board()
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidPuzzle, fmt.Sprintf("invalid layout %q", l.Name), err)
	}
	// An unbalanced layout is still searched; the search simply reports
	// no solution once it is exhausted.
	if unbalanced := l.UnbalancedColors(); len(unbalanced) > 0 {
		VerboseLog("Colors %v cannot fill whole containers; expect no solution", unbalanced)
	}

	// Step 3: Bound the search. cmd.Context() is only set while cobra is
	// executing, so guard against nil for direct callers.
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	// Step 4: Configure the solver. Metrics are only collected when they
	// will be printed.
	opts := []solver.Option{solver.WithLogger(newLogger(errOut))}
	if flags.noMemo {
		opts = append(opts, solver.WithoutMemo())
	}
	var rec *metrics.Recorder
	if flags.metrics {
		rec = metrics.NewRecorder()
		opts = append(opts, solver.WithMetrics(rec))
	}

	VerboseLog("Solving %q: %d containers, capacity %d", l.Name, b.Len(), l.Capacity)
	moves, stats, err := solver.New(opts...).Solve(ctx, b)
	VerboseLog("Visited %d states in %v (max depth %d, %d cycles and %d dead states skipped)",
		stats.Nodes, stats.Duration.Round(time.Millisecond), stats.MaxDepth,
		stats.CyclesSkipped, stats.DeadSkipped)

	// Step 5: Print metrics for every outcome, including timeouts, so a
	// slow search can still be inspected.
	if rec != nil {
		if werr := rec.WriteText(errOut); werr != nil {
			VerboseLog("Warning: %v", werr)
		}
	}

	// Step 6: Map the search result. An exhausted search is a normal
	// outcome and prints an empty result with exit code 0. Only a timeout
	// (or a caller deadline) is an error.
	switch {
	case err == nil:
	case errors.Is(err, solver.ErrNoSolution):
		moves = nil
	case errors.Is(err, context.DeadlineExceeded):
		return model.WrapCLIError(model.ExitTimeout,
			"search timed out before a solution was found", err)
	default:
		// context.Canceled and anything unexpected exit with code 1.
		return err
	}

	// Step 7: Print the result in the selected format.
	result := newSolveResult(l.Name, b, moves, err == nil, stats)
	return printSolveResult(out, format, result)
}

// outputFormat resolves the effective output format from --format and --json.
func outputFormat(format string) (string, error) {
	// The global --json flag wins, matching the other commands.
	if IsJSONOutput() {
		return formatJSON, nil
	}
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	default:
		return "", model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid format %q: valid values are text, json, yaml", format))
	}
}

// solveResult is the JSON/YAML output structure of the solve command.
type solveResult struct {
	Layout        string       `json:"layout" yaml:"layout"`
	Solved        bool         `json:"solved" yaml:"solved"`
	AlreadySolved bool         `json:"alreadySolved" yaml:"alreadySolved"`
	Moves         []board.Pour `json:"moves" yaml:"moves"`
	Stats         statsResult  `json:"stats" yaml:"stats"`
}

// statsResult mirrors solver.Stats with a serializable duration.
type statsResult struct {
	Nodes         int   `json:"nodes" yaml:"nodes"`
	MaxDepth      int   `json:"maxDepth" yaml:"maxDepth"`
	CyclesSkipped int   `json:"cyclesSkipped" yaml:"cyclesSkipped"`
	DeadSkipped   int   `json:"deadSkipped" yaml:"deadSkipped"`
	DurationMs    int64 `json:"durationMs" yaml:"durationMs"`
}

// newSolveResult builds the output structure. solved is false when the
// search was exhausted; AlreadySolved additionally needs the initial board
// to be solved, in which case moves is empty.
func newSolveResult(name string, b *board.Board, moves []board.Pour, solved bool, stats solver.Stats) solveResult {
	if moves == nil {
		// Encode an empty list rather than null.
		moves = []board.Pour{}
	}
	return solveResult{
		Layout:        name,
		Solved:        solved,
		AlreadySolved: solved && b.Solved(),
		Moves:         moves,
		Stats: statsResult{
			Nodes:         stats.Nodes,
			MaxDepth:      stats.MaxDepth,
			CyclesSkipped: stats.CyclesSkipped,
			DeadSkipped:   stats.DeadSkipped,
			DurationMs:    stats.Duration.Milliseconds(),
		},
	}
}

// printSolveResult writes the result in the requested format.
func printSolveResult(w io.Writer, format string, r solveResult) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		// yaml.v3 defaults to 4-space indentation; use 2 to match the
		// JSON output and typical hand-written puzzle files.
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, formatMoves(r))
		return err
	}
}

// formatMoves renders the text output of the solve command: one numbered
// pour per line, or a one-line message when there is nothing to pour.
//
// Example:
//
//	 1. 0 -> 5
//	 2. 4 -> 0
func formatMoves(r solveResult) string {
	switch {
	case r.AlreadySolved:
		return "Already solved.\n"
	case !r.Solved:
		return "No solution found.\n"
	}

	// Right-align the step numbers to the widest one, e.g. " 9." and "10.".
	width := len(fmt.Sprint(len(r.Moves)))
	var sb strings.Builder
	for i, p := range r.Moves {
		fmt.Fprintf(&sb, "%*d. %s\n", width, i+1, p)
	}
	return sb.String()
}
