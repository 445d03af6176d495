package solver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shinji-kodama/watersort/internal/board"
	"github.com/shinji-kodama/watersort/internal/metrics"
)

// ErrNoSolution is returned when every legal pour sequence has been
// explored without reaching a solved board.
var ErrNoSolution = errors.New("no solution found")

// Stats captures the cost of one search.
type Stats struct {
	// Nodes is the number of board states visited.
	Nodes int
	// MaxDepth is the longest pour sequence explored.
	MaxDepth int
	// CyclesSkipped counts states skipped because they were already on the
	// current search path.
	CyclesSkipped int
	// DeadSkipped counts states skipped because an earlier, complete
	// exploration proved them unsolvable.
	DeadSkipped int
	Duration    time.Duration
}

// Solver runs a depth-first search over pour sequences and returns the first
// solution found in LegalMoves order.
type Solver struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
	memo     bool
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for search start and finish events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records every finished search on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Solver) {
		s.recorder = r
	}
}

// WithoutMemo disables the dead-state cache. Results are the same either
// way; only the amount of repeated work changes.
func WithoutMemo() Option {
	return func(s *Solver) {
		s.memo = false
	}
}

// New creates a Solver. By default it logs nowhere, records no metrics and
// remembers dead states.
func New(opts ...Option) *Solver {
	s := &Solver{
		logger: slog.New(slog.DiscardHandler),
		memo:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve searches for a pour sequence that solves b.
//
// The returned moves are the full history of the first solved board reached;
// for a board that is already solved this is b's own history, usually empty.
// Solve returns ErrNoSolution when the search is exhausted and ctx.Err()
// when the context ends first.
func (s *Solver) Solve(ctx context.Context, b *board.Board) ([]board.Pour, Stats, error) {
	start := time.Now()
	s.logger.Debug("search started", "containers", b.Len(), "memo", s.memo)

	st := &search{
		ctx:    ctx,
		memo:   s.memo,
		onPath: make(map[string]struct{}),
		dead:   make(map[string]struct{}),
	}
	// The exhaustive flag only matters inside the recursion.
	moves, found, _ := st.dfs(b, 0)

	stats := Stats{
		Nodes:         st.nodes,
		MaxDepth:      st.maxDepth,
		CyclesSkipped: st.cycles,
		DeadSkipped:   st.deadSkipped,
		Duration:      time.Since(start),
	}

	// A found solution wins over a context that expired right after it.
	var err error
	outcome := metrics.OutcomeSolved
	switch {
	case found:
	case ctx.Err() != nil:
		err = ctx.Err()
		outcome = metrics.OutcomeCancelled
	default:
		err = ErrNoSolution
		outcome = metrics.OutcomeUnsolvable
	}

	s.logger.Debug("search finished",
		"outcome", outcome,
		"moves", len(moves),
		"nodes", stats.Nodes,
		"max_depth", stats.MaxDepth,
		"cycles_skipped", stats.CyclesSkipped,
		"dead_skipped", stats.DeadSkipped,
		"dur", stats.Duration.Round(time.Millisecond),
	)
	if s.recorder != nil {
		s.recorder.ObserveSearch(metrics.Search{
			Outcome:       outcome,
			Nodes:         stats.Nodes,
			CyclesSkipped: stats.CyclesSkipped,
			DeadSkipped:   stats.DeadSkipped,
			MaxDepth:      stats.MaxDepth,
			Moves:         len(moves),
			Duration:      stats.Duration,
		})
	}
	if err != nil {
		return nil, stats, err
	}
	return moves, stats, nil
}

// Solve returns the pours that solve b, or an empty slice when no solution
// exists. An already solved board also yields an empty slice.
func Solve(b *board.Board) []board.Pour {
	moves, _, err := New().Solve(context.Background(), b)
	if err != nil {
		return []board.Pour{}
	}
	return moves
}

// search is the per-call state of one depth-first search.
type search struct {
	ctx  context.Context
	memo bool

	// onPath holds the keys of the boards on the current recursion path.
	onPath map[string]struct{}
	// dead holds the keys of boards whose whole subtree was explored
	// without a solution and without any cycle skip below them.
	dead map[string]struct{}

	nodes       int
	maxDepth    int
	cycles      int
	deadSkipped int
}

// dfs explores b and its successors. exhaustive is false when part of the
// subtree was cut off by a cycle skip or by cancellation, in which case the
// absence of a solution proves nothing about b.
func (s *search) dfs(b *board.Board, depth int) (moves []board.Pour, found, exhaustive bool) {
	// Cancellation cuts the subtree short, so nothing below may be
	// remembered as dead.
	if s.ctx.Err() != nil {
		return nil, false, false
	}
	s.nodes++
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	// The board's history is the answer; Apply appended every pour.
	if b.Solved() {
		return b.Moves(), true, true
	}

	// A board already on the path can only lead back to itself. The skip
	// is reported as non-exhaustive: the ancestor that owns this key has
	// not finished exploring, so the branch proves nothing yet.
	key := b.Key()
	if _, ok := s.onPath[key]; ok {
		s.cycles++
		return nil, false, false
	}
	// A dead board was fully explored earlier without success. Skipping it
	// is exhaustive, since exploring it again would give the same result.
	if _, ok := s.dead[key]; ok {
		s.deadSkipped++
		return nil, false, true
	}

	s.onPath[key] = struct{}{}
	defer delete(s.onPath, key)

	// Try pours in LegalMoves order and stop at the first solution, so the
	// result is the first solution in (from, to) order.
	exhaustive = true
	for _, p := range b.LegalMoves() {
		// LegalMoves already filtered illegal pours, so this only fails if
		// the two ever disagree.
		next, err := b.Apply(p)
		if err != nil {
			continue
		}
		m, ok, ex := s.dfs(next, depth+1)
		if ok {
			return m, true, true
		}
		exhaustive = exhaustive && ex
	}

	// Only an exhaustive failure is safe to remember. A subtree that hit a
	// cycle skip may still be solvable when reached via a different path.
	if s.memo && exhaustive {
		s.dead[key] = struct{}{}
	}
	return nil, false, exhaustive
}
