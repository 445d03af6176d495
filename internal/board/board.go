package board

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/watersort/internal/model"
)

// Pour moves the homogeneous top run of one container onto another.
type Pour struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// String renders the pour as "from -> to".
func (p Pour) String() string {
	return fmt.Sprintf("%d -> %d", p.From, p.To)
}

// Board is an immutable snapshot of every container on the table together
// with the pours that produced it from the initial layout.
//
// Containers keep their identity by index for the lifetime of a puzzle.
// Apply never mutates its receiver; it returns a new Board that owns its own
// copies of the containers and of the move history.
type Board struct {
	containers []model.Container
	moves      []Pour
}

// New creates an initial board with an empty move history. The containers
// are copied, so later changes by the caller do not leak into the board.
func New(containers ...model.Container) *Board {
	b := &Board{containers: make([]model.Container, len(containers))}
	for i, c := range containers {
		b.containers[i] = c.Clone()
	}
	return b
}

// Len returns the number of containers.
func (b *Board) Len() int {
	return len(b.containers)
}

// Containers returns deep copies of the containers in index order.
func (b *Board) Containers() []model.Container {
	out := make([]model.Container, len(b.containers))
	for i, c := range b.containers {
		out[i] = c.Clone()
	}
	return out
}

// Moves returns a copy of the pours applied since the initial layout.
func (b *Board) Moves() []Pour {
	out := make([]Pour, len(b.moves))
	copy(out, b.moves)
	return out
}

// Solved reports whether every container is complete. A board with no
// containers is solved.
func (b *Board) Solved() bool {
	for _, c := range b.containers {
		if !c.IsComplete() {
			return false
		}
	}
	return true
}

// Apply performs a pour and returns the resulting board with the pour
// appended to its history.
//
// A single pour moves the whole run of same-colored units on top of the
// source, stopping early when the destination fills up. An empty destination
// accepts any color; a non-empty one only accepts its own top color.
func (b *Board) Apply(p Pour) (*Board, error) {
	// Step 1: Reject pours that do not name two distinct containers.
	n := len(b.containers)
	if p.From < 0 || p.From >= n || p.To < 0 || p.To >= n {
		return nil, &PourError{Pour: p, Err: ErrInvalidIndex}
	}
	if p.From == p.To {
		return nil, &PourError{Pour: p, Err: ErrSelfPour}
	}

	// Step 2: Check the color rule before copying anything.
	// An empty destination accepts any color. A non-empty one only accepts
	// its own top color, so an empty source is a mismatch here as well.
	srcTop, srcOK := b.containers[p.From].Top()
	dstTop, dstOK := b.containers[p.To].Top()
	if dstOK && (!srcOK || srcTop != dstTop) {
		return nil, &PourError{Pour: p, Err: ErrColorMismatch}
	}

	// Step 3: Work on a copy so that a failed pour leaves b untouched.
	next := b.clone()
	src := &next.containers[p.From]
	dst := &next.containers[p.To]
	// Step 4: Move units one at a time. The first iteration always runs,
	// so a full destination or an empty source is reported as an error
	// instead of producing a no-op pour.
	for {
		if dst.IsFull() {
			return nil, &PourError{Pour: p, Err: ErrDestinationFull}
		}
		unit, err := src.PopTop()
		if err != nil {
			return nil, &PourError{Pour: p, Err: ErrSourceEmpty}
		}
		if err := dst.Push(unit); err != nil {
			return nil, &PourError{Pour: p, Err: err}
		}

		// Stop when the source runs out, when the next unit has a different
		// color than the one just moved, or when the destination fills up.
		// In the last case the rest of the run stays in the source.
		top, ok := src.Top()
		if !ok || top != unit || dst.IsFull() {
			break
		}
	}

	// Step 5: Record the pour. clone reserved room for it, so the append
	// never shares a backing array with b's history.
	next.moves = append(next.moves, p)
	return next, nil
}

// IsLegal reports whether Apply would succeed for p.
func (b *Board) IsLegal(p Pour) bool {
	_, err := b.Apply(p)
	return err == nil
}

// LegalMoves enumerates every legal pour between distinct containers,
// ordered by source index and then by destination index. The order decides
// which solution a depth-first search finds first.
func (b *Board) LegalMoves() []Pour {
	// nil when nothing is legal; callers only range over the result.
	var moves []Pour
	for i := range b.containers {
		for j := range b.containers {
			// Self-pours are always illegal, skip them without calling Apply.
			if i == j {
				continue
			}
			p := Pour{From: i, To: j}
			if b.IsLegal(p) {
				moves = append(moves, p)
			}
		}
	}
	return moves
}

// Key encodes the containers (not the history) into a string that is equal
// for two boards exactly when their containers hold the same units.
func (b *Board) Key() string {
	// Every container starts with '|', so an empty container still shows
	// up and "[a] []" cannot collide with "[] [a]".
	var sb strings.Builder
	for _, c := range b.containers {
		sb.WriteByte('|')
		for i, u := range c.Units() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(string(u))
		}
	}
	return sb.String()
}

// String renders one line per container, e.g. "0: [blue red]".
func (b *Board) String() string {
	var sb strings.Builder
	for i, c := range b.containers {
		fmt.Fprintf(&sb, "%d: %s\n", i, c)
	}
	return sb.String()
}

// clone returns a deep copy of b. The history gets one slot of spare
// capacity for the pour Apply is about to record.
func (b *Board) clone() *Board {
	next := &Board{
		containers: make([]model.Container, len(b.containers)),
		moves:      make([]Pour, len(b.moves), len(b.moves)+1),
	}
	for i, c := range b.containers {
		next.containers[i] = c.Clone()
	}
	copy(next.moves, b.moves)
	return next
}
