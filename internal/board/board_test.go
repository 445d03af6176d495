package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/shinji-kodama/watersort/internal/model"
)

// units returns the units of container i, bottom first.
func units(t *testing.T, b *Board, i int) []m.Color {
	t.Helper()
	return b.Containers()[i].Units()
}

// TestSolved covers the board-level completion rule.
func TestSolved(t *testing.T) {
	tests := []struct {
		name     string
		board    *Board
		expected bool
	}{
		{"no containers", New(), true},
		{"all empty", New(m.MustContainer(), m.MustContainer()), true},
		{
			name: "pre-sorted with spare",
			board: New(
				m.MustContainer(m.Orange, m.Orange, m.Orange, m.Orange),
				m.MustContainer(m.Green, m.Green, m.Green, m.Green),
				m.MustContainer(m.Yellow, m.Yellow, m.Yellow, m.Yellow),
				m.MustContainer(m.Blue, m.Blue, m.Blue, m.Blue),
				m.MustContainer(m.Red, m.Red, m.Red, m.Red),
				m.MustContainer(),
			),
			expected: true,
		},
		{"split color", New(m.MustContainer(m.Blue, m.Blue), m.MustContainer(m.Blue, m.Blue)), false},
		{"mixed full", New(m.MustContainer(m.Blue, m.Red, m.Blue, m.Blue)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.board.Solved())
		})
	}
}

// TestApply_Errors checks every transition failure and that the receiver is
// left untouched.
func TestApply_Errors(t *testing.T) {
	b := New(
		m.MustContainer(m.Red, m.Blue),
		m.MustContainer(m.Green, m.Red),
		m.MustContainer(m.Blue, m.Blue, m.Blue, m.Blue),
		m.MustContainer(),
		m.MustContainer(m.Blue, m.Red, m.Red, m.Blue),
	)
	before := b.String()

	tests := []struct {
		name string
		pour Pour
		want error
	}{
		{"source out of range", Pour{From: 5, To: 0}, ErrInvalidIndex},
		{"destination out of range", Pour{From: 0, To: -1}, ErrInvalidIndex},
		{"self pour", Pour{From: 1, To: 1}, ErrSelfPour},
		{"color mismatch", Pour{From: 0, To: 1}, ErrColorMismatch},
		{"empty source onto non-empty destination", Pour{From: 3, To: 0}, ErrColorMismatch},
		{"destination full", Pour{From: 0, To: 4}, ErrDestinationFull},
		{"destination full same color", Pour{From: 0, To: 2}, ErrDestinationFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := b.Apply(tt.pour)
			require.Error(t, err)
			assert.Nil(t, next)
			assert.ErrorIs(t, err, tt.want)

			var pourErr *PourError
			require.True(t, errors.As(err, &pourErr))
			assert.Equal(t, tt.pour, pourErr.Pour)
			assert.False(t, b.IsLegal(tt.pour))
		})
	}

	assert.Equal(t, before, b.String(), "failed pours must not change the board")
	assert.Empty(t, b.Moves())
}

// TestApply_SourceEmpty covers the empty-to-empty pour, the only way to
// reach the source-empty failure.
func TestApply_SourceEmpty(t *testing.T) {
	b := New(m.MustContainer(), m.MustContainer())
	_, err := b.Apply(Pour{From: 0, To: 1})
	assert.ErrorIs(t, err, ErrSourceEmpty)
}

// TestApply_RunPour verifies that a pour moves the homogeneous top run,
// bounded by the free space in the destination.
func TestApply_RunPour(t *testing.T) {
	tests := []struct {
		name    string
		src     m.Container
		dst     m.Container
		wantSrc []m.Color
		wantDst []m.Color
	}{
		{
			name:    "whole run into empty",
			src:     m.MustContainer(m.Blue, m.Red, m.Red),
			dst:     m.MustContainer(),
			wantSrc: []m.Color{m.Blue},
			wantDst: []m.Color{m.Red, m.Red},
		},
		{
			name:    "only the top run moves from a mixed source",
			src:     m.MustContainer(m.Red, m.Blue, m.Red, m.Red),
			dst:     m.MustContainer(m.Green, m.Red),
			wantSrc: []m.Color{m.Red, m.Blue},
			wantDst: []m.Color{m.Green, m.Red, m.Red, m.Red},
		},
		{
			name:    "run truncated by destination capacity",
			src:     m.MustContainer(m.Blue, m.Blue, m.Blue),
			dst:     m.MustContainer(m.Red, m.Blue, m.Blue),
			wantSrc: []m.Color{m.Blue, m.Blue},
			wantDst: []m.Color{m.Red, m.Blue, m.Blue, m.Blue},
		},
		{
			name:    "source emptied",
			src:     m.MustContainer(m.Cyan, m.Cyan),
			dst:     m.MustContainer(m.Cyan),
			wantSrc: []m.Color{},
			wantDst: []m.Color{m.Cyan, m.Cyan, m.Cyan},
		},
		{
			name:    "single unit",
			src:     m.MustContainer(m.Grey, m.Pink),
			dst:     m.MustContainer(m.Pink),
			wantSrc: []m.Color{m.Grey},
			wantDst: []m.Color{m.Pink, m.Pink},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.src, tt.dst)
			next, err := b.Apply(Pour{From: 0, To: 1})
			require.NoError(t, err)

			assert.Equal(t, tt.wantSrc, units(t, next, 0))
			assert.Equal(t, tt.wantDst, units(t, next, 1))
			assert.Equal(t, []Pour{{From: 0, To: 1}}, next.Moves())

			// The original snapshot is unchanged.
			assert.Equal(t, tt.src.Units(), units(t, b, 0))
			assert.Equal(t, tt.dst.Units(), units(t, b, 1))
			assert.Empty(t, b.Moves())
		})
	}
}

// TestApply_HistoryIsOwned verifies that sibling successors do not share
// their move history.
func TestApply_HistoryIsOwned(t *testing.T) {
	b := New(
		m.MustContainer(m.Red),
		m.MustContainer(),
		m.MustContainer(),
	)
	first, err := b.Apply(Pour{From: 0, To: 1})
	require.NoError(t, err)

	left, err := first.Apply(Pour{From: 1, To: 0})
	require.NoError(t, err)
	right, err := first.Apply(Pour{From: 1, To: 2})
	require.NoError(t, err)

	assert.Equal(t, []Pour{{0, 1}, {1, 0}}, left.Moves())
	assert.Equal(t, []Pour{{0, 1}, {1, 2}}, right.Moves())
	assert.Equal(t, []Pour{{0, 1}}, first.Moves())
}

// TestLegalMoves checks enumeration order, the absence of self pours, and
// that every returned pour is legal.
func TestLegalMoves(t *testing.T) {
	b := New(
		m.MustContainer(m.Red, m.Blue),
		m.MustContainer(m.Blue),
		m.MustContainer(),
		m.MustContainer(m.Red, m.Red, m.Red, m.Red),
	)

	moves := b.LegalMoves()
	assert.Equal(t, []Pour{
		{From: 0, To: 1},
		{From: 0, To: 2},
		{From: 1, To: 0},
		{From: 1, To: 2},
		{From: 3, To: 2},
	}, moves)

	for _, p := range moves {
		assert.NotEqual(t, p.From, p.To)
		assert.True(t, b.IsLegal(p), p.String())
	}
}

// TestLegalMoves_None verifies a board with no legal pour yields no moves.
func TestLegalMoves_None(t *testing.T) {
	b := New(
		m.MustContainer(m.Red, m.Blue, m.Red, m.Blue),
		m.MustContainer(m.Blue, m.Red, m.Blue, m.Red),
	)
	assert.Empty(t, b.LegalMoves())
}

// TestNew_CopiesContainers verifies the board does not alias caller data.
func TestNew_CopiesContainers(t *testing.T) {
	c := m.MustContainer(m.Red)
	b := New(c)
	require.NoError(t, c.Push(m.Blue))
	assert.Equal(t, []m.Color{m.Red}, units(t, b, 0))
}

// TestKey verifies that keys depend on container contents only.
func TestKey(t *testing.T) {
	a := New(m.MustContainer(m.Red), m.MustContainer())
	b := New(m.MustContainer(), m.MustContainer(m.Red))

	moved, err := a.Apply(Pour{From: 0, To: 1})
	require.NoError(t, err)

	assert.Equal(t, b.Key(), moved.Key())
	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotEqual(t,
		New(m.MustContainer(m.Red, m.Red)).Key(),
		New(m.MustContainer(m.Red), m.MustContainer(m.Red)).Key())
}

// TestString checks the per-line rendering used by the show command.
func TestString(t *testing.T) {
	b := New(m.MustContainer(m.Red, m.Blue), m.MustContainer())
	assert.Equal(t, "0: [red blue]\n1: []\n", b.String())
	assert.Equal(t, "2 -> 7", Pour{From: 2, To: 7}.String())
}
