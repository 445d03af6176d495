// Package board holds the whole-table state of a water sort puzzle and the
// pour transition rule.
//
// A Board is an immutable snapshot: Apply returns a successor Board instead
// of mutating in place, so a search can backtrack simply by dropping the
// successor. LegalMoves enumerates pours in (from, to) index order, which
// is the exploration order of package solver.
package board
