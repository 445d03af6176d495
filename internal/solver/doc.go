// Package solver finds a pour sequence that solves a water sort board.
//
// The search is a plain depth-first search: it tries the legal pours of a
// board in (from, to) order, recurses into each successor and stops at the
// first solved board. No heuristic ordering is applied, so the solution
// returned is the first one in that order, not the shortest.
//
// Two prunings keep the search finite and cheaper without changing which
// solution is found: boards already on the current path are skipped, and
// boards whose subtree was fully explored without success are remembered.
package solver
