package board

import (
	"errors"
	"fmt"
)

// Transition failures reported by Board.Apply. They are always wrapped in a
// *PourError; test for them with errors.Is.
var (
	// ErrInvalidIndex is returned when a pour references a container index
	// outside the board.
	ErrInvalidIndex = errors.New("invalid container index")

	// ErrSelfPour is returned when a pour has the same source and destination.
	ErrSelfPour = errors.New("source and destination are the same container")

	// ErrColorMismatch is returned when the destination is not empty and its
	// top color differs from the source's top color.
	ErrColorMismatch = errors.New("top colors do not match")

	// ErrDestinationFull is returned when the destination has no room left.
	ErrDestinationFull = errors.New("no space left in destination")

	// ErrSourceEmpty is returned when the source has nothing to pour.
	ErrSourceEmpty = errors.New("source container is empty")
)

// PourError records which pour failed and why.
type PourError struct {
	Pour Pour
	Err  error
}

func (e *PourError) Error() string {
	return fmt.Sprintf("pour %s: %v", e.Pour, e.Err)
}

// Unwrap returns the underlying transition failure.
func (e *PourError) Unwrap() error {
	return e.Err
}
