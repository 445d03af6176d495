package model

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCapacity is the number of units a container holds in the
// standard puzzle.
const DefaultCapacity = 4

var (
	// ErrEmptyContainer is returned when a unit is popped from an empty container.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrOverCapacity is returned when a unit is pushed onto a full container,
	// or a container is built with more units than its capacity.
	ErrOverCapacity = errors.New("container is over capacity")
)

// Container is a bounded stack of colored units, a "tube" in common
// puzzle terminology.
//
// Units are stored bottom first; the last element is the top, which is the
// only unit that can be poured out. The number of units never exceeds the
// capacity.
type Container struct {
	units    []Color
	capacity int
}

// NewContainer builds a container with the given capacity holding units
// (bottom first). It fails when capacity is not positive or when there are
// more units than fit.
func NewContainer(capacity int, units ...Color) (Container, error) {
	if capacity <= 0 {
		return Container{}, fmt.Errorf("container capacity must be positive, got %d", capacity)
	}
	if len(units) > capacity {
		return Container{}, fmt.Errorf("%w: %d units for capacity %d", ErrOverCapacity, len(units), capacity)
	}
	c := Container{
		units:    make([]Color, len(units), capacity),
		capacity: capacity,
	}
	copy(c.units, units)
	return c, nil
}

// MustContainer builds a container of DefaultCapacity and panics when the
// units do not fit. It is meant for fixed layouts and tests.
func MustContainer(units ...Color) Container {
	c, err := NewContainer(DefaultCapacity, units...)
	if err != nil {
		panic(err)
	}
	return c
}

// Capacity returns the maximum number of units the container holds.
func (c Container) Capacity() int {
	return c.capacity
}

// Len returns the number of units currently in the container.
func (c Container) Len() int {
	return len(c.units)
}

// Units returns a copy of the units, bottom first.
func (c Container) Units() []Color {
	out := make([]Color, len(c.units))
	copy(out, c.units)
	return out
}

// Clone returns a deep copy that shares no storage with c.
func (c Container) Clone() Container {
	out := Container{
		units:    make([]Color, len(c.units), c.capacity),
		capacity: c.capacity,
	}
	copy(out.units, c.units)
	return out
}

// IsComplete reports whether the container needs no further moves:
// it is empty, or it is full and every unit has the same color.
func (c Container) IsComplete() bool {
	if c.IsEmpty() {
		return true
	}
	if !c.IsFull() {
		return false
	}
	first := c.units[0]
	for _, u := range c.units[1:] {
		if u != first {
			return false
		}
	}
	return true
}

// IsFull reports whether the container is at capacity.
func (c Container) IsFull() bool {
	return len(c.units) == c.capacity
}

// IsEmpty reports whether the container holds no units.
func (c Container) IsEmpty() bool {
	return len(c.units) == 0
}

// Top returns the topmost unit. The boolean is false for an empty container.
func (c Container) Top() (Color, bool) {
	if c.IsEmpty() {
		return "", false
	}
	return c.units[len(c.units)-1], true
}

// PopTop removes and returns the topmost unit.
func (c *Container) PopTop() (Color, error) {
	if c.IsEmpty() {
		return "", ErrEmptyContainer
	}
	last := len(c.units) - 1
	top := c.units[last]
	c.units = c.units[:last]
	return top, nil
}

// Push places a unit on top of the container.
func (c *Container) Push(color Color) error {
	if c.IsFull() {
		return ErrOverCapacity
	}
	c.units = append(c.units, color)
	return nil
}

// String renders the units bottom first, e.g. "[blue blue red]".
func (c Container) String() string {
	names := make([]string, len(c.units))
	for i, u := range c.units {
		names[i] = u.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}
