// Package layout provides initial puzzle layouts: the built-in ones shipped
// with the binary and puzzle files in YAML or JSONC.
//
// A puzzle file lists containers bottom unit first:
//
//	name: my-puzzle
//	capacity: 4
//	containers:
//	  - [purple, green, brown, yellow]
//	  - []
//
// YAML files are decoded with gopkg.in/yaml.v3. JSON files may contain
// comments and trailing commas; github.com/tidwall/jsonc strips them before
// encoding/json parses the result.
package layout

import (
	"fmt"
	"sort"

	"github.com/shinji-kodama/watersort/internal/board"
	"github.com/shinji-kodama/watersort/internal/model"
)

// Layout is an initial arrangement of units in containers.
type Layout struct {
	// Name identifies the layout, e.g. "sample" or the file's name field.
	Name string `json:"name" yaml:"name"`

	// Description is a one-line summary shown by the layouts command.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Capacity is the number of units each container holds.
	Capacity int `json:"capacity" yaml:"capacity"`

	// Containers holds the units of each container, bottom first.
	Containers [][]model.Color `json:"containers" yaml:"containers"`
}

// Board builds the initial board for the layout.
func (l Layout) Board() (*board.Board, error) {
	containers := make([]model.Container, 0, len(l.Containers))
	for i, units := range l.Containers {
		c, err := model.NewContainer(l.Capacity, units...)
		if err != nil {
			return nil, fmt.Errorf("container %d: %w", i, err)
		}
		containers = append(containers, c)
	}
	return board.New(containers...), nil
}

// ColorCounts returns how many units of each color the layout holds.
func (l Layout) ColorCounts() map[model.Color]int {
	counts := make(map[model.Color]int)
	for _, units := range l.Containers {
		for _, u := range units {
			counts[u]++
		}
	}
	return counts
}

// UnbalancedColors returns, in sorted order, the colors whose unit count is
// not a multiple of the capacity. Such a layout can never be solved, since
// a complete container holds exactly Capacity units of one color.
func (l Layout) UnbalancedColors() []model.Color {
	if l.Capacity <= 0 {
		return nil
	}
	var out []model.Color
	for c, n := range l.ColorCounts() {
		if n%l.Capacity != 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
