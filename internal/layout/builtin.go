package layout

import (
	"fmt"
	"sort"

	"github.com/shinji-kodama/watersort/internal/model"
)

// DefaultName is the layout solved when no layout or file is given.
const DefaultName = "sample"

// builtins maps layout names to their definitions. Every container uses
// model.DefaultCapacity.
var builtins = map[string]Layout{
	"sample": {
		Name:        "sample",
		Description: "13 colors in 15 containers, two of them empty",
		Containers: [][]model.Color{
			{model.Purple, model.Green, model.Brown, model.Yellow},
			{model.LightBrown, model.Brown, model.Yellow, model.DarkGreen},
			{model.LightBrown, model.Cyan, model.LightGreen, model.Red},
			{model.LightGreen, model.LightGreen, model.Pink, model.Orange},
			{model.LightGreen, model.Green, model.Grey, model.Pink},
			{model.Brown, model.Grey, model.Grey, model.Yellow},
			{model.Cyan, model.Purple, model.Pink, model.DarkGreen},
			{model.Orange, model.LightBrown, model.Cyan, model.Orange},
			{model.Green, model.Red, model.Brown, model.Grey},
			{model.Green, model.Red, model.Cyan, model.Purple},
			{model.Blue, model.LightBrown, model.Red, model.Orange},
			{model.Blue, model.Blue, model.DarkGreen, model.Purple},
			{model.Yellow, model.Blue, model.DarkGreen, model.Pink},
			{},
			{},
		},
	},
	"single-free-tube": {
		Name:        "single-free-tube",
		Description: "5 colors in 6 containers with a single spare",
		Containers: [][]model.Color{
			{model.Orange, model.Blue, model.Green, model.Blue},
			{model.Green, model.Orange, model.Red, model.Blue},
			{model.Green, model.Yellow, model.Green, model.Red},
			{model.Red, model.Orange, model.Orange, model.Red},
			{model.Yellow, model.Yellow, model.Yellow, model.Blue},
			{},
		},
	},
	"ordered": {
		Name:        "ordered",
		Description: "already sorted: 5 full containers and a spare",
		Containers: [][]model.Color{
			{model.Orange, model.Orange, model.Orange, model.Orange},
			{model.Green, model.Green, model.Green, model.Green},
			{model.Yellow, model.Yellow, model.Yellow, model.Yellow},
			{model.Blue, model.Blue, model.Blue, model.Blue},
			{model.Red, model.Red, model.Red, model.Red},
			{},
		},
	},
	"last-step": {
		Name:        "last-step",
		Description: "two half-full containers of one color",
		Containers: [][]model.Color{
			{model.Blue, model.Blue},
			{model.Blue, model.Blue},
		},
	},
}

// Builtin returns a copy of the built-in layout with the given name.
func Builtin(name string) (Layout, error) {
	l, ok := builtins[name]
	if !ok {
		return Layout{}, model.NewCLIError(model.ExitUnknownLayout,
			fmt.Sprintf("unknown layout %q (available: %v)", name, Names()))
	}
	// Copy every container slice so that callers may modify the result
	// without corrupting the shared table.
	out := l
	out.Capacity = model.DefaultCapacity
	out.Containers = make([][]model.Color, len(l.Containers))
	for i, units := range l.Containers {
		out.Containers[i] = append(make([]model.Color, 0, len(units)), units...)
	}
	return out, nil
}

// Names returns the names of all built-in layouts in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
