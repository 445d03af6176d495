package layout

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/watersort/internal/model"
)

func testdataPath(name string) string {
	return filepath.Join("testdata", name)
}

// requireExitCode asserts that err is a CLIError carrying the given code.
func requireExitCode(t *testing.T, err error, code model.ExitCode) {
	t.Helper()
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected CLIError, got %T: %v", err, err)
	assert.Equal(t, code, cliErr.Code)
}

// TestBuiltin_AllLayoutsBuild verifies every built-in layout fits its
// capacity and is color-balanced.
func TestBuiltin_AllLayoutsBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			l, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, l.Name)
			assert.Equal(t, model.DefaultCapacity, l.Capacity)
			assert.Empty(t, l.UnbalancedColors())

			b, err := l.Board()
			require.NoError(t, err)
			assert.Equal(t, len(l.Containers), b.Len())
		})
	}
}

// TestBuiltin_Sample checks the shape of the default puzzle: 15 containers,
// 13 full ones with 4 units each, 2 empty, 13 colors.
func TestBuiltin_Sample(t *testing.T) {
	l, err := Builtin(DefaultName)
	require.NoError(t, err)
	require.Len(t, l.Containers, 15)

	full, empty := 0, 0
	for _, units := range l.Containers {
		switch len(units) {
		case 0:
			empty++
		case 4:
			full++
		}
	}
	assert.Equal(t, 13, full)
	assert.Equal(t, 2, empty)

	counts := l.ColorCounts()
	assert.Len(t, counts, len(model.Colors))
	for _, c := range model.Colors {
		assert.Equal(t, 4, counts[c], c.String())
	}
}

// TestBuiltin_ReturnsCopy verifies callers cannot modify the shared table.
func TestBuiltin_ReturnsCopy(t *testing.T) {
	l, err := Builtin("last-step")
	require.NoError(t, err)
	l.Containers[0][0] = model.Red

	again, err := Builtin("last-step")
	require.NoError(t, err)
	assert.Equal(t, model.Blue, again.Containers[0][0])
}

// TestBuiltin_Unknown checks the exit code for a bad --layout value.
func TestBuiltin_Unknown(t *testing.T) {
	_, err := Builtin("nope")
	require.Error(t, err)
	requireExitCode(t, err, model.ExitUnknownLayout)
	assert.Contains(t, err.Error(), "sample")
}

// TestLoad_YAML verifies a YAML puzzle file round-trips into a layout that
// matches the built-in fixture.
func TestLoad_YAML(t *testing.T) {
	l, err := Load(testdataPath("single-free-tube.yaml"))
	require.NoError(t, err)

	want, err := Builtin("single-free-tube")
	require.NoError(t, err)
	assert.Equal(t, want.Name, l.Name)
	assert.Equal(t, want.Capacity, l.Capacity)
	assert.Equal(t, want.Containers, l.Containers)
}

// TestLoad_JSONC verifies comments, trailing commas, mixed-case colors, the
// default capacity and the name derived from the file name.
func TestLoad_JSONC(t *testing.T) {
	l, err := Load(testdataPath("last-step.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, "last-step", l.Name)
	assert.Equal(t, model.DefaultCapacity, l.Capacity)
	assert.Equal(t, [][]model.Color{
		{model.Blue, model.Blue},
		{model.Blue, model.Blue},
	}, l.Containers)
}

// TestLoad_Errors maps each failure to its exit code.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		code model.ExitCode
		msg  string
	}{
		{"missing file", "does-not-exist.yaml", model.ExitPuzzleNotFound, "not found"},
		{"unsupported extension", "puzzle.txt", model.ExitInvalidPuzzle, "extension"},
		{"unknown color", "unknown-color.yaml", model.ExitInvalidPuzzle, "magenta"},
		{"overfull container", "overfull.yaml", model.ExitInvalidPuzzle, "capacity is 2"},
		{"malformed json", "malformed.json", model.ExitInvalidPuzzle, "failed to parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testdataPath(tt.file))
			require.Error(t, err)
			requireExitCode(t, err, tt.code)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

// TestParse_Validation covers the checks applied after decoding.
func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		hasError bool
	}{
		{"minimal", "containers: [[red]]", false},
		{"no containers", "capacity: 4", true},
		{"negative capacity", "capacity: -1\ncontainers: [[]]", true},
		{"null container is empty", "containers:\n  - [red]\n  -\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestUnbalancedColors reports colors that cannot fill whole containers.
func TestUnbalancedColors(t *testing.T) {
	l := Layout{
		Capacity: 2,
		Containers: [][]model.Color{
			{model.Red, model.Blue},
			{model.Red, model.Green},
		},
	}
	assert.Equal(t, []model.Color{model.Blue, model.Green}, l.UnbalancedColors())
}

// TestFormatForPath checks extension detection.
func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		hasError bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.YML", FormatYAML, false},
		{"a.json", FormatJSON, false},
		{"a.jsonc", FormatJSON, false},
		{"a.toml", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := FormatForPath(tt.path)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, f)
			}
		})
	}
}
