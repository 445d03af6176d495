package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/watersort/internal/model"
)

// Format is the encoding of a puzzle file.
type Format string

const (
	// FormatYAML is YAML, decoded with gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"

	// FormatJSON is JSON that may contain comments and trailing commas
	// (the same dialect as devcontainer.json or VS Code settings).
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension.
// .yaml and .yml are YAML; .json and .jsonc are JSON with comments.
func FormatForPath(path string) (Format, error) {
	// Compare case-insensitively so that "PUZZLE.YAML" works as well.
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported puzzle file extension %q (valid: .yaml, .yml, .json, .jsonc)", filepath.Ext(path))
	}
}

// puzzleFile is the on-disk shape of a puzzle. Colors stay strings here so
// that ParseColor can report unknown names with their position.
type puzzleFile struct {
	Name       string     `json:"name" yaml:"name"`
	Capacity   int        `json:"capacity" yaml:"capacity"`
	Containers [][]string `json:"containers" yaml:"containers"`
}

// Load reads a puzzle file and returns its layout.
//
// Returns a CLIError with ExitPuzzleNotFound if the file does not exist and
// ExitInvalidPuzzle if it cannot be parsed or describes an impossible layout.
func Load(path string) (Layout, error) {
	// Step 1: Pick the decoder from the extension. This happens before the
	// file is read so that a typo in the extension is reported as such.
	format, err := FormatForPath(path)
	if err != nil {
		return Layout{}, model.WrapCLIError(model.ExitInvalidPuzzle,
			fmt.Sprintf("cannot load puzzle %s", path), err)
	}

	// Step 2: Read the whole file. Puzzle files are a few hundred bytes,
	// so streaming is not worth it.
	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file gets its own exit code so scripts can tell a wrong
		// path apart from a broken puzzle.
		if os.IsNotExist(err) {
			return Layout{}, model.WrapCLIError(model.ExitPuzzleNotFound,
				fmt.Sprintf("puzzle file not found: %s", path), err)
		}
		return Layout{}, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	// Step 3: Decode and validate. Every failure from here on is the
	// puzzle's fault, so it maps to ExitInvalidPuzzle.
	l, err := Parse(data, format)
	if err != nil {
		return Layout{}, model.WrapCLIError(model.ExitInvalidPuzzle,
			fmt.Sprintf("invalid puzzle file %s", path), err)
	}
	// Step 4: Fall back to the file name (without extension) when the
	// puzzle does not name itself, e.g. "puzzles/hard-7.yaml" -> "hard-7".
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// Parse decodes puzzle data in the given format and validates it.
func Parse(data []byte, format Format) (Layout, error) {
	var raw puzzleFile
	switch format {
	case FormatYAML:
		// yaml.v3 matches keys by the yaml struct tags on puzzleFile.
		// A null entry in the containers list decodes as a nil slice,
		// which is treated as an empty container below.
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Layout{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		// encoding/json does not accept comments or trailing commas.
		// jsonc.ToJSON strips both and keeps every byte offset intact
		// (comments become spaces), so error positions reported by
		// json.Unmarshal still point into the original file.
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return Layout{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return Layout{}, fmt.Errorf("unknown puzzle format %q", format)
	}
	return raw.layout()
}

// layout converts and validates the decoded file.
func (f puzzleFile) layout() (Layout, error) {
	l := Layout{
		Name:       f.Name,
		Capacity:   f.Capacity,
		Containers: make([][]model.Color, len(f.Containers)),
	}
	// An omitted capacity decodes as 0 and means the standard tube size.
	if l.Capacity == 0 {
		l.Capacity = model.DefaultCapacity
	}
	if l.Capacity < 0 {
		return Layout{}, fmt.Errorf("capacity must be positive, got %d", f.Capacity)
	}
	if len(f.Containers) == 0 {
		return Layout{}, fmt.Errorf("puzzle has no containers")
	}

	// Check each container against the capacity first, then resolve its
	// color names. Indices in the messages are 0-based like the pour
	// indices printed by "watersort solve".
	for i, names := range f.Containers {
		if len(names) > l.Capacity {
			return Layout{}, fmt.Errorf("container %d holds %d units, capacity is %d", i, len(names), l.Capacity)
		}
		// Allocate even for an empty container so that loaded layouts
		// compare equal to the built-in ones.
		units := make([]model.Color, 0, len(names))
		for j, name := range names {
			c, err := model.ParseColor(name)
			if err != nil {
				return Layout{}, fmt.Errorf("container %d, unit %d: %w", i, j, err)
			}
			units = append(units, c)
		}
		l.Containers[i] = units
	}
	return l, nil
}
