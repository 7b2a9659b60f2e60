// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a layout file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Locked   []YAMLCell        `yaml:"locked,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLCell addresses a single cell.
type YAMLCell struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Level represents a parsed layout ready for use.
type Level struct {
	ID       string
	Name     string
	Layout   core.Layout
	Metadata map[string]string
}

// ParseYAML parses a YAML layout file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}
	if len(yl.Rows) == 0 {
		return Level{}, fmt.Errorf("level %s: no rows", yl.ID)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	layout, err := core.LayoutFromRows(yl.ID, name, yl.Rows)
	if err != nil {
		return Level{}, err
	}

	// Locked cells may also be given by coordinate.
	for _, lc := range yl.Locked {
		found := false
		for i := range layout.Cells {
			if layout.Cells[i].Row == lc.Row && layout.Cells[i].Col == lc.Col {
				layout.Cells[i].Kind = core.KindLocked
				found = true
				break
			}
		}
		if !found {
			return Level{}, fmt.Errorf("level %s: locked cell (%d,%d) is empty", yl.ID, lc.Row, lc.Col)
		}
	}

	return Level{
		ID:       yl.ID,
		Name:     name,
		Layout:   layout,
		Metadata: yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
