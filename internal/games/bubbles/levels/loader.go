// Package levels loads starting layouts for the bubble board.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/levels/formats"
)

// Level is a named starting layout.
type Level struct {
	ID       string
	Name     string
	Layout   core.Layout
	Metadata map[string]string
	FilePath string
}

// Loader loads levels from a file system.
type Loader struct {
	Root string // shown in errors and FilePath

	fsys fs.FS
	dir  string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root), dir: "."}
}

// NewFSLoader creates a loader over dir inside fsys.
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	return &Loader{Root: dir, fsys: fsys, dir: dir}
}

// LoadAll recursively loads every level file.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		lvl, err := l.loadFile(path)
		if err != nil {
			return err
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

func (l *Loader) loadFile(path string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
		FilePath: l.displayPath(path),
	}, nil
}

func (l *Loader) displayPath(path string) string {
	if l.dir == "." {
		return filepath.Join(l.Root, path)
	}
	return path
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// Layouts extracts the core layouts in order.
func Layouts(levels []Level) []core.Layout {
	out := make([]core.Layout, len(levels))
	for i, lvl := range levels {
		out[i] = lvl.Layout
	}
	return out
}

// CheckFits verifies every level fits the board of rules and only uses
// colors from its palette.
func CheckFits(levels []Level, rules core.Rules) error {
	for _, lvl := range levels {
		if err := lvl.Layout.Fits(rules.Rows, rules.Cols); err != nil {
			return fmt.Errorf("levels: %s: %w", lvl.FilePath, err)
		}
		if err := lvl.Layout.UsesPalette(rules.Palette); err != nil {
			return fmt.Errorf("levels: %s: %w", lvl.FilePath, err)
		}
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
