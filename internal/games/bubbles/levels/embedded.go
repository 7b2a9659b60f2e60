package levels

import (
	"embed"
	"fmt"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Embedded returns the built-in levels.
func Embedded() ([]Level, error) {
	return NewFSLoader(builtinFS, "builtin").LoadAll()
}

// Load returns the levels in dir, or the built-in set when dir is empty.
// A directory without level files is an error.
func Load(dir string) ([]Level, error) {
	if dir == "" {
		return Embedded()
	}
	lvls, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", dir)
	}
	return lvls, nil
}
