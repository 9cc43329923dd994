package roster

import (
	_ "embed"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in roster used when no ROSTER_PATH is configured.
func Default() *Roster {
	r, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return r
}

// LoadOrDefault loads path, or the built-in roster when path is empty.
func LoadOrDefault(path string) (*Roster, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
