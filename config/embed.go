package config

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed default.yaml
var defaultYAML []byte

// DefaultYAML returns a copy of the embedded default tuning file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// WriteDefault writes the embedded default tuning file to path as a
// starting point for live editing. It refuses to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	return os.WriteFile(path, defaultYAML, 0o644)
}
