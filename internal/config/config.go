// Package config loads the optional respan.toml project manifest,
// discovered upward from the working directory. Flags override the
// manifest; the manifest overrides built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project manifest file respan looks for.
const ManifestName = "respan.toml"

// Manifest is a located, parsed respan.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the manifest schema.
type Config struct {
	Format FormatConfig `toml:"format"`
	Render RenderConfig `toml:"render"`
}

// FormatConfig configures the formatting engine boundary.
type FormatConfig struct {
	// Edition is the language-edition profile handed to the engine.
	Edition string `toml:"edition"`
	// Engine is an explicit engine binary path.
	Engine string `toml:"engine"`
	// Quiet suppresses the engine's diagnostic noise.
	Quiet *bool `toml:"quiet"`
}

// RenderConfig configures multi-file rendering.
type RenderConfig struct {
	// Jobs bounds render parallelism; 0 means one worker per CPU.
	Jobs int `toml:"jobs"`
}

// Find walks from startDir toward the filesystem root looking for a
// manifest. ok is false when none exists, which is not an error.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the nearest manifest. ok is false when no
// manifest exists anywhere above startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}
