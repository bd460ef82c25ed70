package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigName is the dedicated configuration file.
	ConfigName = "coral.toml"
	// PyProjectName is consulted when it holds a [tool.coral] table.
	PyProjectName = "pyproject.toml"
)

// FindConfig walks up from startDir to the nearest coral.toml, or
// pyproject.toml with a [tool.coral] table. coral.toml wins within one
// directory.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if found, err := exists(candidate); err != nil {
			return "", false, err
		} else if found {
			return candidate, true, nil
		}
		candidate = filepath.Join(dir, PyProjectName)
		if found, err := exists(candidate); err != nil {
			return "", false, err
		} else if found && hasCoralTable(candidate) {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory holding the configuration, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(path), true, nil
}

func exists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return false, nil
}

// hasCoralTable reports whether a pyproject.toml defines [tool.coral]. A
// pyproject.toml that does not decode is not ours to report on.
func hasCoralTable(path string) bool {
	var doc map[string]any
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return false
	}
	return meta.IsDefined("tool", "coral")
}
