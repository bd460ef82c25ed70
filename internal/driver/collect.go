package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoSourceFiles is returned when the given paths hold nothing to format.
var ErrNoSourceFiles = errors.New("no Python or xonsh files found")

// sourceExts are the file extensions formatted when walking directories.
var sourceExts = map[string]bool{".py": true, ".pyi": true, ".xsh": true}

// IsSourceFile reports whether path names a Python or xonsh file.
func IsSourceFile(path string) bool {
	return sourceExts[strings.ToLower(filepath.Ext(path))]
}

// CollectSourceFiles expands paths into a sorted list of source files.
// Directories are walked recursively, skipping hidden directories and the
// ones exclude matches; files named directly are kept whatever their
// extension, unless excluded.
func CollectSourceFiles(ctx context.Context, paths []string, exclude func(string) bool) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	excluded := func(path string) bool {
		return exclude != nil && exclude(path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !excluded(p) {
				addFile(p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && (strings.HasPrefix(d.Name(), ".") || d.Name() == "__pycache__" || excluded(path)) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsSourceFile(path) && !excluded(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
