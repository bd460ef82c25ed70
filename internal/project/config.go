package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultLineWidth matches the formatter's own default.
const DefaultLineWidth = 88

var (
	// ErrUnknownKey reports a key the configuration does not define.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrBadValue reports a key whose value is out of range.
	ErrBadValue = errors.New("bad configuration value")
)

// Config is the resolved project configuration.
type Config struct {
	// Path is the file the settings came from; empty for defaults.
	Path string
	// Root is the directory relative exclude patterns are matched from.
	Root            string
	LineWidth       int
	TrailingNewline bool
	Exclude         []string
	Jobs            int
	Cache           bool
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{LineWidth: DefaultLineWidth, TrailingNewline: true, Cache: true}
}

type settings struct {
	LineWidth       int      `toml:"line-width"`
	TrailingNewline bool     `toml:"trailing-newline"`
	Exclude         []string `toml:"exclude"`
	Jobs            int      `toml:"jobs"`
	Cache           bool     `toml:"cache"`
}

type pyproject struct {
	Tool struct {
		Coral settings `toml:"coral"`
	} `toml:"tool"`
}

// Load reads the configuration at path. Keys missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	var (
		s      settings
		meta   toml.MetaData
		err    error
		prefix []string
	)
	if filepath.Base(path) == PyProjectName {
		var doc pyproject
		meta, err = toml.DecodeFile(path, &doc)
		s = doc.Tool.Coral
		prefix = []string{"tool", "coral"}
	} else {
		meta, err = toml.DecodeFile(path, &s)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		if hasPrefix(key, prefix) {
			return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnknownKey, key.String())
		}
	}

	defined := func(key string) bool {
		return meta.IsDefined(append(append([]string(nil), prefix...), key)...)
	}
	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if defined("line-width") {
		if s.LineWidth < 1 {
			return Config{}, fmt.Errorf("%s: %w: line-width must be positive, got %d", path, ErrBadValue, s.LineWidth)
		}
		cfg.LineWidth = s.LineWidth
	}
	if defined("trailing-newline") {
		cfg.TrailingNewline = s.TrailingNewline
	}
	if defined("jobs") {
		if s.Jobs < 0 {
			return Config{}, fmt.Errorf("%s: %w: jobs must not be negative, got %d", path, ErrBadValue, s.Jobs)
		}
		cfg.Jobs = s.Jobs
	}
	if defined("cache") {
		cfg.Cache = s.Cache
	}
	for _, pattern := range s.Exclude {
		pattern = strings.TrimSpace(pattern)
		if _, err := filepath.Match(pattern, ""); err != nil {
			return Config{}, fmt.Errorf("%s: %w: exclude pattern %q: %v", path, ErrBadValue, pattern, err)
		}
		cfg.Exclude = append(cfg.Exclude, pattern)
	}
	return cfg, nil
}

// Discover finds and loads the configuration that governs startDir, or
// returns the defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Excluded reports whether path matches one of the exclude patterns. A
// pattern matches the path relative to Root, or any single element of it.
func (c Config) Excluded(path string) bool {
	if len(c.Exclude) == 0 {
		return false
	}
	rel := path
	if c.Root != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if r, err := filepath.Rel(c.Root, abs); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		for _, elem := range strings.Split(rel, "/") {
			if ok, _ := filepath.Match(pattern, elem); ok {
				return true
			}
		}
	}
	return false
}

func hasPrefix(key toml.Key, prefix []string) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}
