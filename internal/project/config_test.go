package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadCoralToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigName)
	writeFile(t, path, "line-width = 100\ntrailing-newline = false\nexclude = [\"build\", \"*_pb2.py\"]\njobs = 4\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, 100, cfg.LineWidth)
	assert.False(t, cfg.TrailingNewline)
	assert.Equal(t, []string{"build", "*_pb2.py"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.Cache, "unset keys keep their defaults")
}

func TestLoadPyProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PyProjectName)
	writeFile(t, path, "[project]\nname = \"demo\"\n\n[tool.black]\nline-length = 100\n\n[tool.coral]\nline-width = 79\ncache = false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 79, cfg.LineWidth)
	assert.False(t, cfg.Cache)
	assert.True(t, cfg.TrailingNewline)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown key", "line-length = 100\n", ErrUnknownKey},
		{"zero width", "line-width = 0\n", ErrBadValue},
		{"negative jobs", "jobs = -1\n", ErrBadValue},
		{"bad pattern", "exclude = [\"[\"]\n", ErrBadValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			writeFile(t, path, tc.content)
			_, err := Load(path)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigName)
	writeFile(t, path, "line-width = \n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, PyProjectName), "[tool.coral]\nline-width = 60\n")
	nested := filepath.Join(root, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := FindConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, PyProjectName), path)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.LineWidth)
}

func TestFindConfigSkipsForeignPyProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), "line-width = 70\n")
	inner := filepath.Join(root, "inner")
	writeFile(t, filepath.Join(inner, PyProjectName), "[tool.black]\nline-length = 100\n")

	path, ok, err := FindConfig(inner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, ConfigName), path)

	r, ok, err := FindProjectRoot(inner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, r)
}

func TestExcluded(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Root = root
	cfg.Exclude = []string{"build", "*_pb2.py", "vendor/*.py"}

	assert.True(t, cfg.Excluded(filepath.Join(root, "build", "x.py")))
	assert.True(t, cfg.Excluded(filepath.Join(root, "api", "user_pb2.py")))
	assert.True(t, cfg.Excluded(filepath.Join(root, "vendor", "lib.py")))
	assert.False(t, cfg.Excluded(filepath.Join(root, "src", "main.py")))
	assert.False(t, Default().Excluded("anything.py"))
}
