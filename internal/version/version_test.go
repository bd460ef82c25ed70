package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestPretty(t *testing.T) {
	origVersion := Version
	origNoColor := color.NoColor
	defer func() {
		Version = origVersion
		color.NoColor = origNoColor
	}()
	color.NoColor = true

	cases := []struct{ in, want string }{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"nightly", "nightly"},
	}
	for _, tc := range cases {
		Version = tc.in
		if got := Pretty(); got != tc.want {
			t.Errorf("Pretty() with Version %q = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion := Version
	origGitCommit := GitCommit
	defer func() {
		Version = origVersion
		GitCommit = origGitCommit
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
}
