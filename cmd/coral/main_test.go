package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coral/internal/driver"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiModeAuto},
		{"auto", uiModeAuto},
		{" ON ", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestSummary(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.py", Changed: true},
		{Path: "b.py"},
		{Path: "c.py"},
		{Path: "d.py", Err: errors.New("boom")},
	}
	sum := summarize(results)
	if got := sum.String(false); got != "1 file reformatted, 2 files left unchanged, 1 file failed" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := (fmtSummary{}).String(true); got != "0 files would be reformatted" {
		t.Fatalf("unexpected check summary %q", got)
	}
}

func TestRenderFmtJSON(t *testing.T) {
	var buf bytes.Buffer
	results := []driver.FormatResult{
		{Path: "a.py", Changed: true, Diff: "--- a.py\n"},
		{Path: "b.py", Err: errors.New("1:1: bad")},
	}
	if err := renderFmtJSON(&buf, results, true); err != nil {
		t.Fatalf("renderFmtJSON: %v", err)
	}
	var out fmtJSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Check || out.Changed != 1 || out.Failed != 1 || len(out.Results) != 2 {
		t.Fatalf("unexpected payload %+v", out)
	}
	if out.Results[1].Error != "1:1: bad" {
		t.Fatalf("unexpected error field %q", out.Results[1].Error)
	}
}

// TestFmtCommand drives the fmt command end to end. Cobra keeps flag values
// between runs, so both runs share one test and set every flag they rely on.
func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "coral.toml")
	if err := os.WriteFile(config, []byte("line-width = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	rootCmd.SetIn(strings.NewReader("x=1\n"))
	rootCmd.SetArgs([]string{"fmt", "--config", config, "--no-cache", "--ui", "off", "--color", "off", "-"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("fmt -: %v\n%s", err, stderr.String())
	}
	if got := stdout.String(); got != "x = 1\n" {
		t.Fatalf("stdin output = %q", got)
	}

	src := filepath.Join(dir, "a.py")
	if err := os.WriteFile(src, []byte("y=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout.Reset()
	stderr.Reset()
	rootCmd.SetArgs([]string{"fmt", "--config", config, "--no-cache", "--ui", "off", "--color", "off", "--check", dir})
	err := rootCmd.Execute()
	if !isSilent(err) {
		t.Fatalf("expected a silent failure for pending changes, got %v", err)
	}
	if !strings.Contains(stderr.String(), "would reformat "+src) {
		t.Fatalf("stderr lacks the file:\n%s", stderr.String())
	}
	data, readErr := os.ReadFile(src)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(data) != "y=2\n" {
		t.Fatalf("--check rewrote the file: %q", data)
	}
}
