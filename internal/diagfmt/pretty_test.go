package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"coral/internal/diag"
	"coral/internal/lexer"
	"coral/internal/source"
)

func unterminated(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("a.py", []byte("y = 1\nx = 'abc\n"), source.FileVirtual)
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Message:  "unterminated string",
		Primary:  source.Span{File: id, Start: 10, End: 14},
		Notes:    []diag.Note{{Span: source.Span{File: id, Start: 0, End: 1}, Msg: "earlier line"}},
	})
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := unterminated(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
	want := "a.py:2:5: ERROR LEX1002: unterminated string\n" +
		" 2 | x = 'abc\n" +
		"   |     ^~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	bag, fs := unterminated(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true, PathMode: PathModeBasename})
	got := buf.String()
	if !strings.Contains(got, " 1 | y = 1\n 2 | x = 'abc\n") {
		t.Fatalf("expected one line of context, got:\n%s", got)
	}
	if !strings.Contains(got, "  a.py:1:1: note: earlier line\n") {
		t.Fatalf("expected the note, got:\n%s", got)
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.ObsTimings, Message: "slow"})
	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{})
	if got := buf.String(); got != "WARNING OBS6001: slow\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := unterminated(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1002" || d.Severity != "ERROR" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location == nil || d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 0 {
		t.Fatalf("notes were not asked for: %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := unterminated(t)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.LexBadNumber, Message: "bad number"})
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1, IncludeNotes: true})
	if out.Count != 1 {
		t.Fatalf("expected output truncated to 1, got %d", out.Count)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("expected the note, got %+v", out.Diagnostics[0])
	}
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddRaw("t.py", []byte("x = 1\n")))
	toks := lexer.Tokenize(f, lexer.Options{})
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(buf.String(), `"x" at 1:1-1:2`) {
		t.Fatalf("unexpected token listing:\n%s", buf.String())
	}
	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) == 0 || out[len(out)-1].Kind != "EOF" {
		t.Fatalf("expected tokens ending in EOF, got %+v", out)
	}
}
