package diag

import (
	"testing"

	"coral/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.py", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/lib/helper.xsh", []byte("x\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     FmtWouldChange,
			Message:  "another",
			Primary:  source.Span{File: otherFile, Start: 0, End: 1},
		},
		{
			Severity: SevError,
			Code:     LexUnterminatedString,
			Message:  "dangling",
			Primary:  source.Span{File: 99},
		},
	}

	expected := "warning FMT3001 lib/helper.xsh:1:1 another\n" +
		"error SYN2001 testdata/golden/sample.py:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.py:2:1 note line"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndFirst(t *testing.T) {
	b := NewBag(2)
	b.Add(NewError(SynExpectColon, source.Span{Start: 4}, "colon"))
	b.Add(New(SevWarning, FmtInfo, source.Span{Start: 1}, "info"))
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "dropped")) {
		t.Fatalf("bag over its limit must reject diagnostics")
	}
	first, ok := b.First()
	if !ok || first.Code != SynExpectColon {
		t.Fatalf("First: want SYN2003, got %v (%v)", first.Code.ID(), ok)
	}
	b.Sort()
	if b.Items()[0].Code != FmtInfo {
		t.Fatalf("Sort must order by start offset, got %s first", b.Items()[0].Code.ID())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexBadDedent:    "LEX1006",
		SynTooDeep:      "SYN2013",
		FmtWouldChange:  "FMT3001",
		IOLoadFileError: "IO4001",
		Code(9999):      "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Fatalf("Code(%d).ID() = %q, want %q", c, got, want)
		}
	}
	if Code(1234).Title() != "Unknown error" {
		t.Fatalf("unknown code must fall back to the default title")
	}
}
