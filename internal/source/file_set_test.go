package source

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{name: "plain", in: "x = 1\n", want: "x = 1\n"},
		{name: "crlf", in: "x = 1\r\ny = 2\r\n", want: "x = 1\ny = 2\n", flags: FileNormalizedCRLF},
		{name: "lone cr", in: "a\rb\n", want: "a\nb\n", flags: FileNormalizedCRLF},
		{name: "bom", in: "\xEF\xBB\xBFx\n", want: "x\n", flags: FileHadBOM},
		{name: "no trailing newline", in: "x", want: "x", flags: FileMissingNewline},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize([]byte(tt.in))
			if string(got) != tt.want {
				t.Fatalf("content: want %q, got %q", tt.want, got)
			}
			if flags != tt.flags {
				t.Fatalf("flags: want %b, got %b", tt.flags, flags)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.py", []byte("ab\ncd\n\nef"), 0)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the newline itself
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{8, LineCol{4, 2}},
	}
	for _, c := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: c.off, End: c.off})
		if start != c.want {
			t.Errorf("offset %d: want %+v, got %+v", c.off, c.want, start)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.Add("a.py", []byte("first\nsecond\nthird"), 0))

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1: %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3: %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("line 9: %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("cover: %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("cross-file cover must keep receiver, got %v", got)
	}
	if !a.Cover(b).Contains(a) {
		t.Fatalf("cover must contain its inputs")
	}
}
