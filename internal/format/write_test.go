package format

import (
	"testing"

	"coral/internal/ast"
)

func TestWriterBlankLines(t *testing.T) {
	w := NewWriter(64)
	w.Blank(2)
	w.Lines(0, text("a"))
	w.Blank(2)
	w.Blank(0)
	w.Lines(0, text("b"))
	w.Blank(1)
	w.Lines(4, []string{"c(", "    d" + mark + "  # note", ")"})
	want := "a\n\n\nb\n\n    c(\n    d  # note\n)\n"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterComments(t *testing.T) {
	w := NewWriter(64)
	w.Comments(4, []ast.Comment{{Text: "# one"}, {Text: "# two", Blank: 1}})
	want := "    # one\n\n    # two\n"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
