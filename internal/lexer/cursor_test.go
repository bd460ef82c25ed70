package lexer

import (
	"testing"

	"coral/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddRaw("test.py", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading checks "a\nb" → a, \n, b, EOF.
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("peek: want %q, got %q", want, got)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("bump: want %q, got %q", want, got)
		}
	}
	if !cursor.EOF() {
		t.Fatalf("expected EOF")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("peek/bump at EOF must return 0")
	}
}

func TestPeek2Peek3(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 at start: %q %q %v", b0, b1, ok)
	}
	if _, _, _, ok := cursor.Peek3(); !ok {
		t.Fatalf("Peek3 at start must succeed")
	}
	cursor.Bump()
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Fatalf("Peek3 past the end must fail")
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 on last byte must fail")
	}
}

func TestSpanFromUTF8(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddRaw("test.py", []byte("α\nβ"))
	cursor := NewCursor(fs.Get(id))

	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span: %v", sp)
	}
	start, end := fs.Resolve(sp)
	if start != (source.LineCol{Line: 1, Col: 1}) || end != (source.LineCol{Line: 1, Col: 3}) {
		t.Fatalf("resolve: %+v %+v", start, end)
	}
}

func TestMarkResetEat(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	m := cursor.Mark()
	if !cursor.Eat('a') || cursor.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	if string(cursor.Rest()) != "b" {
		t.Fatalf("Rest: %q", cursor.Rest())
	}
	cursor.Reset(m)
	if cursor.Peek() != 'a' {
		t.Fatalf("Reset did not restore the offset")
	}
}
