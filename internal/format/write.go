package format

import (
	"strings"

	"coral/internal/ast"
)

// Writer accumulates formatted lines and emits canonical blank lines
// between them.
type Writer struct {
	buf     []byte
	blank   int
	started bool
}

// NewWriter creates a writer sized for about size bytes of output.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Blank requests at least n blank lines before the next line. Blank lines
// never open the output.
func (w *Writer) Blank(n int) {
	w.blank = max(w.blank, n)
}

// Lines writes rendered lines. The first one starts at indent; the others
// carry their own indentation.
func (w *Writer) Lines(indent int, lines []string) {
	if len(lines) == 0 {
		return
	}
	if w.started {
		for range w.blank {
			w.buf = append(w.buf, '\n')
		}
	}
	w.blank = 0
	w.started = true
	for i, line := range lines {
		line = strings.ReplaceAll(line, mark, "")
		if i == 0 {
			w.writeIndent(indent)
		}
		w.buf = append(w.buf, line...)
		w.buf = append(w.buf, '\n')
	}
}

func (w *Writer) writeIndent(n int) {
	for range n {
		w.buf = append(w.buf, ' ')
	}
}

// Comments writes own-line comments at indent, each after its blank lines.
func (w *Writer) Comments(indent int, cs []ast.Comment) {
	for _, c := range cs {
		w.Blank(c.Blank)
		w.Lines(indent, text(c.Text))
	}
}
