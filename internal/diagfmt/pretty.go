package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"coral/internal/diag"
	"coral/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Faint),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes diagnostics in a human-readable form, in bag order (call
// bag.Sort() first for source order). Each diagnostic reads
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with the span underlined ^~~~ and, when
// asked for, its notes in the same form.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, p, d, fs, opts)
	}
}

func prettyOne(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := p.severity(d.Severity).Sprint(d.Severity.String())
	code := p.code.Sprint(d.Code.ID())
	if fs == nil || !fs.Has(d.Primary.File) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		return
	}
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", displayPath(file, fs, opts.PathMode), start.Line, start.Col, sev, code, d.Message)
	snippet(w, p, file, d.Primary, int(opts.Context))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if !fs.Has(n.Span.File) {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
			continue
		}
		nf := fs.Get(n.Span.File)
		pos, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s:%d:%d: note: %s\n", displayPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
	}
}

// snippet prints the primary line, context lines above it, and a caret
// line under the span. Spans reaching past the line end are cut there.
func snippet(w io.Writer, p palette, f *source.File, sp source.Span, context int) {
	start, end := f.Position(sp.Start), f.Position(sp.End)
	first := int(start.Line) - max(context, 0)
	first = max(first, 1)
	numWidth := len(fmt.Sprint(start.Line))

	for n := first; n <= int(start.Line); n++ {
		line := f.GetLine(uint32(n))
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", numWidth, n), expandTabs(line))
	}

	line := expandTabs(f.GetLine(start.Line))
	col := int(start.Col) - 1
	prefix := clip(f.GetLine(start.Line), col)
	lead := runewidth.StringWidth(expandTabs(prefix))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		covered := clip(f.GetLine(start.Line), int(end.Col)-1)
		width = max(runewidth.StringWidth(expandTabs(covered))-lead, 1)
	} else if end.Line > start.Line {
		width = max(runewidth.StringWidth(line)-lead, 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", numWidth)+" |"), strings.Repeat(" ", lead), p.caret.Sprint(marker))
}

// clip returns the first n bytes of s, or all of it.
func clip(s string, n int) string {
	if n < 0 {
		return ""
	}
	if n > len(s) {
		return s
	}
	return s[:n]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
