package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"coral/internal/ast"
)

// indentWidth is the indentation step of blocks and exploded brackets.
const indentWidth = 4

// mark separates the code of a rendered line from a comment riding on it.
// Widths are measured on the code only and the mark is dropped on output.
const mark = "\x00"

// ctx is the position an expression is rendered at. The first rendered
// line continues the current line at col; later lines carry their own
// indentation. suffix is the width of text that must still fit after the
// last line.
type ctx struct {
	col    int
	indent int
	suffix int
	// start is set when the expression opens its own line inside brackets,
	// so operator chains may break before their operators.
	start bool
	// nested is set inside brackets, where a line break is legal anywhere.
	nested bool
}

// shape tags candidates so the source's own choice wins ties.
type shape uint8

const (
	shapeAny shape = iota
	shapeFlat
	shapeWrapped
	shapeExploded
)

type cand struct {
	lines []string
	shape shape
}

type cost struct {
	over  int // columns past the line budget, summed over lines
	lines int
}

type memoKey struct {
	id ast.ExprID
	c  ctx
}

// layout holds the per-call decisions. Nothing in it outlives one Text call.
type layout struct {
	b     *ast.Builder
	ex    *ast.Exprs
	width int

	flats map[ast.ExprID]string
	clean map[ast.ExprID]bool
	memo  map[memoKey][]string
}

func newLayout(b *ast.Builder, width int) *layout {
	return &layout{
		b:     b,
		ex:    b.Exprs,
		width: width,
		flats: make(map[ast.ExprID]string),
		clean: make(map[ast.ExprID]bool),
		memo:  make(map[memoKey][]string),
	}
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}

func text(s string) []string {
	return []string{s}
}

func codeOf(line string) string {
	if i := strings.Index(line, mark); i >= 0 {
		return line[:i]
	}
	return line
}

func textWidth(s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return runewidth.StringWidth(s)
}

// appendText continues line with s, keeping any comment on line at the end.
func appendText(line, s string) string {
	i := strings.Index(line, mark)
	if i < 0 {
		return line + s
	}
	code, comment := s, ""
	if j := strings.Index(s, mark); j >= 0 {
		code, comment = s[:j], s[j:]
	}
	return line[:i] + code + line[i:] + comment
}

// join continues the last line of a with the first line of b.
func join(a, b []string) []string {
	if a == nil || b == nil {
		return nil
	}
	if len(a) == 0 {
		return b
	}
	out := make([]string, 0, len(a)+len(b)-1)
	out = append(out, a[:len(a)-1]...)
	out = append(out, appendText(a[len(a)-1], b[0]))
	return append(out, b[1:]...)
}

// trail attaches a same-line comment to the last line.
func trail(lines []string, c *ast.Comment) []string {
	if c == nil || len(lines) == 0 {
		return lines
	}
	out := append([]string(nil), lines...)
	out[len(out)-1] += mark + "  " + c.Text
	return out
}

// ownLines renders own-line comments at indent.
func ownLines(cs []ast.Comment, indent int) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, pad(indent)+mark+c.Text)
	}
	return out
}

// indented prefixes the first line, which starts a fresh line at indent.
func indented(lines []string, indent int) []string {
	if len(lines) == 0 {
		return lines
	}
	out := append([]string(nil), lines...)
	out[0] = pad(indent) + out[0]
	return out
}

// endCol returns the column after the last rendered character.
func endCol(lines []string, col int) int {
	last := codeOf(lines[len(lines)-1])
	if len(lines) > 1 || strings.Contains(last, "\n") {
		return textWidth(last)
	}
	return col + runewidth.StringWidth(last)
}

func (l *layout) measure(lines []string, c ctx) cost {
	var k cost
	col := c.col
	for i, line := range lines {
		if i > 0 {
			col = 0
		}
		segs := strings.Split(codeOf(line), "\n")
		for j, seg := range segs {
			if j > 0 {
				col = 0
			}
			w := col + runewidth.StringWidth(seg)
			if i == len(lines)-1 && j == len(segs)-1 {
				w += c.suffix
			}
			if w > l.width {
				k.over += w - l.width
			}
			k.lines++
		}
	}
	return k
}

func (l *layout) fits(s string, c ctx) bool {
	return l.measure(text(s), c).over == 0
}

// pick returns the best candidate: least overflow, then fewest lines, then
// the one matching the source layout, then the earliest.
func (l *layout) pick(c ctx, src shape, cands []cand) []string {
	var best []string
	var bk cost
	stableBest := false
	for _, cd := range cands {
		if cd.lines == nil {
			continue
		}
		k := l.measure(cd.lines, c)
		stable := src != shapeAny && cd.shape == src
		switch {
		case best == nil,
			k.over < bk.over,
			k.over == bk.over && k.lines < bk.lines,
			k.over == bk.over && k.lines == bk.lines && stable && !stableBest:
			best, bk, stableBest = cd.lines, k, stable
		}
	}
	return best
}

// render lays out id at c. A nil result means no layout is legal there,
// which only happens outside brackets for expressions that must break.
func (l *layout) render(id ast.ExprID, c ctx) []string {
	key := memoKey{id: id, c: c}
	if out, ok := l.memo[key]; ok {
		return out
	}
	var out []string
	if l.canFlat(id) && l.fits(l.flat(id), c) {
		out = text(l.flat(id))
	} else {
		out = l.pick(c, l.sourceShape(id), l.candidates(id, c))
	}
	l.memo[key] = out
	return out
}

func (l *layout) sourceShape(id ast.ExprID) shape {
	br, ok := l.ex.Bracket(id)
	if !ok || br.Bare() {
		return shapeAny
	}
	return bracketShape(br)
}

func bracketShape(br *ast.Bracket) shape {
	switch {
	case !br.Multiline:
		return shapeFlat
	case br.Exploded && br.TrailingComma:
		return shapeExploded
	default:
		return shapeWrapped
	}
}

// piece is literal text or an expression inside a run rendered in place.
type piece struct {
	lit string
	id  ast.ExprID
}

func lit(s string) piece      { return piece{lit: s} }
func sub(id ast.ExprID) piece { return piece{id: id} }

// seq renders pieces one after another on the current line; every
// expression may break over lines, budgeting for the flat rest.
func (l *layout) seq(c ctx, ps ...piece) []string {
	// rest[i] is the flat width of ps[i:]
	rest := make([]int, len(ps)+1)
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].id == ast.NoExprID {
			rest[i] = rest[i+1] + runewidth.StringWidth(ps[i].lit)
		} else {
			rest[i] = rest[i+1] + runewidth.StringWidth(l.flat(ps[i].id))
		}
	}
	var done []string
	var cur lineBuilder
	col := c.col
	for i, p := range ps {
		if p.id == ast.NoExprID {
			cur.add(p.lit)
			col = endCol(text(p.lit), col)
			continue
		}
		r := l.render(p.id, ctx{
			col:    col,
			indent: c.indent,
			suffix: rest[i+1] + c.suffix,
			nested: c.nested,
		})
		if r == nil {
			return nil
		}
		if len(r) == 0 {
			continue
		}
		col = endCol(r, col)
		cur.add(r[0])
		if len(r) > 1 {
			done = append(done, cur.String())
			done = append(done, r[1:len(r)-1]...)
			cur = lineBuilder{}
			cur.add(r[len(r)-1])
		}
	}
	return append(done, cur.String())
}

// lineBuilder collects one line piece by piece the way appendText would,
// code first and riding comments after it.
type lineBuilder struct {
	code, comment strings.Builder
}

func (lb *lineBuilder) add(s string) {
	if i := strings.Index(s, mark); i >= 0 {
		lb.code.WriteString(s[:i])
		lb.comment.WriteString(s[i:])
		return
	}
	lb.code.WriteString(s)
}

func (lb *lineBuilder) String() string {
	return lb.code.String() + lb.comment.String()
}
