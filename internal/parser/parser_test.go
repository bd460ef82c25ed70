package parser

import (
	"fmt"
	"strings"
	"testing"

	"coral/internal/ast"
	"coral/internal/diag"
	"coral/internal/lexer"
	"coral/internal/source"
	"coral/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

type parsed struct {
	b    *ast.Builder
	id   ast.FileID
	file *source.File
	body ast.Block
	bag  *diag.Bag
}

func parseWith(t *testing.T, input string, maxDepth int) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddRaw("test.py", []byte(input)))

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})

	b := ast.NewBuilder(ast.HintsFor(len(input)))
	res := ParseFile(file, toks, b, Options{MaxErrors: 100, Reporter: reporter, MaxDepth: maxDepth})
	return parsed{b: b, id: res.File, file: file, body: b.Files.Get(res.File).Body, bag: res.Bag}
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	return parseWith(t, input, 0)
}

func parseOK(t *testing.T, input string) parsed {
	t.Helper()
	r := parseSource(t, input)
	if r.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(r.bag))
	}
	return r
}

func (r parsed) stmt(i int) *ast.Stmt {
	return r.b.Stmts.Get(r.body.Stmts[i])
}

func (r parsed) kinds() []ast.StmtKind {
	out := make([]ast.StmtKind, len(r.body.Stmts))
	for i, id := range r.body.Stmts {
		out[i] = r.b.Stmts.Get(id).Kind
	}
	return out
}

func TestStatementKinds(t *testing.T) {
	cases := []struct {
		input string
		want  ast.StmtKind
	}{
		{"x = 1\n", ast.StmtAssign},
		{"x: int = 1\n", ast.StmtAssign},
		{"x += 1\n", ast.StmtAssign},
		{"type Alias = int\n", ast.StmtAssign},
		{"f(x)\n", ast.StmtExpr},
		{"pass\n", ast.StmtKeyword},
		{"return\n", ast.StmtKeyword},
		{"raise E from err\n", ast.StmtKeyword},
		{"global a, b\n", ast.StmtKeyword},
		{"import os.path as p, sys\n", ast.StmtImport},
		{"from ..pkg import (a as b, c,)\n", ast.StmtImport},
		{"from . import *\n", ast.StmtImport},
		{"if x:\n    pass\n", ast.StmtCompound},
		{"async def f():\n    await g()\n", ast.StmtCompound},
		{"ls -la\n", ast.StmtShell},
		{"echo hello world\n", ast.StmtShell},
	}
	for _, tc := range cases {
		r := parseOK(t, tc.input)
		if len(r.body.Stmts) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tc.input, len(r.body.Stmts))
		}
		if got := r.stmt(0).Kind; got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestShellFallbackKeepsPythonLines(t *testing.T) {
	r := parseOK(t, "a - b\nx = y -z\nls -l /tmp  # list\n")
	want := []ast.StmtKind{ast.StmtExpr, ast.StmtAssign, ast.StmtShell}
	got := r.kinds()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	sh, ok := r.b.Stmts.Shell(r.body.Stmts[2])
	if !ok || sh.Text != "ls -l /tmp" {
		t.Fatalf("unexpected shell text %+v", sh)
	}
	if tr := r.stmt(2).Trailing; tr == nil || tr.Text != "# list" {
		t.Fatalf("expected trailing comment on shell line, got %+v", tr)
	}
}

func TestSemicolonsSplitStatements(t *testing.T) {
	r := parseOK(t, "a = 1; b = 2;  # both\n")
	if len(r.body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(r.body.Stmts))
	}
	if r.stmt(0).Trailing != nil || r.stmt(1).Trailing == nil {
		t.Fatalf("trailing comment must attach to the last statement")
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	src := "import os\n\n\n# about f\n\ndef f():  # header\n    x = 1  # one\n    # tail\n\n# top\ny = 2\n"
	r := parseOK(t, src)
	if len(r.body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(r.body.Stmts))
	}
	def := r.stmt(1)
	if len(def.Leading) != 1 || def.Leading[0].Text != "# about f" || def.Leading[0].Blank != 2 {
		t.Fatalf("unexpected leading comments %+v", def.Leading)
	}
	if def.Blank != 1 {
		t.Fatalf("expected 1 blank line between comment and def, got %d", def.Blank)
	}
	c, _ := r.b.Stmts.Compound(r.body.Stmts[1])
	cl := c.Clauses[0]
	if cl.Trailing == nil || cl.Trailing.Text != "# header" {
		t.Fatalf("expected header comment, got %+v", cl.Trailing)
	}
	if len(cl.Body.Dangling) != 1 || cl.Body.Dangling[0].Text != "# tail" {
		t.Fatalf("expected dangling block comment, got %+v", cl.Body.Dangling)
	}
	inner := r.b.Stmts.Get(cl.Body.Stmts[0])
	if inner.Trailing == nil || inner.Trailing.Text != "# one" {
		t.Fatalf("expected trailing comment, got %+v", inner.Trailing)
	}
	last := r.stmt(2)
	if len(last.Leading) != 1 || last.Leading[0].Blank != 1 {
		t.Fatalf("unexpected leading comments on last statement %+v", last.Leading)
	}
}

func TestFileDanglingComments(t *testing.T) {
	r := parseOK(t, "x = 1\n\n# end\n")
	if len(r.body.Dangling) != 1 || r.body.Dangling[0].Text != "# end" {
		t.Fatalf("expected file dangling comment, got %+v", r.body.Dangling)
	}
}

func TestBracketFlags(t *testing.T) {
	cases := []struct {
		input     string
		trailing  bool
		multiline bool
		exploded  bool
	}{
		{"f(a, b)\n", false, false, false},
		{"f(a, b,)\n", true, false, false},
		{"f(\n    a, b\n)\n", false, true, false},
		{"f(\n    a,\n    b,\n)\n", true, true, true},
		{"f(a,\n  b)\n", false, true, false},
	}
	for _, tc := range cases {
		r := parseOK(t, tc.input)
		e, _ := r.b.Stmts.Expr(r.body.Stmts[0])
		br, ok := r.b.Exprs.Bracket(e.Value)
		if !ok {
			t.Fatalf("%q: expected a bracketed call", tc.input)
		}
		if br.TrailingComma != tc.trailing || br.Multiline != tc.multiline || br.Exploded != tc.exploded {
			t.Fatalf("%q: got trailing=%v multiline=%v exploded=%v", tc.input, br.TrailingComma, br.Multiline, br.Exploded)
		}
	}
}

func TestBracketComments(t *testing.T) {
	r := parseOK(t, "x = [  # open\n    1,  # one\n    # before two\n    2,\n    # end\n]\n")
	a, _ := r.b.Stmts.Assign(r.body.Stmts[0])
	br, _ := r.b.Exprs.Bracket(a.Value)
	if br.OpenComment == nil || br.OpenComment.Text != "# open" {
		t.Fatalf("expected open comment, got %+v", br.OpenComment)
	}
	if len(br.Elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(br.Elems))
	}
	if br.Elems[0].Trailing == nil || br.Elems[0].Trailing.Text != "# one" {
		t.Fatalf("expected trailing comment on first element, got %+v", br.Elems[0].Trailing)
	}
	if len(br.Elems[1].Leading) != 1 || br.Elems[1].Leading[0].Text != "# before two" {
		t.Fatalf("expected leading comment on second element, got %+v", br.Elems[1].Leading)
	}
	if len(br.Dangling) != 1 || br.Dangling[0].Text != "# end" {
		t.Fatalf("expected dangling comment, got %+v", br.Dangling)
	}
}

func TestCollectionKinds(t *testing.T) {
	cases := []struct {
		input string
		want  ast.ExprKind
	}{
		{"(a)\n", ast.ExprGroup},
		{"(a,)\n", ast.ExprTuple},
		{"()\n", ast.ExprTuple},
		{"[a]\n", ast.ExprList},
		{"{}\n", ast.ExprDict},
		{"{a: 1}\n", ast.ExprDict},
		{"{**a}\n", ast.ExprDict},
		{"{a}\n", ast.ExprSet},
		{"[x for x in y if x]\n", ast.ExprComp},
		{"(x for x in y)\n", ast.ExprComp},
		{"a if b else c\n", ast.ExprTernary},
		{"lambda x, *a, k=1, **kw: x\n", ast.ExprLambda},
		{"a.b.c\n", ast.ExprAttr},
		{"a[1:2, ::3]\n", ast.ExprSubscript},
		{"a < b <= c\n", ast.ExprChain},
		{"not a\n", ast.ExprUnary},
		{"$(ls)\n", ast.ExprShell},
	}
	for _, tc := range cases {
		r := parseOK(t, tc.input)
		e, ok := r.b.Stmts.Expr(r.body.Stmts[0])
		if !ok {
			t.Fatalf("%q: expected expression statement, got %s", tc.input, r.stmt(0).Kind)
		}
		if got := r.b.Exprs.Kind(e.Value); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestClauses(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n", []string{"if", "elif", "else"}},
		{"while a:\n    pass\nelse:\n    pass\n", []string{"while", "else"}},
		{"for a, *b in c:\n    pass\n", []string{"for"}},
		{"try:\n    pass\nexcept* E as e:\n    pass\nfinally:\n    pass\n", []string{"try", "except*", "finally"}},
		{"try:\n    pass\nexcept (A, B):\n    pass\nelse:\n    pass\n", []string{"try", "except", "else"}},
		{"with (open(a) as f, open(b) as g):\n    pass\n", []string{"with"}},
		{"class C(Base, metaclass=M):\n    pass\n", []string{"class"}},
		{"if a: pass\nelse: pass\n", []string{"if", "else"}},
	}
	for _, tc := range cases {
		r := parseOK(t, tc.input)
		c, ok := r.b.Stmts.Compound(r.body.Stmts[0])
		if !ok {
			t.Fatalf("%q: expected compound statement", tc.input)
		}
		var got []string
		for _, cl := range c.Clauses {
			got = append(got, cl.Keyword)
		}
		if strings.Join(got, " ") != strings.Join(tc.want, " ") {
			t.Fatalf("%q: expected clauses %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestWithItems(t *testing.T) {
	cases := []struct {
		input string
		items int
		paren bool
	}{
		{"with a as b, c:\n    pass\n", 2, false},
		{"with (a, b) as c:\n    pass\n", 1, false},
		{"with (a as b, c as d,):\n    pass\n", 2, true},
	}
	for _, tc := range cases {
		r := parseOK(t, tc.input)
		c, _ := r.b.Stmts.Compound(r.body.Stmts[0])
		br, ok := r.b.Exprs.Bracket(c.Clauses[0].Test)
		if !ok {
			t.Fatalf("%q: with items missing", tc.input)
		}
		if len(br.Elems) != tc.items || br.Bare() == tc.paren {
			t.Fatalf("%q: got %d items, bare=%v", tc.input, len(br.Elems), br.Bare())
		}
	}
}

func TestDecoratedDefinition(t *testing.T) {
	src := "@first\n# between\n@second(1)\n# before def\nasync def f(a, /, b: int = 2, *, c, **kw) -> None:\n    pass\n"
	r := parseOK(t, src)
	c, ok := r.b.Stmts.Compound(r.body.Stmts[0])
	if !ok || len(c.Decorators) != 2 {
		t.Fatalf("expected 2 decorators")
	}
	if len(c.Decorators[1].Leading) != 1 {
		t.Fatalf("expected comment between decorators, got %+v", c.Decorators[1].Leading)
	}
	def := c.Clauses[0]
	if !def.Async || def.Keyword != "def" || def.Name != "f" {
		t.Fatalf("unexpected def clause %+v", def)
	}
	if len(def.Leading) != 1 || def.Leading[0].Text != "# before def" {
		t.Fatalf("expected comment before def, got %+v", def.Leading)
	}
	params, _ := r.b.Exprs.Bracket(def.Params)
	var names []string
	for _, el := range params.Elems {
		pd, _ := r.b.Exprs.Param(el.Value)
		names = append(names, pd.Star+pd.Name)
	}
	if got := strings.Join(names, ","); got != "a,/,b,*,c,**kw" {
		t.Fatalf("unexpected params %s", got)
	}
	if def.Returns == ast.NoExprID {
		t.Fatalf("expected a return annotation")
	}
}

func TestMatchStatement(t *testing.T) {
	src := "match command.split():\n    case [action]:\n        pass\n    # other\n    case Point(x=0) | [_, *rest] as p if p:\n        pass\n"
	r := parseOK(t, src)
	c, ok := r.b.Stmts.Compound(r.body.Stmts[0])
	if !ok || c.Clauses[0].Keyword != "match" {
		t.Fatalf("expected match statement")
	}
	cases := c.Clauses[0].Body.Stmts
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	second := r.b.Stmts.Get(cases[1])
	if len(second.Leading) != 1 {
		t.Fatalf("expected comment before second case, got %+v", second.Leading)
	}
	sc, _ := r.b.Stmts.Compound(cases[1])
	if r.b.Exprs.Kind(sc.Clauses[0].Test) != ast.ExprAs || sc.Clauses[0].Target == ast.NoExprID {
		t.Fatalf("expected capture pattern with guard")
	}
}

func TestSoftKeywordsAsNames(t *testing.T) {
	r := parseOK(t, "match = 1\nmatch.group(0)\ntype = 2\ncase = 3\n")
	want := []ast.StmtKind{ast.StmtAssign, ast.StmtExpr, ast.StmtAssign, ast.StmtAssign}
	if got := r.kinds(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"else:\n    pass\n", diag.SynOrphanClause},
		{"print(1\n", diag.SynUnclosedParen},
		{"if x\n    pass\n", diag.SynExpectColon},
		{"if x:\npass\n", diag.SynExpectBlock},
		{"@dec\nx = 1\n", diag.SynBadDecorator},
		{"def f[T](x):\n    pass\n", diag.SynUnexpectedToken},
		{"try:\n    pass\nx = 1\n", diag.SynUnexpectedToken},
	}
	for _, tc := range cases {
		r := parseSource(t, tc.input)
		found := false
		for _, d := range r.bag.Items() {
			if d.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Fatalf("%q: expected %s, got %s", tc.input, tc.code.ID(), diagnosticsSummary(r.bag))
		}
	}
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	r := parseSource(t, "if x\n    y = 1\nz = 2\n")
	if !r.bag.HasErrors() {
		t.Fatalf("expected an error")
	}
	if len(r.body.Stmts) != 1 {
		t.Fatalf("expected the statement after the broken block to parse, got %d statements", len(r.body.Stmts))
	}
}

func TestNestingLimit(t *testing.T) {
	src := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + "\n"
	r := parseWith(t, src, 20)
	d, ok := r.bag.First()
	if !ok || d.Code != diag.SynTooDeep {
		t.Fatalf("expected %s, got %s", diag.SynTooDeep.ID(), diagnosticsSummary(r.bag))
	}

	r = parseWith(t, src, 0)
	if r.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(r.bag))
	}
}

func TestTrailerNestingLimit(t *testing.T) {
	cases := []string{
		"x = a" + strings.Repeat(".b", 50) + "\n",
		"x = f" + strings.Repeat("()", 50) + "\n",
		"x = a" + strings.Repeat("[0]", 50) + "\n",
	}
	for _, src := range cases {
		r := parseWith(t, src, 20)
		d, ok := r.bag.First()
		if !ok || d.Code != diag.SynTooDeep {
			t.Fatalf("%.12q...: expected %s, got %s", src, diag.SynTooDeep.ID(), diagnosticsSummary(r.bag))
		}
	}

	// trailers are released once the chain ends
	src := strings.Repeat("x = a.b.c.d.e()\n", 30)
	r := parseWith(t, src, 20)
	if r.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(r.bag))
	}
	if len(r.body.Stmts) != 30 {
		t.Fatalf("expected 30 statements, got %d", len(r.body.Stmts))
	}
}

func TestDumpOutline(t *testing.T) {
	r := parseOK(t, "x = f(a,)\n")
	var sb strings.Builder
	if err := ast.Dump(&sb, r.b, 1); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"File", "Assign", "Call"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestSpanInvariants(t *testing.T) {
	inputs := []string{
		"",
		"x = 1\n",
		"a = 1; b = 2\n",
		"# lead\nimport os\n\n\ndef f(a, b=2):\n    return a  # tail\n",
		"if x:\n    pass\nelif y:\n    pass\nelse:\n    pass\n",
		"match p:\n    case [a, b] if a:\n        pass\n    case _:\n        pass\n",
		"@dec\nclass C(Base):\n    x: int = 1\n",
		"ls -la\n",
	}
	for _, input := range inputs {
		r := parseOK(t, input)
		if err := testkit.CheckSpanInvariants(r.b, r.id, r.file); err != nil {
			t.Fatalf("%q: %v", input, err)
		}
	}
}
