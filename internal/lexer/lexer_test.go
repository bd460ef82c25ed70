package lexer_test

import (
	"strings"
	"testing"

	"coral/internal/diag"
	"coral/internal/lexer"
	"coral/internal/source"
	"coral/internal/token"
)

func lex(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddRaw("test.py", []byte(input)))
	bag := diag.NewBag(16)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

// render prints tokens as "KIND" or "KIND:text" joined by spaces.
func render(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Text == "" {
			parts = append(parts, tok.Kind.String())
			continue
		}
		parts = append(parts, tok.Kind.String()+":"+tok.Text)
	}
	return strings.Join(parts, " ")
}

func TestTokenStreams(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "assignment",
			in:   "x = 1\n",
			want: "IDENT:x OP:= NUMBER:1 NEWLINE EOF",
		},
		{
			name: "block without trailing newline",
			in:   "def f():\n    pass",
			want: "KEYWORD:def IDENT:f OP:( OP:) OP:: NEWLINE INDENT KEYWORD:pass NEWLINE DEDENT EOF",
		},
		{
			name: "comment after dedent",
			in:   "if x:\n    y\n# c\nz\n",
			want: "KEYWORD:if IDENT:x OP:: NEWLINE INDENT IDENT:y NEWLINE DEDENT COMMENT:# c IDENT:z NEWLINE EOF",
		},
		{
			name: "comment inside block",
			in:   "if x:\n    y\n    # c\nz\n",
			want: "KEYWORD:if IDENT:x OP:: NEWLINE INDENT IDENT:y NEWLINE COMMENT:# c DEDENT IDENT:z NEWLINE EOF",
		},
		{
			name: "implicit join",
			in:   "f(a,\n  b)\n",
			want: "IDENT:f OP:( IDENT:a OP:, IDENT:b OP:) NEWLINE EOF",
		},
		{
			name: "explicit join",
			in:   "x = 1 + \\\n    2\n",
			want: "IDENT:x OP:= NUMBER:1 OP:+ NUMBER:2 NEWLINE EOF",
		},
		{
			name: "string prefixes and f-string nesting",
			in:   "s = rb'x' f\"{a['k']:>{w}}\"\n",
			want: "IDENT:s OP:= STRING:rb'x' STRING:f\"{a['k']:>{w}}\" NEWLINE EOF",
		},
		{
			name: "triple quoted",
			in:   "d = '''a\n'b'\n'''\n",
			want: "IDENT:d OP:= STRING:'''a\n'b'\n''' NEWLINE EOF",
		},
		{
			name: "numbers",
			in:   "n = 0XFF + 1_000 + .5e-3 + 2J + 1.\n",
			want: "IDENT:n OP:= NUMBER:0XFF OP:+ NUMBER:1_000 OP:+ NUMBER:.5e-3 OP:+ NUMBER:2J OP:+ NUMBER:1. NEWLINE EOF",
		},
		{
			name: "operators",
			in:   "a **= b // c != d -> e := f\n",
			want: "IDENT:a OP:**= IDENT:b OP:// IDENT:c OP:!= IDENT:d OP:-> IDENT:e OP::= IDENT:f NEWLINE EOF",
		},
		{
			name: "soft keyword is ident",
			in:   "match x:\n    case _:\n        pass\n",
			want: "IDENT:match IDENT:x OP:: NEWLINE INDENT IDENT:case IDENT:_ OP:: NEWLINE INDENT KEYWORD:pass NEWLINE DEDENT DEDENT EOF",
		},
		{
			name: "substitutions",
			in:   "x = $(ls -l) + $HOME + @$(which python) + `.*\\.py`\n",
			want: "IDENT:x OP:= SHELL_FRAGMENT:$(ls -l) OP:+ SHELL_FRAGMENT:$HOME OP:+ SHELL_FRAGMENT:@$(which python) OP:+ SHELL_FRAGMENT:`.*\\.py` NEWLINE EOF",
		},
		{
			name: "nested substitution with quotes",
			in:   "![echo \")\" $(pwd)]\n",
			want: "SHELL_FRAGMENT:![echo \")\" $(pwd)] NEWLINE EOF",
		},
		{
			name: "unknown character re-lexes the line",
			in:   "ls -la | grep foo?\n",
			want: "SHELL_FRAGMENT:ls -la | grep foo? NEWLINE EOF",
		},
		{
			name: "lone bang with comment",
			in:   "if x:\n    echo hi! # shout\n",
			want: "KEYWORD:if IDENT:x OP:: NEWLINE INDENT SHELL_FRAGMENT:echo hi! COMMENT:# shout NEWLINE DEDENT EOF",
		},
		{
			name: "decorator and matmul",
			in:   "@dec\ndef f(): return a @ b\n",
			want: "OP:@ IDENT:dec NEWLINE KEYWORD:def IDENT:f OP:( OP:) OP:: KEYWORD:return IDENT:a OP:@ IDENT:b NEWLINE EOF",
		},
		{
			name: "empty input",
			in:   "",
			want: "EOF",
		},
		{
			name: "comments only",
			in:   "# one\n\n# two\n",
			want: "COMMENT:# one COMMENT:# two EOF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lex(t, tt.in)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			if got := render(toks); got != tt.want {
				t.Fatalf("tokens mismatch\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestMismatchedBracketPointsAtOpener(t *testing.T) {
	_, bag := lex(t, "f(a]\n")
	first, ok := bag.First()
	if !ok || first.Code != diag.LexUnmatchedBracket {
		t.Fatalf("expected %s, got %v", diag.LexUnmatchedBracket.ID(), bag.Items())
	}
	if len(first.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(first.Notes))
	}
	if note := first.Notes[0]; note.Span.Start != 1 || note.Span.End != 2 || note.Msg != "'(' opened here" {
		t.Fatalf("unexpected note %+v", note)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code diag.Code
	}{
		{"unterminated string", "x = 'abc\n", diag.LexUnterminatedString},
		{"unterminated triple", "x = '''abc\n", diag.LexUnterminatedTriple},
		{"bad dedent", "if x:\n        a\n    b\n", diag.LexBadDedent},
		{"tabs and spaces", "if x:\n\ta\n        b\n", diag.LexInconsistentTabs},
		{"unclosed bracket", "f(a\n", diag.LexUnclosedBracket},
		{"unmatched bracket", ")\n", diag.LexUnmatchedBracket},
		{"mismatched bracket", "f(a]\n", diag.LexUnmatchedBracket},
		{"bad hex", "x = 0x\n", diag.LexBadNumber},
		{"single brace in f-string", "x = f'a}b'\n", diag.LexBadFString},
		{"unterminated substitution", "x = $(ls\n", diag.LexUnterminatedFragment},
		{"continuation at eof", "x = 1 \\", diag.LexBadContinuation},
		{"control character", "x = \x01\n", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := lex(t, tt.in)
			first, ok := bag.First()
			if !ok {
				t.Fatalf("expected %s, got no diagnostics", tt.code.ID())
			}
			if first.Code != tt.code {
				t.Fatalf("expected %s, got %s (%s)", tt.code.ID(), first.Code.ID(), first.Message)
			}
		})
	}
}

func TestBlankLinesAndOwnLine(t *testing.T) {
	toks, _ := lex(t, "a\n\n\n\nb  # t\n\n# c\nc\n")
	var b, c, trailing, own token.Token
	for _, tok := range toks {
		switch {
		case tok.Text == "b":
			b = tok
		case tok.Text == "c":
			c = tok
		case tok.Text == "# t":
			trailing = tok
		case tok.Text == "# c":
			own = tok
		}
	}
	if !b.OwnLine || b.Blank != 3 {
		t.Fatalf("b: OwnLine=%v Blank=%d, want true 3", b.OwnLine, b.Blank)
	}
	if trailing.OwnLine {
		t.Fatalf("same-line comment must not be OwnLine")
	}
	if !own.OwnLine || own.Blank != 1 {
		t.Fatalf("own-line comment: OwnLine=%v Blank=%d, want true 1", own.OwnLine, own.Blank)
	}
	if c.Blank != 0 {
		t.Fatalf("c: Blank=%d, want 0", c.Blank)
	}
}

func TestIndentWidthAndSpans(t *testing.T) {
	src := "if x:\n\tpass\n"
	toks, _ := lex(t, src)
	for _, tok := range toks {
		if tok.Kind == token.Keyword && tok.Text == "pass" {
			if tok.Indent != 8 {
				t.Fatalf("tab indent: want 8, got %d", tok.Indent)
			}
		}
		if tok.Kind == token.Newline || tok.Kind == token.Indent || tok.Kind == token.Dedent || tok.Kind == token.EOF {
			continue
		}
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span/text mismatch: %q vs %q", got, tok.Text)
		}
	}
}

func TestNextAfterEOF(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddRaw("t.py", []byte("x\n"))), lexer.Options{})
	for range 4 {
		lx.Next()
	}
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("want EOF after end, got %v", tok.Kind)
	}
}
