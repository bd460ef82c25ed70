package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"

	"coral/internal/ast"
	"coral/internal/normalize"
	"coral/internal/source"
)

type golden struct {
	name  string
	in    string
	want  string
	width int
}

var goldens = []golden{
	{name: "assign spacing", in: "x=1\n", want: "x = 1\n"},
	{name: "single quotes", in: "x = \"hello\"\n", want: "x = 'hello'\n"},
	{name: "apostrophe keeps double quotes", in: "x = \"don't\"\n", want: "x = \"don't\"\n"},
	{name: "magic comma explodes", in: "f(a, b,)\n", want: "f(\n    a,\n    b,\n)\n"},
	{name: "no comma stays flat", in: "f(a, b)\n", want: "f(a, b)\n"},
	{name: "exploded without comma joins", in: "f(\n    a,\n    b\n)\n", want: "f(a, b)\n"},
	{
		name: "blank lines between defs",
		in:   "def f():\n    pass\n\n\n\n\n\ndef g():\n    pass\n",
		want: "def f():\n    pass\n\n\ndef g():\n    pass\n",
	},
	{
		name: "defs get two blank lines",
		in:   "import os\ndef f():\n    return os\nx = 1\n",
		want: "import os\n\n\ndef f():\n    return os\n\n\nx = 1\n",
	},
	{
		name: "comment stays on its element",
		in:   "x = [1,  # one\n     2]\n",
		want: "x = [\n    1,  # one\n    2,\n]\n",
	},
	{name: "comment spacing", in: "#comment\nx = 1 # trailing\n", want: "# comment\nx = 1  # trailing\n"},
	{name: "simple power hugs", in: "y = a ** 2\n", want: "y = a**2\n"},
	{name: "complex power spaced", in: "y = f(a)**2\n", want: "y = f(a) ** 2\n"},
	{name: "hex digits", in: "x = 0XFF\n", want: "x = 0xFF\n"},
	{name: "redundant parens", in: "x = (1)\n", want: "x = 1\n"},
	{name: "clause headers", in: "if True :\n  pass\nelse :\n  pass\n", want: "if True:\n    pass\nelse:\n    pass\n"},
	{name: "semicolons", in: "a = 1; b = 2\n", want: "a = 1\nb = 2\n"},
	{name: "shell line", in: "ls -la\n", want: "ls -la\n"},
	{name: "one element tuple", in: "x = (1,)\n", want: "x = (1,)\n"},
	{name: "bare tuple comma", in: "x = 1, 2,\n", want: "x = 1, 2\n"},
	{name: "keyword argument", in: "f(a = 1)\n", want: "f(a=1)\n"},
	{name: "annotated default", in: "def f(a:int=1, *args, **kw):\n    pass\n", want: "def f(a: int = 1, *args, **kw):\n    pass\n"},
	{name: "walrus", in: "if (n:=len(a)) > 10:\n    pass\n", want: "if (n := len(a)) > 10:\n    pass\n"},
	{name: "crlf", in: "x = 1\r\ny = 2\r\n", want: "x = 1\ny = 2\n"},
	{name: "empty", in: "", want: ""},
	{name: "missing newline", in: "x = 1", want: "x = 1\n"},
	{
		name:  "wrapped call",
		in:    "result = function(alpha, beta)\n",
		want:  "result = function(\n    alpha, beta\n)\n",
		width: 20,
	},
	{
		name:  "exploded import",
		in:    "from os import path, sep\n",
		want:  "from os import (\n    path,\n    sep,\n)\n",
		width: 20,
	},
	{
		name:  "split boolean chain",
		in:    "if alpha and beta and gamma:\n    pass\n",
		want:  "if (\n    alpha\n    and beta\n    and gamma\n):\n    pass\n",
		width: 20,
	},
	{
		name:  "keyword value chain",
		in:    "f(kw=alpha + beta)\n",
		want:  "f(\n    kw=alpha\n    + beta\n)\n",
		width: 12,
	},
	{
		name:  "parameter default chain",
		in:    "def f(arg=alpha + beta):\n    pass\n",
		want:  "def f(\n    arg=alpha\n    + beta\n):\n    pass\n",
		width: 14,
	},
	{
		name:  "dict value chain",
		in:    "x = {'key': alpha + beta}\n",
		want:  "x = {\n    'key': alpha\n    + beta\n}\n",
		width: 16,
	},
	{
		name:  "exploded del targets",
		in:    "del alpha, beta, gamma\n",
		want:  "del (\n    alpha,\n    beta,\n    gamma,\n)\n",
		width: 16,
	},
	{
		name:  "wrapped attribute chain",
		in:    "value = obj.first().second().xyz()\n",
		want:  "value = (\n    obj.first().second().xyz()\n)\n",
		width: 30,
	},
	{
		name:  "chain wraps whole before breaking an operand",
		in:    "value = f(aaa)[i] + g(bbb)[j]\n",
		want:  "value = (\n    f(aaa)[i] + g(bbb)[j]\n)\n",
		width: 26,
	},
}

func (g golden) options() Options {
	opts := DefaultOptions()
	if g.width > 0 {
		opts.LineWidth = g.width
	}
	return opts
}

func TestGoldens(t *testing.T) {
	for _, g := range goldens {
		t.Run(g.name, func(t *testing.T) {
			got, err := Text(g.in, g.options())
			if err != nil {
				t.Fatalf("Text: %v", err)
			}
			if diff := cmp.Diff(g.want, got); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	for _, g := range goldens {
		t.Run(g.name, func(t *testing.T) {
			once, err := Text(g.in, g.options())
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			twice, err := Text(once, g.options())
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("second pass changed the output (-first +second):\n%s", diff)
			}
		})
	}
}

func parseText(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	b, id, err := Parse(fs.Get(fs.AddRaw("test.py", []byte(src))))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return b, id
}

func TestSemanticsPreserved(t *testing.T) {
	for _, g := range goldens {
		t.Run(g.name, func(t *testing.T) {
			out, err := Text(g.in, g.options())
			if err != nil {
				t.Fatalf("Text: %v", err)
			}
			b1, f1 := parseText(t, g.in)
			b2, f2 := parseText(t, out)
			if !ast.Equivalent(b1, f1, b2, f2) {
				t.Fatalf("formatted tree differs from the input tree:\n%s", out)
			}
		})
	}
}

func TestLinesFitWidth(t *testing.T) {
	for _, g := range goldens {
		opts := g.options()
		out, err := Text(g.in, opts)
		if err != nil {
			t.Fatalf("%s: %v", g.name, err)
		}
		for i, line := range strings.Split(out, "\n") {
			if w := runewidth.StringWidth(line); w > opts.LineWidth {
				t.Fatalf("%s: line %d is %d columns wide, budget %d: %q", g.name, i+1, w, opts.LineWidth, line)
			}
		}
	}
}

func TestLongCallWrapsAtDefaultWidth(t *testing.T) {
	args := []string{"first_argument", "second_argument", "third_argument", "fourth_argument", "fifth_argument"}
	in := "value = compute(" + strings.Join(args, ", ") + ")\n"
	want := "value = compute(\n    " + strings.Join(args, ", ") + "\n)\n"
	got, err := Text(in, DefaultOptions())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapShortensOverlongValue(t *testing.T) {
	opts := DefaultOptions()
	opts.LineWidth = 30
	got, err := Text("value = obj.first().second().third_x()\n", opts)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "value = (\n    obj.first().second().third_x()\n)\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	// an atom never moves unless that makes it fit
	got, err = Text("value = an_identifier_far_too_long_to_fit\n", opts)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "value = an_identifier_far_too_long_to_fit\n" {
		t.Fatalf("expected the name to stay in place, got %q", got)
	}
}

func TestSplittableValuesFitDefaultWidth(t *testing.T) {
	operands := "first_operand_name + second_operand_name + third_operand_name + fourth_operand"
	inputs := []string{
		"def f(argument=" + operands + "):\n    pass\n",
		"x = {'key': " + operands + "_xx}\n",
		"call(keyword=" + operands + ")\n",
		"del first_variable_name, second_variable_name, third_variable_name, fourth_variable_name\n",
	}
	opts := DefaultOptions()
	for _, in := range inputs {
		out, err := Text(in, opts)
		if err != nil {
			t.Fatalf("Text(%q): %v", in, err)
		}
		for i, line := range strings.Split(out, "\n") {
			if w := runewidth.StringWidth(line); w > opts.LineWidth {
				t.Fatalf("line %d is %d columns wide:\n%s", i+1, w, out)
			}
		}
		again, err := Text(out, opts)
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if diff := cmp.Diff(out, again); diff != "" {
			t.Fatalf("second pass changed the output (-first +second):\n%s", diff)
		}
	}
}

func TestLongChainSplitsOncePerOperand(t *testing.T) {
	const terms = 20000
	in := "x = 1" + strings.Repeat(" + 1", terms-1) + "\n"
	want := "x = (\n    1\n" + strings.Repeat("    + 1\n", terms-1) + ")\n"
	got, err := Text(in, DefaultOptions())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected layout, first lines:\n%.200s", got)
	}
}

func TestLongDelTargetsExplode(t *testing.T) {
	const elems = 5000
	in := "del a" + strings.Repeat(", a", elems-1) + "\n"
	got, err := Text(in, DefaultOptions())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if lines := strings.Count(got, "\n"); lines != elems+2 {
		t.Fatalf("expected %d lines, got %d", elems+2, lines)
	}
}

func TestTrailingNewlineOption(t *testing.T) {
	got, err := Text("x = 1", Options{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "x = 1" {
		t.Fatalf("expected the missing newline to stay missing, got %q", got)
	}
	got, err = Text("x = 1\n", Options{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "x = 1\n" {
		t.Fatalf("expected the final newline to stay, got %q", got)
	}
}

func TestSkipRule(t *testing.T) {
	opts := DefaultOptions()
	opts.Skip = normalize.RuleQuotes
	got, err := Text("x = \"hello\"\n", opts)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "x = \"hello\"\n" {
		t.Fatalf("expected quotes untouched, got %q", got)
	}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		in      string
		changed bool
	}{
		{"x = 1\n", false},
		{"x=1\n", true},
		{"x = \"a\"\n", true},
		{"", false},
	}
	for _, tc := range cases {
		changed, err := Check(tc.in, DefaultOptions())
		if err != nil {
			t.Fatalf("Check(%q): %v", tc.in, err)
		}
		if changed != tc.changed {
			t.Fatalf("Check(%q) = %v, want %v", tc.in, changed, tc.changed)
		}
	}
}

func TestErrors(t *testing.T) {
	t.Run("lex", func(t *testing.T) {
		out, err := Text("x = 'abc\n", DefaultOptions())
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("expected *LexError, got %T (%v)", err, err)
		}
		if out != "" {
			t.Fatalf("expected no output on error, got %q", out)
		}
		if lexErr.Pos.Line != 1 {
			t.Fatalf("expected line 1, got %d", lexErr.Pos.Line)
		}
	})
	t.Run("parse", func(t *testing.T) {
		_, err := Text("if x\n    pass\n", DefaultOptions())
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %T (%v)", err, err)
		}
		if parseErr.Expected != "':'" || parseErr.Found == "" {
			t.Fatalf("unexpected error fields %+v", parseErr)
		}
		if !strings.Contains(err.Error(), "expected ':'") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})
	t.Run("depth", func(t *testing.T) {
		for _, src := range []string{
			"x = " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + "\n",
			"x = a" + strings.Repeat(".b", 100000) + "\n",
			"x = f" + strings.Repeat("()", 300) + "\n",
		} {
			_, err := Text(src, DefaultOptions())
			var deep *StructureTooDeepError
			if !errors.As(err, &deep) {
				t.Fatalf("%.12q...: expected *StructureTooDeepError, got %T (%v)", src, err, err)
			}
		}
	})
}

func TestUnstableErrorUnwraps(t *testing.T) {
	inner := &ParseError{Expected: "expression", Found: "end of file"}
	err := error(&UnstableError{Reason: "output does not parse", Err: inner})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr != inner {
		t.Fatalf("expected UnstableError to unwrap to the parse error")
	}
}
