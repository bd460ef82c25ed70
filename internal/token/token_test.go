package token_test

import (
	"testing"

	"coral/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Ident:         "IDENT",
		token.ShellFragment: "SHELL_FRAGMENT",
		token.EOF:           "EOF",
		token.Kind(200):     "UNKNOWN",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"def", "class", "None", "lambda", "await", "nonlocal"} {
		if !token.IsKeyword(kw) {
			t.Fatalf("%q should be a keyword", kw)
		}
	}
	for _, name := range []string{"match", "case", "type", "_", "print", "self"} {
		if token.IsKeyword(name) {
			t.Fatalf("%q must NOT be a hard keyword", name)
		}
	}
}

func TestMatchOperator(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"**=x", "**=", true},
		{"** 2", "**", true},
		{"*x", "*", true},
		{"//=", "//=", true},
		{"->int", "->", true},
		{":=", ":=", true},
		{"...", "...", true},
		{"..", ".", true},
		{"!=", "!=", true},
		{"!", "", false},
		{"?", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := token.MatchOperator(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("MatchOperator(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	open := token.Token{Kind: token.Op, Text: "["}
	if !open.IsOpen() || open.IsClose() || !open.IsOp("[") {
		t.Fatalf("bracket predicates wrong for %q", open.Text)
	}
	if token.Closer("[") != "]" || token.Closer("x") != "" {
		t.Fatalf("Closer mismatch")
	}
	soft := token.Token{Kind: token.Ident, Text: "match"}
	if !soft.IsSoft("match") || soft.IsKeyword("match") {
		t.Fatalf("soft keyword must be an identifier")
	}
	if !(token.Token{Kind: token.Dedent}).IsLayout() {
		t.Fatalf("dedent is a layout token")
	}
	if !token.IsAugAssign("//=") || token.IsAugAssign("==") {
		t.Fatalf("IsAugAssign mismatch")
	}
}
