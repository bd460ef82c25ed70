package token

// Kind is the coarse category of a token. Operators and keywords share one
// kind each; the exact lexeme lives in Token.Text.
type Kind uint8

const (
	// Invalid marks a token the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of input. It is always the last token.
	EOF
	// Ident is a name, including soft keywords such as match and case.
	Ident
	// Keyword is a reserved word (def, if, not, None, ...).
	Keyword
	// String is a complete string literal including prefix and quotes.
	String
	// Number is an integer, float or imaginary literal.
	Number
	// Op is an operator or delimiter.
	Op
	// Comment runs from '#' to the end of the physical line.
	Comment
	// Newline ends a logical line.
	Newline
	// Indent opens a block.
	Indent
	// Dedent closes a block.
	Dedent
	// ShellFragment is an opaque span of shell-superset syntax.
	ShellFragment
)

var kindNames = [...]string{
	Invalid:       "INVALID",
	EOF:           "EOF",
	Ident:         "IDENT",
	Keyword:       "KEYWORD",
	String:        "STRING",
	Number:        "NUMBER",
	Op:            "OP",
	Comment:       "COMMENT",
	Newline:       "NEWLINE",
	Indent:        "INDENT",
	Dedent:        "DEDENT",
	ShellFragment: "SHELL_FRAGMENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}
