package token

var keywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {},
	"and": {}, "as": {}, "assert": {}, "async": {}, "await": {},
	"break": {}, "class": {}, "continue": {},
	"def": {}, "del": {},
	"elif": {}, "else": {}, "except": {},
	"finally": {}, "for": {}, "from": {},
	"global": {}, "if": {}, "import": {}, "in": {}, "is": {},
	"lambda": {}, "nonlocal": {}, "not": {},
	"or": {}, "pass": {}, "raise": {}, "return": {},
	"try": {}, "while": {}, "with": {}, "yield": {},
}

// IsKeyword reports whether ident is a hard keyword. Soft keywords
// (match, case, type, _) are identifiers and resolved by the parser.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// operators lists every operator and delimiter, longest first within each
// leading byte so the lexer can match greedily.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...", "!=", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"**", "//", "<<", ">>", "<=", ">=", "==", ":=",
	"+", "-", "*", "/", "%", "@", "&", "|", "^", "~",
	"<", ">", "(", ")", "[", "]", "{", "}",
	",", ":", ".", ";", "=",
}

// MatchOperator returns the longest operator that prefixes s.
func MatchOperator(s string) (string, bool) {
	for _, op := range operators {
		if len(op) <= len(s) && s[:len(op)] == op {
			return op, true
		}
	}
	return "", false
}

var augAssign = map[string]struct{}{
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "//=": {}, "%=": {}, "**=": {},
	">>=": {}, "<<=": {}, "&=": {}, "|=": {}, "^=": {}, "@=": {},
}

// IsAugAssign reports whether op is an augmented assignment operator.
func IsAugAssign(op string) bool {
	_, ok := augAssign[op]
	return ok
}
