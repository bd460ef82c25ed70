// Package token defines lexical token kinds for the coral formatter.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly for every kind except Newline,
//     Indent, Dedent and EOF, whose Text is empty.
//   - Blank lines are counted on the following token (Token.Blank); they
//     never appear as tokens.
//   - Soft keywords (match, case, type, _) are Ident tokens.
package token
