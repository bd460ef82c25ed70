// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (source -> lexer -> parser -> format). They guard against panics and
// hangs on arbitrary input, and check that formatting is idempotent and
// keeps the syntax tree of every input it accepts.
package fuzztests
