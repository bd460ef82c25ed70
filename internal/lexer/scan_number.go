package lexer

import (
	"coral/internal/diag"
	"coral/internal/token"
)

// scanNumber scans 0x/0o/0b integers, decimal integers and floats with an
// optional exponent and imaginary suffix. Underscores are accepted anywhere
// after the first digit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		var valid func(byte) bool
		switch b1 {
		case 'x', 'X':
			valid = isHex
		case 'o', 'O':
			valid = isOct
		case 'b', 'B':
			valid = isBin
		}
		if valid != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for {
				b := lx.cursor.Peek()
				if b == '_' {
					lx.cursor.Bump()
					continue
				}
				if !valid(b) {
					break
				}
				lx.cursor.Bump()
				digits++
			}
			sp := lx.cursor.SpanFrom(start)
			if digits == 0 {
				lx.errLex(diag.LexBadNumber, sp, "invalid "+lx.text(start)+" literal")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
			}
			return token.Token{Kind: token.Number, Span: sp, Text: lx.text(start)}
		}
	}

	lx.scanDigits()
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if !lx.cursor.Eat('+') {
			lx.cursor.Eat('-')
		}
		if isDec(lx.cursor.Peek()) {
			lx.scanDigits()
		} else {
			lx.cursor.Reset(m)
		}
	}
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Number, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
}

func (lx *Lexer) scanDigits() {
	for {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}
