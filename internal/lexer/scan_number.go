package lexer

import "respan/internal/token"

// scanNumber consumes a numeric literal including digit separators, a
// fractional part, and any alphanumeric suffix (1_000, 1.5, 0xff, 1u32).
// The exact digits are not validated; the token tree carries literals as
// written and the downstream formatter rejects nonsense.
func (lx *Lexer) scanNumber() token.Leaf {
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDigit(b) || b == '_' ||
			(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			lx.cursor.Bump()
			continue
		}
		// A dot continues the literal only when a digit follows;
		// "0.5" is one token, "0.method()" is not.
		if b == '.' {
			if _, b1, ok := lx.cursor.Peek2(); ok && isDigit(b1) {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
		}
		break
	}
	return token.Leaf{
		Kind: token.Literal,
		Text: lx.cursor.TextFrom(mark),
		Span: lx.cursor.SpanFrom(mark),
	}
}
