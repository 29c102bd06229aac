package lexer

import (
	"unicode"

	"respan/internal/token"
)

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// scanIdent consumes an identifier or keyword. Keywords are identifiers
// here; a token tree has no separate keyword kind.
func (lx *Lexer) scanIdent() token.Leaf {
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		r, size := lx.cursor.PeekRune()
		if size == 0 || !isIdentContinue(r) {
			break
		}
		lx.cursor.Bump()
	}
	return token.Leaf{
		Kind: token.Ident,
		Text: lx.cursor.TextFrom(mark),
		Span: lx.cursor.SpanFrom(mark),
	}
}
