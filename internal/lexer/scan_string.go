package lexer

import (
	"unicode/utf8"

	"respan/internal/token"
)

// scanString consumes a "..." literal. Escapes are skipped, not validated;
// newlines are legal inside a string. Missing the closing quote is an
// error.
func (lx *Lexer) scanString() (token.Leaf, error) {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return token.Leaf{
				Kind: token.Literal,
				Text: lx.cursor.TextFrom(mark),
				Span: lx.cursor.SpanFrom(mark),
			}, nil
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
		}
		lx.cursor.Bump()
	}
	return token.Leaf{}, lx.errorf("unterminated string literal")
}

// scanQuote disambiguates a single quote: 'a' is a char literal, 'static
// is a lifetime. A lifetime is emitted as two tokens, the quote as
// punctuation followed by the name, matching the tree shape parsers of
// this token format produce.
func (lx *Lexer) scanQuote(out *token.Stream) error {
	if run, terminated := lx.peekQuoteRun(); run > 0 && !terminated {
		mark := lx.cursor.Mark()
		lx.cursor.Bump() // the quote
		*out = append(*out, token.Leaf{
			Kind: token.Punct,
			Text: lx.cursor.TextFrom(mark),
			Span: lx.cursor.SpanFrom(mark),
		})
		*out = append(*out, lx.scanIdent())
		return nil
	}

	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	if lx.cursor.EOF() {
		return lx.errorf("unterminated character literal")
	}
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		// Consume up to the closing quote; covers \n, \x7f, \u{...}.
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' {
			lx.cursor.Bump()
		}
	} else {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() || lx.cursor.Peek() != '\'' {
		return lx.errorf("unterminated character literal")
	}
	lx.cursor.Bump() // closing quote
	*out = append(*out, token.Leaf{
		Kind: token.Literal,
		Text: lx.cursor.TextFrom(mark),
		Span: lx.cursor.SpanFrom(mark),
	})
	return nil
}

// peekQuoteRun looks past the quote at the cursor: run is the length in
// runes of the identifier run that follows, terminated reports whether a
// closing quote comes right after it. ('a' gives run 1 terminated true;
// 'static gives run 6 terminated false.)
func (lx *Lexer) peekQuoteRun() (run int, terminated bool) {
	content := lx.cursor.File.Content[lx.cursor.Off:]
	i := 1 // past the quote
	for i < len(content) {
		r, size := utf8.DecodeRune(content[i:])
		if run == 0 && !isIdentStart(r) {
			break
		}
		if run > 0 && !isIdentContinue(r) {
			break
		}
		run++
		i += size
	}
	terminated = i < len(content) && content[i] == '\''
	return run, terminated
}
