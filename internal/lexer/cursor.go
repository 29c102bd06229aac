package lexer

import (
	"unicode/utf8"

	"respan/internal/source"
)

// Cursor is a position in a file: a byte offset plus the line/column
// coordinate the offset corresponds to.
type Cursor struct {
	File *source.File
	Off  uint32
	Pos  source.Position
}

// NewCursor creates a cursor at the start of the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Pos: source.Origin}
}

// EOF reports whether the cursor reached the end of the file.
func (c *Cursor) EOF() bool {
	return c.Off >= c.File.Len()
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 reads the current and next byte; ok is false near EOF.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.File.Len() {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// PeekRune decodes the rune at the cursor without advancing.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return 0, 0
	}
	return utf8.DecodeRune(c.File.Content[c.Off:])
}

// Bump advances past the current rune, tracking line and column, and
// returns the rune read. Columns advance by display-cell width so spans
// line up with what the author saw.
func (c *Cursor) Bump() rune {
	r, size := c.PeekRune()
	if size == 0 {
		return 0
	}
	c.Off += uint32(size)
	if r == '\n' {
		c.Pos.Line++
		c.Pos.Col = 0
	} else {
		c.Pos.Col += source.ColWidth(r)
	}
	return r
}

// Mark is a saved cursor state used to recover the span and text of a
// scanned fragment.
type Mark struct {
	Off uint32
	Pos source.Position
}

// Mark saves the current cursor state.
func (c *Cursor) Mark() Mark {
	return Mark{Off: c.Off, Pos: c.Pos}
}

// SpanFrom returns the span of the fragment scanned since the mark.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: m.Pos, End: c.Pos}
}

// TextFrom returns the source text scanned since the mark.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m.Off:c.Off])
}
