package source

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Position is a line/column coordinate in original source text.
// Line is 1-based, Col is 0-based. The zero value means the position is
// unknown: a token constructed programmatically has no coordinate at all,
// which is distinct from the real origin {1,0}.
type Position struct {
	Line uint32
	Col  uint32
}

// Origin is the coordinate of the first character of a source text and the
// initial cursor value of a reconstruction pass.
var Origin = Position{Line: 1, Col: 0}

// IsValid reports whether the position refers to a real source location.
func (p Position) IsValid() bool {
	return p.Line >= 1
}

// Before reports whether p is strictly before other in lexicographic
// (line, column) order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// After reports whether p is strictly after other.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// Advance returns the position after emitting text starting at p. Newlines
// reset the column; column width is measured in display cells so wide
// glyphs keep reconstruction aligned.
func (p Position) Advance(text string) Position {
	if !p.IsValid() {
		return p
	}
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Col = 0
			continue
		}
		p.Col += ColWidth(r)
	}
	return p
}

// ColWidth is the column advance of one rune: its display-cell width, but
// never less than one. Tabs and other control characters still occupy a
// column; erasing them would silently drop the author's indentation.
func ColWidth(r rune) uint32 {
	if w := runewidth.RuneWidth(r); w > 0 {
		return uint32(w)
	}
	return 1
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is the start/end coordinate pair of a token in original source.
// A span with an invalid start is synthetic: the token it annotates was
// built programmatically and has no original location.
type Span struct {
	Start Position
	End   Position
}

// SpanAt builds the span of text emitted at start.
func SpanAt(start Position, text string) Span {
	return Span{Start: start, End: start.Advance(text)}
}

// IsSynthetic reports whether the span carries no real location data.
func (s Span) IsSynthetic() bool {
	return !s.Start.IsValid()
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}
