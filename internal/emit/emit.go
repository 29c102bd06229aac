// Package emit reconstructs source text from an annotated token tree.
// Tokens with real spans land exactly where the author wrote them; tokens
// without any location get minimally correct spacing. The output is raw:
// it reflects known positions faithfully but makes no style guarantees of
// its own, so callers normally hand it to a canonical formatting engine.
package emit

import (
	"strings"

	"respan/internal/source"
	"respan/internal/token"
)

// Reconstruct renders a token stream back into source text. It never
// fails: a malformed tree still produces some string, and it is the
// downstream formatter's job to reject it.
func Reconstruct(stream token.Stream) string {
	e := emitter{cursor: source.Origin}
	e.stream(stream)
	return e.buf.String()
}

// emitter owns the output buffer and the cursor (the last emitted source
// position) for a single reconstruction pass. Nothing is shared between
// passes, so independent reconstructions may run concurrently.
type emitter struct {
	buf    strings.Builder
	cursor source.Position
	// prevIdent tracks whether the last emitted leaf was an identifier;
	// it backs the forced-space rule and resets at every group boundary.
	prevIdent bool
}

// frame is a resume point: a partially consumed stream plus the group
// whose close delimiter is still pending once the stream runs out.
type frame struct {
	stream token.Stream
	next   int
	group  *token.Group
}

// stream walks the tree with an explicit stack of resume points, so
// nesting depth is bounded by heap rather than call frames.
func (e *emitter) stream(stream token.Stream) {
	stack := []frame{{stream: stream}}
	for len(stack) > 0 {
		fr := &stack[len(stack)-1]
		if fr.next == len(fr.stream) {
			if fr.group != nil {
				e.closeGroup(fr.group)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		tree := fr.stream[fr.next]
		fr.next++
		switch t := tree.(type) {
		case token.Leaf:
			e.leaf(t)
		case *token.Group:
			e.openGroup(t)
			stack = append(stack, frame{stream: t.Stream, group: t})
		}
	}
}

func (e *emitter) leaf(l token.Leaf) {
	// Two adjacent identifiers where either side has no real position
	// must not glue into one token ("pub" + "fn" is not "pubfn"): force
	// exactly one space, since the filler has nothing to measure.
	if l.Kind == token.Ident && e.prevIdent &&
		(!e.cursor.IsValid() || !l.Span.Start.IsValid()) {
		e.buf.WriteByte(' ')
	}
	e.fill(l.Span.Start)
	e.buf.WriteString(l.Text)
	e.cursor = l.Span.End
	e.prevIdent = l.Kind == token.Ident
}

func (e *emitter) openGroup(g *token.Group) {
	e.fill(g.Open.Start)
	// The open delimiter occupies exactly one character; its span end is
	// not independently reliable, so fabricate the position past it.
	after := g.Open.Start
	if after.IsValid() {
		after.Col++
	}
	e.cursor = after
	if ch := g.Delim.Open(); ch != 0 {
		e.buf.WriteByte(ch)
	}
	e.prevIdent = false
}

func (e *emitter) closeGroup(g *token.Group) {
	// Align to the position just before the closing character, never
	// below column zero.
	before := g.Close.End
	if before.IsValid() && before.Col > 0 {
		before.Col--
	}
	e.fill(before)
	// Siblings after the group measure from the true close end.
	e.cursor = g.Close.End
	if ch := g.Delim.Close(); ch != 0 {
		e.buf.WriteByte(ch)
	}
	e.prevIdent = false
}
