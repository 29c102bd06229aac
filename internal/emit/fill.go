package emit

import (
	"strings"

	"respan/internal/source"
)

// fill appends the literal gap needed to advance the cursor to curr: all
// required newlines first, then the column fill on the arrival line. After
// a line break the column count is absolute; on the same line it is the
// delta from the cursor. Emits nothing when either side has no real
// position (synthetic token, or a synthetic token poisoned the cursor) or
// when curr precedes the cursor (stale span after reordering - a gap is
// never negative). Pure whitespace distance; no validation of the result.
func (e *emitter) fill(curr source.Position) {
	prev := e.cursor
	if !prev.IsValid() || !curr.IsValid() || prev.After(curr) {
		return
	}
	lines := curr.Line - prev.Line
	cols := curr.Col
	if lines == 0 {
		cols = curr.Col - prev.Col
	}
	e.buf.WriteString(strings.Repeat("\n", int(lines)))
	e.buf.WriteString(strings.Repeat(" ", int(cols)))
}
