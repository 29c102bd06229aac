// Package token models the annotated token trees respan reconstructs from.
// Invariants:
//   - Leaf.Span matches Text exactly when the leaf came from real source;
//     a synthetic leaf carries the zero Span (no location at all).
//   - A Group has no span of its own; its extent is derived from the spans
//     of its open and close delimiters.
//   - Stream order is emission order.
package token

import "respan/internal/source"

// Kind is the category of a leaf token.
type Kind uint8

const (
	// Ident is an identifier or keyword.
	Ident Kind = iota
	// Literal is a numeric, string, or character literal.
	Literal
	// Punct is a single punctuation character.
	Punct
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Literal:
		return "literal"
	case Punct:
		return "punct"
	default:
		return "invalid"
	}
}

// Delim identifies a Group's delimiter pair.
type Delim uint8

const (
	// Paren is the ( ) pair.
	Paren Delim = iota
	// Brace is the { } pair.
	Brace
	// Bracket is the [ ] pair.
	Bracket
	// None is an invisible grouping: it consumes the same position
	// bookkeeping as the visible pairs but contributes no characters.
	None
)

// Open returns the opening character, or 0 for None.
func (d Delim) Open() byte {
	switch d {
	case Paren:
		return '('
	case Brace:
		return '{'
	case Bracket:
		return '['
	default:
		return 0
	}
}

// Close returns the closing character, or 0 for None.
func (d Delim) Close() byte {
	switch d {
	case Paren:
		return ')'
	case Brace:
		return '}'
	case Bracket:
		return ']'
	default:
		return 0
	}
}

func (d Delim) String() string {
	switch d {
	case Paren:
		return "paren"
	case Brace:
		return "brace"
	case Bracket:
		return "bracket"
	default:
		return "none"
	}
}

// Tree is one node of a token tree: a Leaf or a Group.
type Tree interface {
	// Start returns the node's first original-source coordinate
	// (invalid for synthetic nodes).
	Start() source.Position
	// End returns the node's last original-source coordinate.
	End() source.Position
}

// Leaf is an atomic token: identifier, literal, or punctuation.
type Leaf struct {
	Kind Kind
	Text string
	Span source.Span
}

func (l Leaf) Start() source.Position { return l.Span.Start }
func (l Leaf) End() source.Position   { return l.Span.End }

// IsIdent reports whether the leaf is an identifier.
func (l Leaf) IsIdent() bool { return l.Kind == Ident }

// Group is a delimited nested stream. Open and Close are the spans of the
// two delimiter characters themselves.
type Group struct {
	Delim  Delim
	Open   source.Span
	Close  source.Span
	Stream Stream
}

func (g *Group) Start() source.Position { return g.Open.Start }
func (g *Group) End() source.Position   { return g.Close.End }

// Stream is one nesting level of a token tree, in emission order.
type Stream []Tree
