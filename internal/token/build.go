package token

// Constructors for synthetic trees: nodes built programmatically carry the
// zero span, so the serializer knows there is no original location to
// preserve.

// NewIdent builds a synthetic identifier leaf.
func NewIdent(text string) Leaf {
	return Leaf{Kind: Ident, Text: text}
}

// NewLiteral builds a synthetic literal leaf.
func NewLiteral(text string) Leaf {
	return Leaf{Kind: Literal, Text: text}
}

// NewPunct builds a synthetic punctuation leaf.
func NewPunct(ch byte) Leaf {
	return Leaf{Kind: Punct, Text: string(ch)}
}

// NewGroup builds a synthetic group around stream.
func NewGroup(delim Delim, stream Stream) *Group {
	return &Group{Delim: delim, Stream: stream}
}
