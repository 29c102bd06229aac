package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"respan/internal/lexer"
	"respan/internal/source"
	"respan/internal/token"
)

func tokenize(t *testing.T, src string) token.Stream {
	t.Helper()
	stream, err := lexer.New(source.NewVirtual("test.rs", []byte(src))).Tokenize()
	require.NoError(t, err)
	return stream
}

func leaf(t *testing.T, tree token.Tree) token.Leaf {
	t.Helper()
	l, ok := tree.(token.Leaf)
	require.True(t, ok, "expected leaf, got %T", tree)
	return l
}

func group(t *testing.T, tree token.Tree) *token.Group {
	t.Helper()
	g, ok := tree.(*token.Group)
	require.True(t, ok, "expected group, got %T", tree)
	return g
}

func TestTokenizeSpans(t *testing.T) {
	stream := tokenize(t, "pub fn foo() {}")
	require.Len(t, stream, 5)

	pub := leaf(t, stream[0])
	require.Equal(t, token.Ident, pub.Kind)
	require.Equal(t, "pub", pub.Text)
	require.Equal(t, source.Position{Line: 1, Col: 0}, pub.Span.Start)
	require.Equal(t, source.Position{Line: 1, Col: 3}, pub.Span.End)

	fn := leaf(t, stream[1])
	require.Equal(t, source.Position{Line: 1, Col: 4}, fn.Span.Start)

	parens := group(t, stream[3])
	require.Equal(t, token.Paren, parens.Delim)
	require.Empty(t, parens.Stream)
	require.Equal(t, source.Position{Line: 1, Col: 10}, parens.Open.Start)
	require.Equal(t, source.Position{Line: 1, Col: 11}, parens.Open.End)
	require.Equal(t, source.Position{Line: 1, Col: 12}, parens.Close.End)

	braces := group(t, stream[4])
	require.Equal(t, token.Brace, braces.Delim)
}

func TestTokenizeMultiline(t *testing.T) {
	stream := tokenize(t, "fn main() {\n    let x = 1;\n}")
	body := group(t, stream[3])
	let := leaf(t, body.Stream[0])
	require.Equal(t, source.Position{Line: 2, Col: 4}, let.Span.Start)
	require.Equal(t, source.Position{Line: 3, Col: 1}, body.Close.End)
}

func TestTokenizeNestedGroups(t *testing.T) {
	stream := tokenize(t, "[a(b{c})]")
	outer := group(t, stream[0])
	require.Equal(t, token.Bracket, outer.Delim)
	inner := group(t, outer.Stream[1])
	require.Equal(t, token.Paren, inner.Delim)
	innermost := group(t, inner.Stream[1])
	require.Equal(t, token.Brace, innermost.Delim)
	require.Equal(t, "c", leaf(t, innermost.Stream[0]).Text)
}

func TestTokenizeLiterals(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{`"hello world"`, `"hello world"`},
		{`"esc \" aped"`, `"esc \" aped"`},
		{"'a'", "'a'"},
		{`'\n'`, `'\n'`},
		{`'\u{1F600}'`, `'\u{1F600}'`},
		{"42", "42"},
		{"1_000u32", "1_000u32"},
		{"0xff", "0xff"},
		{"3.25f64", "3.25f64"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stream := tokenize(t, tt.src)
			require.Len(t, stream, 1)
			lit := leaf(t, stream[0])
			require.Equal(t, token.Literal, lit.Kind)
			require.Equal(t, tt.text, lit.Text)
		})
	}
}

func TestTokenizeLifetime(t *testing.T) {
	stream := tokenize(t, "&'static str")
	require.Len(t, stream, 4)

	quote := leaf(t, stream[1])
	require.Equal(t, token.Punct, quote.Kind)
	require.Equal(t, "'", quote.Text)
	require.Equal(t, source.Position{Line: 1, Col: 1}, quote.Span.Start)

	name := leaf(t, stream[2])
	require.Equal(t, token.Ident, name.Kind)
	require.Equal(t, "static", name.Text)
	require.Equal(t, source.Position{Line: 1, Col: 2}, name.Span.Start)

	// A lifetime at end of input is still a lifetime, not a truncated
	// char literal.
	atEOF := tokenize(t, "'a")
	require.Len(t, atEOF, 2)
	require.Equal(t, token.Ident, leaf(t, atEOF[1]).Kind)
}

func TestTokenizeMethodCallOnInt(t *testing.T) {
	// "0.method()" is not a float literal.
	stream := tokenize(t, "0.max(x)")
	require.Equal(t, "0", leaf(t, stream[0]).Text)
	require.Equal(t, ".", leaf(t, stream[1]).Text)
	require.Equal(t, "max", leaf(t, stream[2]).Text)
}

func TestTokenizeSkipsComments(t *testing.T) {
	stream := tokenize(t, "a // line\nb /* block /* nested */ */ c")
	require.Len(t, stream, 3)
	b := leaf(t, stream[1])
	require.Equal(t, source.Position{Line: 2, Col: 0}, b.Span.Start)
	c := leaf(t, stream[2])
	require.Equal(t, "c", c.Text)
}

func TestTokenizePunctuationIsSingleChar(t *testing.T) {
	stream := tokenize(t, "a->b")
	require.Len(t, stream, 4)
	require.Equal(t, "-", leaf(t, stream[1]).Text)
	require.Equal(t, ">", leaf(t, stream[2]).Text)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed paren", "(a"},
		{"unmatched close", "a)"},
		{"mismatched close", "(a}"},
		{"unterminated string", `"abc`},
		{"unterminated char", "'+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexer.New(source.NewVirtual("bad.rs", []byte(tt.src))).Tokenize()
			require.Error(t, err)
			require.Contains(t, err.Error(), "bad.rs")
		})
	}
}

func TestTokenizeFromDisk(t *testing.T) {
	_, err := lexer.Tokenize("does-not-exist.rs")
	require.Error(t, err)
}
