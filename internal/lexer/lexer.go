// Package lexer turns Rust-flavored source text into a positioned token
// tree: identifier, literal, and single-character punctuation leaves plus
// nested groups for (), {}, and []. Every token carries its real span, so
// reconstructing an unmodified stream reproduces the input byte for byte.
// Whitespace and comments advance positions but produce no tokens.
//
// The lexer is a collaborator of the reconstruction core, never a part of
// it: emit consumes token trees from anywhere and does not know this
// package exists.
package lexer

import (
	"fmt"

	"respan/internal/source"
	"respan/internal/token"
)

// Lexer scans one source file into a token stream.
type Lexer struct {
	file   *source.File
	cursor Cursor
}

// New creates a lexer for the provided file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file)}
}

// Tokenize reads a file and scans it in one step.
func Tokenize(path string) (token.Stream, error) {
	f, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	return New(f).Tokenize()
}

// groupFrame is an open delimiter whose closing half has not been seen.
type groupFrame struct {
	delim  token.Delim
	open   source.Span
	stream token.Stream
}

// Tokenize scans the whole file. Unbalanced or mismatched delimiters and
// unterminated literals are errors.
func (lx *Lexer) Tokenize() (token.Stream, error) {
	// The bottom frame is the top-level stream; its delim is never used.
	stack := []groupFrame{{}}

	for {
		lx.skipTrivia()
		if lx.cursor.EOF() {
			break
		}

		top := &stack[len(stack)-1]
		b := lx.cursor.Peek()
		switch {
		case b == '(' || b == '{' || b == '[':
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			stack = append(stack, groupFrame{
				delim: openDelim(b),
				open:  lx.cursor.SpanFrom(mark),
			})

		case b == ')' || b == '}' || b == ']':
			if len(stack) == 1 {
				return nil, lx.errorf("unmatched %q", b)
			}
			want := stack[len(stack)-1].delim.Close()
			if b != want {
				return nil, lx.errorf("mismatched %q, expected %q", b, want)
			}
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.stream = append(parent.stream, &token.Group{
				Delim:  closed.delim,
				Open:   closed.open,
				Close:  lx.cursor.SpanFrom(mark),
				Stream: closed.stream,
			})

		case isIdentStart(rune(b)) || b >= 0x80:
			r, _ := lx.cursor.PeekRune()
			if !isIdentStart(r) {
				return nil, lx.errorf("unexpected character %q", r)
			}
			top.stream = append(top.stream, lx.scanIdent())

		case isDigit(b):
			top.stream = append(top.stream, lx.scanNumber())

		case b == '"':
			t, err := lx.scanString()
			if err != nil {
				return nil, err
			}
			top.stream = append(top.stream, t)

		case b == '\'':
			if err := lx.scanQuote(&top.stream); err != nil {
				return nil, err
			}

		default:
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			top.stream = append(top.stream, token.Leaf{
				Kind: token.Punct,
				Text: lx.cursor.TextFrom(mark),
				Span: lx.cursor.SpanFrom(mark),
			})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, fmt.Errorf("lex %s: unclosed %q opened at %s",
			lx.file.Path, open.delim.Open(), open.open.Start)
	}
	return stack[0].stream, nil
}

// skipTrivia advances past whitespace and // and /* */ comments. Block
// comments nest, as in Rust.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b0 != '/' {
			return
		}
		switch b1 {
		case '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth := 1
			for !lx.cursor.EOF() && depth > 0 {
				if c0, c1, ok := lx.cursor.Peek2(); ok {
					if c0 == '/' && c1 == '*' {
						lx.cursor.Bump()
						lx.cursor.Bump()
						depth++
						continue
					}
					if c0 == '*' && c1 == '/' {
						lx.cursor.Bump()
						lx.cursor.Bump()
						depth--
						continue
					}
				}
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("lex %s: %s at %s", lx.file.Path, msg, lx.cursor.Pos)
}

func openDelim(b byte) token.Delim {
	switch b {
	case '(':
		return token.Paren
	case '{':
		return token.Brace
	default:
		return token.Bracket
	}
}
