package token

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"respan/internal/source"
)

// Current schema version - increment when the wire format changes
const codecSchemaVersion uint16 = 1

const nodeGroup uint8 = 255

// wireDump is the on-disk form of a token stream: a flat, schema-versioned
// payload so externally produced trees can be handed to the renderer.
type wireDump struct {
	Schema uint16
	Nodes  []wireNode
}

// wireNode is one tree node. Kind is the Leaf kind for leaves and
// nodeGroup for groups, where Delim, Close, and the nested Nodes apply.
type wireNode struct {
	Kind  uint8
	Text  string `msgpack:",omitempty"`
	Span  wireSpan
	Delim uint8 `msgpack:",omitempty"`
	Close wireSpan
	Nodes []wireNode `msgpack:",omitempty"`
}

type wireSpan struct {
	StartLine uint32 `msgpack:",omitempty"`
	StartCol  uint32 `msgpack:",omitempty"`
	EndLine   uint32 `msgpack:",omitempty"`
	EndCol    uint32 `msgpack:",omitempty"`
}

func toWireSpan(s source.Span) wireSpan {
	return wireSpan{
		StartLine: s.Start.Line,
		StartCol:  s.Start.Col,
		EndLine:   s.End.Line,
		EndCol:    s.End.Col,
	}
}

func fromWireSpan(w wireSpan) source.Span {
	return source.Span{
		Start: source.Position{Line: w.StartLine, Col: w.StartCol},
		End:   source.Position{Line: w.EndLine, Col: w.EndCol},
	}
}

// EncodeStream serializes a stream to its msgpack interchange form.
func EncodeStream(stream Stream) ([]byte, error) {
	dump := wireDump{
		Schema: codecSchemaVersion,
		Nodes:  toWireNodes(stream),
	}
	data, err := msgpack.Marshal(&dump)
	if err != nil {
		return nil, fmt.Errorf("encode token stream: %w", err)
	}
	return data, nil
}

// DecodeStream parses a msgpack interchange dump back into a stream.
// Dumps with an unknown schema version are rejected rather than guessed at.
func DecodeStream(data []byte) (Stream, error) {
	var dump wireDump
	if err := msgpack.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("decode token stream: %w", err)
	}
	if dump.Schema != codecSchemaVersion {
		return nil, fmt.Errorf("decode token stream: unsupported schema version %d", dump.Schema)
	}
	return fromWireNodes(dump.Nodes)
}

func toWireNodes(stream Stream) []wireNode {
	nodes := make([]wireNode, 0, len(stream))
	for _, tree := range stream {
		switch t := tree.(type) {
		case Leaf:
			nodes = append(nodes, wireNode{
				Kind: uint8(t.Kind),
				Text: t.Text,
				Span: toWireSpan(t.Span),
			})
		case *Group:
			nodes = append(nodes, wireNode{
				Kind:  nodeGroup,
				Span:  toWireSpan(t.Open),
				Delim: uint8(t.Delim),
				Close: toWireSpan(t.Close),
				Nodes: toWireNodes(t.Stream),
			})
		}
	}
	return nodes
}

func fromWireNodes(nodes []wireNode) (Stream, error) {
	stream := make(Stream, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == nodeGroup {
			inner, err := fromWireNodes(n.Nodes)
			if err != nil {
				return nil, err
			}
			if n.Delim > uint8(None) {
				return nil, fmt.Errorf("decode token stream: unknown delimiter %d", n.Delim)
			}
			stream = append(stream, &Group{
				Delim:  Delim(n.Delim),
				Open:   fromWireSpan(n.Span),
				Close:  fromWireSpan(n.Close),
				Stream: inner,
			})
			continue
		}
		if n.Kind > uint8(Punct) {
			return nil, fmt.Errorf("decode token stream: unknown leaf kind %d", n.Kind)
		}
		stream = append(stream, Leaf{
			Kind: Kind(n.Kind),
			Text: n.Text,
			Span: fromWireSpan(n.Span),
		})
	}
	return stream, nil
}
