// Package driver wires the pipeline together: token trees in, canonical
// text out. It owns the input paths (plain source is lexed, .tokens dumps
// are decoded) and the single point where the formatting engine's failure
// propagates to the caller.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"respan/internal/emit"
	"respan/internal/engine"
	"respan/internal/lexer"
	"respan/internal/token"
)

// TokensExt marks msgpack token-stream dumps produced by `respan tokenize`
// or by an external tokenizer.
const TokensExt = ".tokens"

// Render reconstructs the stream and hands the raw text to the engine.
// Reconstruction cannot fail; the engine's error is returned verbatim.
func Render(ctx context.Context, stream token.Stream, eng engine.Engine) (string, error) {
	return eng.Format(ctx, emit.Reconstruct(stream))
}

// LoadStream produces a token stream from a path: .tokens files decode
// directly, anything else is read and lexed.
func LoadStream(path string) (token.Stream, error) {
	if filepath.Ext(path) == TokensExt {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		stream, err := token.DecodeStream(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return stream, nil
	}
	return lexer.Tokenize(path)
}
