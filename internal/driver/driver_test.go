package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"respan/internal/driver"
	"respan/internal/engine"
	"respan/internal/token"
)

// failEngine simulates the external formatter rejecting its input.
type failEngine struct{}

func (failEngine) Format(_ context.Context, _ string) (string, error) {
	return "", &engine.Error{Engine: "stub", Stderr: "syntax error", Err: errors.New("exit status 1")}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderPassthrough(t *testing.T) {
	stream := token.Stream{token.NewIdent("pub"), token.NewIdent("fn")}
	out, err := driver.Render(context.Background(), stream, engine.Passthrough{})
	require.NoError(t, err)
	require.Equal(t, "pub fn", out)
}

func TestRenderSurfacesEngineFailure(t *testing.T) {
	// A malformed tree serializes fine; the failure comes from the
	// engine, typed, and propagates verbatim.
	stream := token.Stream{token.NewIdent("fn"), token.NewPunct('{')}
	_, err := driver.Render(context.Background(), stream, failEngine{})

	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
	require.Equal(t, "syntax error", engErr.Stderr)
}

func TestLoadStreamFromSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.rs", "fn id(x: u32) -> u32 { x }")
	stream, err := driver.LoadStream(path)
	require.NoError(t, err)
	require.NotEmpty(t, stream)

	out, err := driver.Render(context.Background(), stream, engine.Passthrough{})
	require.NoError(t, err)
	require.Equal(t, "fn id(x: u32) -> u32 { x }", out)
}

func TestLoadStreamFromTokensDump(t *testing.T) {
	dir := t.TempDir()
	stream := token.Stream{token.NewIdent("pub"), token.NewIdent("fn")}
	data, err := token.EncodeStream(stream)
	require.NoError(t, err)
	path := writeFile(t, dir, "synthetic.tokens", string(data))

	got, err := driver.LoadStream(path)
	require.NoError(t, err)
	require.Equal(t, stream, got)
}

func TestRenderPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.rs", "fn a() {}")
	b := writeFile(t, dir, "b.rs", "fn b() {}")
	missing := filepath.Join(dir, "missing.rs")

	results, err := driver.RenderPaths(context.Background(), []string{a, b, missing},
		driver.RenderOptions{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Equal(t, a, results[0].Path)
	require.NoError(t, results[0].Err)
	require.Equal(t, "fn a() {}", results[0].Output)

	require.Equal(t, "fn b() {}", results[1].Output)

	require.Error(t, results[2].Err)
	require.Empty(t, results[2].Output)
}

func TestRenderPathsWriteBack(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.rs", "fn  a () {}")

	results, err := driver.RenderPaths(context.Background(), []string{path},
		driver.RenderOptions{Write: true})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	// Passthrough reconstruction of real spans reproduces the source;
	// the file is rewritten with exactly the rendered output.
	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "fn  a () {}", string(rewritten))
	require.Equal(t, results[0].Output, string(rewritten))
}

func TestRenderPathsWriteBackRejectsTokenDumps(t *testing.T) {
	dir := t.TempDir()
	stream := token.Stream{token.NewIdent("fn")}
	data, err := token.EncodeStream(stream)
	require.NoError(t, err)
	path := writeFile(t, dir, "a.tokens", string(data))

	results, err := driver.RenderPaths(context.Background(), []string{path},
		driver.RenderOptions{Write: true})
	require.NoError(t, err)
	require.ErrorContains(t, results[0].Err, "token dump")

	// The dump itself is untouched.
	kept, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, kept)
}

func TestTokenizePaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.rs", "fn a() {}")
	missing := filepath.Join(dir, "missing.rs")

	results, err := driver.TokenizePaths(context.Background(), []string{a, missing}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, a, results[0].Path)
	require.NoError(t, results[0].Err)
	require.Len(t, results[0].Stream, 4)

	require.Error(t, results[1].Err)
	require.Empty(t, results[1].Stream)
}

func requireRustfmt(t *testing.T) *engine.Rustfmt {
	t.Helper()
	eng := engine.NewRustfmt(engine.Edition2018)
	if !eng.Available() {
		t.Skip("rustfmt not installed")
	}
	return eng
}

func TestRenderCanonicalSourceByteIdentical(t *testing.T) {
	eng := requireRustfmt(t)

	// Source already in canonical style survives the whole pipeline
	// unchanged: the reconstruction preserves every recorded position
	// and the formatter finds nothing to fix.
	code := "pub fn foo() {\n    let foo = 'a';\n\n    let bar = 'b';\n}\n"
	dir := t.TempDir()
	path := writeFile(t, dir, "canonical.rs", code)

	stream, err := driver.LoadStream(path)
	require.NoError(t, err)
	out, err := driver.Render(context.Background(), stream, eng)
	require.NoError(t, err)
	require.Equal(t, code, out)
}

func TestRenderSyntheticFunctionCanonicalized(t *testing.T) {
	eng := requireRustfmt(t)

	// An all-synthetic tree only gets minimal spacing from the
	// serializer; the formatter produces the canonical block form.
	stream := token.Stream{
		token.NewIdent("pub"),
		token.NewIdent("fn"),
		token.NewIdent("nop"),
		token.NewGroup(token.Paren, token.Stream{
			token.NewIdent("arg"),
			token.NewPunct(':'),
			token.NewPunct('&'),
			token.NewPunct('\''),
			token.NewIdent("static"),
			token.NewIdent("str"),
		}),
		token.NewPunct('-'),
		token.NewPunct('>'),
		token.NewPunct('&'),
		token.NewPunct('\''),
		token.NewIdent("static"),
		token.NewIdent("str"),
		token.NewGroup(token.Brace, token.Stream{token.NewIdent("arg")}),
	}
	out, err := driver.Render(context.Background(), stream, eng)
	require.NoError(t, err)
	require.Equal(t, "pub fn nop(arg: &'static str) -> &'static str {\n    arg\n}\n", out)
}

func TestRenderPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	paths := make([]string, 16)
	for i := range paths {
		paths[i] = writeFile(t, dir, filepath.Base(t.Name())+string(rune('a'+i))+".rs", "fn f() {}")
	}

	_, err := driver.RenderPaths(ctx, paths, driver.RenderOptions{Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
}
