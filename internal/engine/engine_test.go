package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"respan/internal/engine"
)

func TestPassthrough(t *testing.T) {
	raw := "fn main( ){ }"
	got, err := engine.Passthrough{}.Format(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestEditionValidity(t *testing.T) {
	require.True(t, engine.Edition2018.Valid())
	require.True(t, engine.Edition2024.Valid())
	require.False(t, engine.Edition("1999").Valid())
	require.False(t, engine.Edition("").Valid())
}

func TestNewRustfmtDefaults(t *testing.T) {
	eng := engine.NewRustfmt("")
	require.Equal(t, engine.Edition2018, eng.Edition)
	require.True(t, eng.Quiet)
}

func TestRustfmtRejectsUnknownEdition(t *testing.T) {
	eng := &engine.Rustfmt{Edition: "nope"}
	_, err := eng.Format(context.Background(), "fn main() {}")

	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
	require.Contains(t, engErr.Error(), "edition")
}

func TestRustfmtMissingBinary(t *testing.T) {
	eng := &engine.Rustfmt{Path: "rustfmt-definitely-not-installed", Edition: engine.Edition2018}
	require.False(t, eng.Available())

	_, err := eng.Format(context.Background(), "fn main() {}")
	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("exit status 1")
	err := &engine.Error{Engine: "rustfmt", Stderr: "expected `}`", Err: base}
	require.Contains(t, err.Error(), "rustfmt")
	require.Contains(t, err.Error(), "expected `}`")
	require.ErrorIs(t, err, base)
}

func requireRustfmt(t *testing.T) *engine.Rustfmt {
	t.Helper()
	eng := engine.NewRustfmt(engine.Edition2018)
	if !eng.Available() {
		t.Skip("rustfmt not installed")
	}
	return eng
}

func TestRustfmtCanonicalizes(t *testing.T) {
	eng := requireRustfmt(t)
	got, err := eng.Format(context.Background(), "fn  main( ){ let x=1; }")
	require.NoError(t, err)
	require.Equal(t, "fn main() {\n    let x = 1;\n}\n", got)
	require.True(t, strings.HasSuffix(got, "\n"))
}

func TestRustfmtSurfacesInvalidInput(t *testing.T) {
	eng := requireRustfmt(t)
	_, err := eng.Format(context.Background(), "fn broken {")

	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
}
