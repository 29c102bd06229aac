// Package engine is the boundary to the canonical formatting engine that
// turns raw reconstructed text into syntactically valid, consistently
// styled output. The reconstruction core never fails; everything that can
// go wrong in the pipeline surfaces here, as an *Error.
package engine

import (
	"context"
	"fmt"
)

// Edition selects a fixed language-edition profile for the engine.
type Edition string

const (
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
	Edition2021 Edition = "2021"
	Edition2024 Edition = "2024"
)

// Valid reports whether the edition is one the engine accepts.
func (e Edition) Valid() bool {
	switch e {
	case Edition2015, Edition2018, Edition2021, Edition2024:
		return true
	default:
		return false
	}
}

// Engine formats raw source text into its canonical form. Implementations
// must be deterministic for a fixed configuration, must not retain src
// beyond the call, and must report syntactically invalid input as an error
// rather than producing corrupted output.
type Engine interface {
	Format(ctx context.Context, src string) (string, error)
}

// Error is the engine's typed failure: the pipeline's sole failure mode.
// It is returned to the caller verbatim, never retried.
type Error struct {
	Engine string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Engine, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Engine, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Passthrough returns its input unchanged. It stands in for the external
// engine when only the position logic is under test, or when the caller
// asked for the raw reconstruction.
type Passthrough struct{}

func (Passthrough) Format(_ context.Context, src string) (string, error) {
	return src, nil
}
