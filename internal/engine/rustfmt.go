package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the rustfmt executable resolved from PATH when no
// explicit path is configured.
const DefaultBinary = "rustfmt"

// Rustfmt formats source by running the rustfmt binary with a fixed
// edition profile. The configuration surface across this boundary is
// exactly the edition selector and the quietness toggle.
type Rustfmt struct {
	// Path is the executable to run; empty means DefaultBinary.
	Path    string
	Edition Edition
	Quiet   bool
}

// NewRustfmt builds an engine for the given edition, defaulting to 2018.
func NewRustfmt(edition Edition) *Rustfmt {
	if edition == "" {
		edition = Edition2018
	}
	return &Rustfmt{Edition: edition, Quiet: true}
}

// Format runs rustfmt over src, feeding it on stdin and emitting to
// stdout. The call is atomic: full canonical output on success, an *Error
// carrying rustfmt's stderr otherwise, never partial output.
func (r *Rustfmt) Format(ctx context.Context, src string) (string, error) {
	if !r.Edition.Valid() {
		return "", &Error{
			Engine: r.binary(),
			Err:    fmt.Errorf("unknown edition %q", r.Edition),
		}
	}

	args := []string{"--edition", string(r.Edition), "--emit", "stdout"}
	if r.Quiet {
		args = append(args, "--quiet")
	}

	cmd := exec.CommandContext(ctx, r.binary(), args...)
	cmd.Stdin = strings.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &Error{
			Engine: r.binary(),
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

func (r *Rustfmt) binary() string {
	if r.Path != "" {
		return r.Path
	}
	return DefaultBinary
}

// Available reports whether the engine binary can be resolved, so callers
// and tests can degrade gracefully when rustfmt is not installed.
func (r *Rustfmt) Available() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}
