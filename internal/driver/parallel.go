package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"respan/internal/engine"
	"respan/internal/token"
)

// RenderOptions configures a multi-file rendering pass.
type RenderOptions struct {
	// Engine formats the raw reconstructions; nil means Passthrough
	// (raw output only).
	Engine engine.Engine
	// Jobs bounds the number of files rendered concurrently;
	// <= 0 means GOMAXPROCS.
	Jobs int
	// Write rewrites each input file in place with its rendered output.
	// A token dump cannot be overwritten with text and is a per-file
	// error under Write.
	Write bool
}

// RenderResult is the outcome for one input path. Output and Err never
// both carry a value.
type RenderResult struct {
	Path   string
	Output string
	Err    error
}

// RenderPaths renders every path concurrently. Each file gets its own
// cursor, buffer, and engine invocation, so the only coordination is the
// worker limit. Per-file failures land in the result slot; the slice is
// ordered like the input. The returned error is reserved for cancellation.
func RenderPaths(ctx context.Context, paths []string, opts RenderOptions) ([]RenderResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	eng := opts.Engine
	if eng == nil {
		eng = engine.Passthrough{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]RenderResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = RenderResult{Path: path}
			stream, err := LoadStream(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			out, err := Render(gctx, stream, eng)
			if err != nil {
				results[i].Err = err
				return nil
			}
			if opts.Write {
				if filepath.Ext(path) == TokensExt {
					results[i].Err = fmt.Errorf("%s: cannot write rendered text back over a token dump", path)
					return nil
				}
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					results[i].Err = err
					return nil
				}
			}
			results[i].Output = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TokenizeResult is the outcome of tokenizing one input path.
type TokenizeResult struct {
	Path   string
	Stream token.Stream
	Err    error
}

// TokenizePaths loads a token stream for every path concurrently, for
// inspection or interchange dumps. Per-file failures land in the result
// slot; the slice is ordered like the input.
func TokenizePaths(ctx context.Context, paths []string, jobs int) ([]TokenizeResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]TokenizeResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			stream, err := LoadStream(path)
			results[i] = TokenizeResult{Path: path, Stream: stream, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
