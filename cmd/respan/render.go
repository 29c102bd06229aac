package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"respan/internal/config"
	"respan/internal/driver"
	"respan/internal/engine"
	"respan/internal/observ"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <path>...",
	Short: "Reconstruct source text and format it canonically",
	Long: `Render turns token trees back into source text, preserving the original
line breaks and indentation recorded in their spans, then pipes the result
through rustfmt. Inputs ending in ` + driver.TokensExt + ` are msgpack token
dumps; anything else is tokenized first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("edition", "", "language edition profile (2015|2018|2021|2024)")
	renderCmd.Flags().String("engine", "", "formatting engine binary (default rustfmt from PATH)")
	renderCmd.Flags().Bool("raw", false, "print the raw reconstruction, skipping the formatter")
	renderCmd.Flags().Int("jobs", 0, "max files rendered concurrently (0 = one per CPU)")
	renderCmd.Flags().String("format", "text", "output format (text|json)")
	renderCmd.Flags().Bool("write", false, "rewrite input files in place instead of printing")
}

func runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if write && outputFormat != "text" {
		return fmt.Errorf("render: --write is only supported with text output")
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	opts, err := renderOptions(cmd, raw)
	if err != nil {
		return err
	}
	opts.Write = write

	timer := observ.NewTimer()
	phase := timer.Begin("render")
	results, err := driver.RenderPaths(cmd.Context(), args, opts)
	timer.End(phase, fmt.Sprintf("%d files", len(args)))
	if err != nil {
		return err
	}

	if showTimings && !quiet {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	switch outputFormat {
	case "text":
		return renderText(results, write, quiet)
	case "json":
		return renderJSON(results)
	default:
		return fmt.Errorf("render: unsupported output format %q", outputFormat)
	}
}

// renderOptions merges flags over the nearest respan.toml over defaults.
func renderOptions(cmd *cobra.Command, raw bool) (driver.RenderOptions, error) {
	editionFlag, err := cmd.Flags().GetString("edition")
	if err != nil {
		return driver.RenderOptions{}, err
	}
	engineFlag, err := cmd.Flags().GetString("engine")
	if err != nil {
		return driver.RenderOptions{}, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return driver.RenderOptions{}, err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return driver.RenderOptions{}, err
	}

	manifest, ok, err := config.Load(".")
	if err != nil {
		return driver.RenderOptions{}, err
	}
	if ok {
		fc := manifest.Config.Format
		if editionFlag == "" {
			editionFlag = fc.Edition
		}
		if engineFlag == "" {
			engineFlag = fc.Engine
		}
		if fc.Quiet != nil {
			quiet = *fc.Quiet
		}
		if jobs == 0 {
			jobs = manifest.Config.Render.Jobs
		}
	}

	opts := driver.RenderOptions{Jobs: jobs}
	if raw {
		opts.Engine = engine.Passthrough{}
		return opts, nil
	}
	eng := engine.NewRustfmt(engine.Edition(editionFlag))
	eng.Path = engineFlag
	eng.Quiet = quiet
	opts.Engine = eng
	return opts, nil
}

func renderText(results []driver.RenderResult, write, quiet bool) error {
	var failed bool
	for _, res := range results {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		if write {
			if !quiet {
				fmt.Printf("wrote %s\n", res.Path)
			}
			continue
		}
		if len(results) > 1 && !quiet {
			fmt.Printf("// %s\n", res.Path)
		}
		fmt.Print(res.Output)
	}
	if failed {
		return fmt.Errorf("render: failed to render some files")
	}
	return nil
}

type renderPayload struct {
	Path   string `json:"path"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func renderJSON(results []driver.RenderResult) error {
	payload := make([]renderPayload, 0, len(results))
	var failed bool
	for _, res := range results {
		p := renderPayload{Path: res.Path, Output: res.Output}
		if res.Err != nil {
			failed = true
			p.Error = res.Err.Error()
		}
		payload = append(payload, p)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("render: failed to render some files")
	}
	return nil
}
