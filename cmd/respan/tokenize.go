package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"respan/internal/driver"
	"respan/internal/source"
	"respan/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <path>...",
	Short: "Tokenize source files into positioned token trees",
	Long:  `Tokenize breaks source files into the identifier, literal, punctuation, and group tokens the renderer consumes, each annotated with its original span`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("out", "", "write a msgpack "+driver.TokensExt+" dump instead of printing")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	if outPath != "" && len(args) > 1 {
		return fmt.Errorf("tokenize: --out requires a single input")
	}

	results, err := driver.TokenizePaths(cmd.Context(), args, 0)
	if err != nil {
		return err
	}

	var failed bool
	for _, res := range results {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
		}
	}
	if failed {
		return fmt.Errorf("tokenize: failed to tokenize some files")
	}

	if outPath != "" {
		data, err := token.EncodeStream(results[0].Stream)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		return nil
	}

	switch format {
	case "pretty":
		for _, res := range results {
			if len(results) > 1 {
				fmt.Printf("// %s\n", res.Path)
			}
			printStream(os.Stdout, res.Stream, 0)
		}
		return nil
	case "json":
		payload := make([]filePayload, 0, len(results))
		for _, res := range results {
			payload = append(payload, filePayload{
				Path:  res.Path,
				Trees: streamPayload(res.Stream),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

type filePayload struct {
	Path  string        `json:"path"`
	Trees []treePayload `json:"trees"`
}

func printStream(w io.Writer, stream token.Stream, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, tree := range stream {
		switch t := tree.(type) {
		case token.Leaf:
			fmt.Fprintf(w, "%s%-8s %-12s %s\n", indent, t.Kind, t.Span, t.Text)
		case *token.Group:
			fmt.Fprintf(w, "%sgroup    %-12s %s\n", indent, t.Open, t.Delim)
			printStream(w, t.Stream, depth+1)
		}
	}
}

type treePayload struct {
	Kind  string        `json:"kind"`
	Text  string        `json:"text,omitempty"`
	Span  *spanPayload  `json:"span,omitempty"`
	Delim string        `json:"delim,omitempty"`
	Open  *spanPayload  `json:"open,omitempty"`
	Close *spanPayload  `json:"close,omitempty"`
	Trees []treePayload `json:"trees,omitempty"`
}

type spanPayload struct {
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

func spanOf(s source.Span) *spanPayload {
	if s.IsSynthetic() {
		return nil
	}
	return &spanPayload{
		StartLine: s.Start.Line,
		StartCol:  s.Start.Col,
		EndLine:   s.End.Line,
		EndCol:    s.End.Col,
	}
}

func streamPayload(stream token.Stream) []treePayload {
	out := make([]treePayload, 0, len(stream))
	for _, tree := range stream {
		switch t := tree.(type) {
		case token.Leaf:
			out = append(out, treePayload{
				Kind: t.Kind.String(),
				Text: t.Text,
				Span: spanOf(t.Span),
			})
		case *token.Group:
			out = append(out, treePayload{
				Kind:  "group",
				Delim: t.Delim.String(),
				Open:  spanOf(t.Open),
				Close: spanOf(t.Close),
				Trees: streamPayload(t.Stream),
			})
		}
	}
	return out
}
