// docextract runs the understanding pipeline once over a text file (or
// stdin) and prints the result envelope as JSON. Useful for trying the
// classifier and extractors without the daemon.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/docuscan/docintake/internal/common"
	"github.com/docuscan/docintake/internal/enrich"
	"github.com/docuscan/docintake/internal/pipeline"
)

func main() {
	var (
		overrideType = flag.String("type", "", "override the detected document type (e.g. invoice, receipt, po)")
		withSummary  = flag.Bool("summary", false, "include a heuristic summary")
		withEmbed    = flag.Bool("embed", false, "include a deterministic embedding")
		detectOnly   = flag.Bool("detect", false, "classify only, skip extraction")
		compact      = flag.Bool("compact", false, "print compact JSON instead of indented")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [file]\n\nReads the document text from file (or stdin) and prints the extraction envelope.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	pipe := pipeline.New(logger, pipeline.Config{
		MinConfidence:   cfg.Pipeline.MinConfidence,
		SummarySentence: cfg.Pipeline.SummarySentence,
		NotesKeyPoints:  cfg.Pipeline.NotesKeyPoints,
	}, nil,
		&enrich.HeuristicSummarizer{MaxSentences: cfg.Pipeline.SummarySentence},
		&enrich.HashEmbedder{Dim: cfg.Enrich.EmbedDim},
	)

	var out any
	if *detectOnly {
		out = pipe.Detect(text)
	} else {
		res, err := pipe.Run(context.Background(), text, pipeline.Options{
			OverrideType:     *overrideType,
			IncludeSummary:   *withSummary,
			IncludeEmbedding: *withEmbed,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "pipeline:", err)
			os.Exit(1)
		}
		out = res
	}

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
