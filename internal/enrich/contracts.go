// Package enrich holds the optional text-enrichment collaborators the
// pipeline can invoke: summarization and embedding generation. The pipeline
// treats both as black boxes; latency and timeout handling belong to the
// implementations.
package enrich

import "context"

// Summarizer produces a short summary of cleaned document text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Embedder produces a vector representation of cleaned document text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
