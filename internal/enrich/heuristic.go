package enrich

import (
	"context"
	"crypto/sha256"
	"strings"
)

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace. Punctuation stays attached to its sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			// Boundary only when followed by whitespace (or end of text).
			if i+1 < len(runes) && !isSpace(runes[i+1]) {
				continue
			}
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// FirstSentences returns the first max sentences joined by single spaces.
func FirstSentences(text string, max int) string {
	if max <= 0 {
		return ""
	}
	sentences := SplitSentences(text)
	if len(sentences) > max {
		sentences = sentences[:max]
	}
	return strings.Join(sentences, " ")
}

// HeuristicSummarizer is the deterministic development summarizer: the first
// N sentences of the text.
type HeuristicSummarizer struct {
	MaxSentences int
}

func (s *HeuristicSummarizer) Summarize(_ context.Context, text string) (string, error) {
	max := s.MaxSentences
	if max <= 0 {
		max = 3
	}
	return FirstSentences(text, max), nil
}

// HashEmbedder is the deterministic development embedder: a pseudo-embedding
// derived from the sha256 digest of the text, repeated or trimmed to Dim.
// Useful for exercising storage and transport without a model behind it.
type HashEmbedder struct {
	Dim int
}

func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	dim := e.Dim
	if dim <= 0 {
		dim = 64
	}
	out := make([]float32, dim)
	if text == "" {
		return out, nil
	}

	digest := sha256.Sum256([]byte(text))
	for i := range out {
		b := digest[i%len(digest)]
		out[i] = (float32(b) - 128) / 128
	}
	return out, nil
}
