// Package textnorm canonicalizes raw OCR output before classification and
// extraction. Every downstream stage assumes its input already went through
// Clean.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	reFormFeed   = regexp.MustCompile(`\x0c`)
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reSpaceRuns  = regexp.MustCompile(`[ \t]+`)
	reBlankLines = regexp.MustCompile(`\n{2,}`)
)

// Clean normalizes raw OCR text: form feeds become spaces, line endings
// become \n, runs of spaces/tabs collapse to one space, runs of newlines
// collapse to one, and the result is trimmed. Always succeeds; empty input
// yields empty output. Idempotent.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	s := reFormFeed.ReplaceAllString(raw, " ")
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	s = reBlankLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// Lines splits cleaned text into its non-empty lines, each trimmed.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		if t := strings.TrimSpace(ln); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}
