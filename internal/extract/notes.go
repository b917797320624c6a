package extract

import (
	"strings"

	"github.com/docuscan/docintake/internal/enrich"
	"github.com/docuscan/docintake/internal/textnorm"
)

// NotesExtractor handles unstructured notes, meeting minutes and anything the
// classifier could not place. Its only internal operation is text splitting,
// which cannot fault on any string input, so it doubles as the pipeline's
// safe fallback.
type NotesExtractor struct {
	// MaxSentences caps the heuristic summary; 0 means the default of 3.
	MaxSentences int
	// MaxKeyPoints caps the extracted bullet list; 0 means the default of 10.
	MaxKeyPoints int
}

func NewNotesExtractor() *NotesExtractor { return &NotesExtractor{} }

func (e *NotesExtractor) Extract(text string) (Record, error) {
	rec := &NotesRecord{RawText: text, KeyPoints: []string{}}
	if text == "" {
		return rec, nil
	}

	lines := textnorm.Lines(text)
	if len(lines) > 0 {
		rec.Title = strPtr(lines[0])
	}

	maxSentences := e.MaxSentences
	if maxSentences <= 0 {
		maxSentences = 3
	}
	rec.Summary = enrich.FirstSentences(text, maxSentences)

	maxPoints := e.MaxKeyPoints
	if maxPoints <= 0 {
		maxPoints = 10
	}
	for _, ln := range strings.Split(text, "\n") {
		point := strings.Trim(ln, "-• \t")
		if point == "" {
			continue
		}
		rec.KeyPoints = append(rec.KeyPoints, point)
		if len(rec.KeyPoints) == maxPoints {
			break
		}
	}

	return rec, nil
}
