package extract

import (
	"strings"
	"testing"
)

const sampleNotes = `Weekly Sync Notes
Attendees discussed the rollout. Deployment is on track. QA starts Monday. Docs are pending. Retro moved to Friday.
- follow up with vendor
• confirm budget
	schedule next sync`

func TestNotesExtract(t *testing.T) {
	rec, err := NewNotesExtractor().Extract(sampleNotes)
	if err != nil {
		t.Fatal(err)
	}
	n := rec.(*NotesRecord)

	checkStr(t, "title", n.Title, "Weekly Sync Notes")
	if n.RawText != sampleNotes {
		t.Error("raw_text must equal the input text")
	}

	// Default cap is 3 sentences; the title line is part of the first
	// sentence because nothing ends it.
	wantSummary := "Weekly Sync Notes\nAttendees discussed the rollout. Deployment is on track. QA starts Monday."
	if n.Summary != wantSummary {
		t.Errorf("summary = %q, want %q", n.Summary, wantSummary)
	}

	wantPoints := []string{
		"Weekly Sync Notes",
		"Attendees discussed the rollout. Deployment is on track. QA starts Monday. Docs are pending. Retro moved to Friday.",
		"follow up with vendor",
		"confirm budget",
		"schedule next sync",
	}
	if len(n.KeyPoints) != len(wantPoints) {
		t.Fatalf("key_points = %v, want %v", n.KeyPoints, wantPoints)
	}
	for i := range wantPoints {
		if n.KeyPoints[i] != wantPoints[i] {
			t.Errorf("key_points[%d] = %q, want %q", i, n.KeyPoints[i], wantPoints[i])
		}
	}
}

func TestNotesSummaryCap(t *testing.T) {
	e := &NotesExtractor{MaxSentences: 3}
	rec, _ := e.Extract("One. Two. Three. Four. Five.")
	n := rec.(*NotesRecord)
	if n.Summary != "One. Two. Three." {
		t.Errorf("summary = %q, want %q", n.Summary, "One. Two. Three.")
	}
}

func TestNotesKeyPointCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 15; i++ {
		sb.WriteString("- point\n")
	}
	e := &NotesExtractor{MaxKeyPoints: 10}
	rec, _ := e.Extract(sb.String())
	n := rec.(*NotesRecord)
	if len(n.KeyPoints) != 10 {
		t.Errorf("key_points length = %d, want 10", len(n.KeyPoints))
	}
}

func TestNotesExtractEmpty(t *testing.T) {
	rec, err := NewNotesExtractor().Extract("")
	if err != nil {
		t.Fatal(err)
	}
	n := rec.(*NotesRecord)
	if n.Title != nil || n.Summary != "" || len(n.KeyPoints) != 0 || n.RawText != "" {
		t.Errorf("empty input must yield an empty record, got %+v", n)
	}
}
