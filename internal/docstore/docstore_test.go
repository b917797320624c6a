package docstore

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/docuscan/docintake/constants"
	"github.com/docuscan/docintake/internal/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", t.TempDir(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDocumentLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.SaveDocument(ctx, "scan.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if doc.Status != constants.DocStatusUploaded {
		t.Errorf("status = %v, want UPLOADED", doc.Status)
	}
	if b, err := os.ReadFile(doc.FilePath); err != nil || string(b) != "%PDF-1.4" {
		t.Errorf("upload bytes not on disk: %v", err)
	}

	// No text yet.
	if _, err := s.GetText(ctx, doc.ID); !errors.Is(err, common.ErrNoText) {
		t.Errorf("GetText before OCR = %v, want ErrNoText", err)
	}

	if err := s.SaveText(ctx, doc.ID, "Invoice No: 42"); err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	text, err := s.GetText(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetText: %v", err)
	}
	if text != "Invoice No: 42" {
		t.Errorf("text = %q", text)
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != constants.DocStatusTextReady {
		t.Errorf("status = %v, want TEXT_READY", got.Status)
	}
	if got.Filename != "scan.pdf" {
		t.Errorf("filename = %q", got.Filename)
	}
	if got.ContentType != "application/pdf" || got.SizeBytes != 8 {
		t.Errorf("content_type = %q size = %d", got.ContentType, got.SizeBytes)
	}

	if err := s.UpdateStatus(ctx, doc.ID, constants.DocStatusExtracted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ = s.Get(ctx, doc.ID)
	if got.Status != constants.DocStatusExtracted {
		t.Errorf("status = %v, want EXTRACTED", got.Status)
	}
}

func TestUnknownDocumentIsNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	if _, err := s.Get(ctx, id); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
	if _, err := s.GetText(ctx, id); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetText = %v, want ErrNotFound", err)
	}
	if err := s.SaveText(ctx, id, "x"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("SaveText = %v, want ErrNotFound", err)
	}
	if err := s.UpdateStatus(ctx, id, constants.DocStatusFailed); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("UpdateStatus = %v, want ErrNotFound", err)
	}
}

func TestSaveDocumentRequiresFilename(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SaveDocument(context.Background(), "", "", nil); err == nil {
		t.Error("empty filename should be rejected")
	}
}
