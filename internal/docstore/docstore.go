// Package docstore persists uploaded documents: the raw file bytes on disk
// under an upload directory, the OCR text and lifecycle status in SQLite.
package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/docuscan/docintake/constants"
	"github.com/docuscan/docintake/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	size_bytes   INTEGER NOT NULL DEFAULT 0,
	file_path    TEXT NOT NULL DEFAULT '',
	ocr_text     TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);
`

// Document is one stored upload. Text lives in the row; the original bytes
// live at FilePath.
type Document struct {
	ID          uuid.UUID           `json:"id"`
	Filename    string              `json:"filename"`
	ContentType string              `json:"content_type,omitempty"`
	SizeBytes   int64               `json:"size_bytes"`
	FilePath    string              `json:"-"`
	Status      constants.DocStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type Store struct {
	db        *sql.DB
	uploadDir string
	logger    *slog.Logger
}

// Open opens (or creates) the store at dbPath with WAL and a busy timeout,
// and ensures uploadDir exists. Pass ":memory:" for an ephemeral store.
func Open(dbPath, uploadDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if uploadDir != "" {
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("docstore: mkdir upload dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("docstore: open: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("docstore: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: exec schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}

	logger.Info("docstore.open", "db_path", dbPath, "upload_dir", uploadDir)
	return &Store{db: db, uploadDir: uploadDir, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument writes the upload bytes under the upload dir and records the
// document with status UPLOADED.
func (s *Store) SaveDocument(ctx context.Context, filename, contentType string, content []byte) (*Document, error) {
	if filename == "" {
		return nil, common.NewAppError("INVALID_INPUT", "filename is required", common.ErrInvalidInput)
	}

	id := uuid.New()
	now := time.Now().UTC()

	filePath := ""
	if s.uploadDir != "" {
		filePath = filepath.Join(s.uploadDir, id.String()+filepath.Ext(filename))
		if err := os.WriteFile(filePath, content, 0o644); err != nil {
			return nil, fmt.Errorf("docstore: write upload: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, content_type, size_bytes, file_path, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id.String(), filename, contentType, int64(len(content)), filePath,
		string(constants.DocStatusUploaded), now, now)
	if err != nil {
		return nil, common.WrapError(err, "insert document")
	}

	s.logger.Info("docstore.document.saved", "document_id", id, "filename", filename, "bytes", len(content))
	return &Document{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		FilePath:    filePath,
		Status:      constants.DocStatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SaveText records the OCR output for a document and moves it to TEXT_READY.
func (s *Store) SaveText(ctx context.Context, id uuid.UUID, text string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET ocr_text = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, text, string(constants.DocStatusTextReady), time.Now().UTC(), id.String())
	if err != nil {
		return common.WrapError(err, "save text")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	s.logger.Info("docstore.text.saved", "document_id", id, "chars", len(text))
	return nil
}

// GetText returns the stored OCR text. A document with no text yet yields
// ErrNoText.
func (s *Store) GetText(ctx context.Context, id uuid.UUID) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT ocr_text FROM documents WHERE id = ?`, id.String()).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", common.WrapError(err, "get text")
	}
	if text == "" {
		return "", common.ErrNoText
	}
	return text, nil
}

// Get returns the document metadata.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	var (
		d      Document
		rawID  string
		status string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, content_type, size_bytes, file_path, status, created_at, updated_at
		FROM documents WHERE id = ?
	`, id.String()).Scan(&rawID, &d.Filename, &d.ContentType, &d.SizeBytes,
		&d.FilePath, &status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "get document")
	}
	d.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, common.WrapError(err, "parse document id")
	}
	d.Status = constants.DocStatus(status)
	return &d, nil
}

// UpdateStatus moves a document to a new lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.DocStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), time.Now().UTC(), id.String())
	if err != nil {
		return common.WrapError(err, "update status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
