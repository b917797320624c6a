package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/docuscan/docintake/constants"
)

// ExtractionRow is one persisted pipeline result. Fields holds the
// schema-validated record JSON; Embedding is optional.
type ExtractionRow struct {
	ID           uuid.UUID
	DocumentID   uuid.UUID
	DetectedType constants.DocType
	UsedType     constants.DocType
	Confidence   float32
	OverrideUsed bool
	Degraded     bool
	Fields       []byte
	Summary      string
	Embedding    []float32
	LineItems    []LineItemRow
	CreatedAt    time.Time
}

// LineItemRow is one extracted line item flattened for SQL queries. Values
// stay strings; purchase orders never typed them and invoices lose nothing.
type LineItemRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	TotalPrice  string
}

type ExtractionRepository interface {
	Save(ctx context.Context, row *ExtractionRow) error
	List(ctx context.Context, usedType *constants.DocType, from, to *time.Time) ([]*ExtractionRow, error)
}

type extractionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewExtractionRepository(pool *pgxpool.Pool, logger *slog.Logger) ExtractionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &extractionRepository{pool: pool, logger: logger}
}

// EnsureSchema creates the vector extension and the extractions table.
// embedDim fixes the embedding column dimension.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, embedDim int) error {
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS extractions (
			id            UUID PRIMARY KEY,
			document_id   UUID NOT NULL,
			detected_type TEXT NOT NULL,
			used_type     TEXT NOT NULL,
			confidence    REAL NOT NULL,
			override_used BOOLEAN NOT NULL DEFAULT FALSE,
			degraded      BOOLEAN NOT NULL DEFAULT FALSE,
			fields        JSONB NOT NULL,
			summary       TEXT NOT NULL DEFAULT '',
			embedding     vector(%d),
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, embedDim)
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create extractions table: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS line_items (
			id            UUID PRIMARY KEY,
			extraction_id UUID NOT NULL REFERENCES extractions(id) ON DELETE CASCADE,
			position      INT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			quantity      TEXT NOT NULL DEFAULT '',
			unit_price    TEXT NOT NULL DEFAULT '',
			total_price   TEXT NOT NULL DEFAULT ''
		)`); err != nil {
		return fmt.Errorf("create line_items table: %w", err)
	}
	if _, err := pool.Exec(ctx,
		"CREATE INDEX IF NOT EXISTS extractions_used_type_idx ON extractions (used_type, created_at)"); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func (r *extractionRepository) Save(ctx context.Context, row *ExtractionRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	var embedding any
	if len(row.Embedding) > 0 {
		embedding = pgvector.NewVector(row.Embedding)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO extractions
			(id, document_id, detected_type, used_type, confidence,
			 override_used, degraded, fields, summary, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, row.ID, row.DocumentID, string(row.DetectedType), string(row.UsedType),
		row.Confidence, row.OverrideUsed, row.Degraded, row.Fields,
		row.Summary, embedding, row.CreatedAt)
	if err != nil {
		r.logger.Error("failed to save extraction", "document_id", row.DocumentID, "error", err)
		return fmt.Errorf("save extraction: %w", err)
	}

	for i, li := range row.LineItems {
		if _, err := tx.Exec(ctx, `
			INSERT INTO line_items
				(id, extraction_id, position, description, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), row.ID, i, li.Description, li.Quantity, li.UnitPrice, li.TotalPrice); err != nil {
			return fmt.Errorf("save line item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("extraction.saved",
		"extraction_id", row.ID,
		"document_id", row.DocumentID,
		"used_type", row.UsedType,
		"line_items", len(row.LineItems),
	)
	return nil
}

func (r *extractionRepository) List(ctx context.Context, usedType *constants.DocType, from, to *time.Time) ([]*ExtractionRow, error) {
	q := `
		SELECT id, document_id, detected_type, used_type, confidence,
		       override_used, degraded, fields, summary, created_at
		FROM extractions
		WHERE 1=1`
	args := []any{}
	if usedType != nil {
		args = append(args, string(*usedType))
		q += fmt.Sprintf(" AND used_type = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		q += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		q += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	q += " ORDER BY created_at"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list extractions", "error", err)
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var out []*ExtractionRow
	for rows.Next() {
		var (
			row       ExtractionRow
			det, used string
		)
		if err := rows.Scan(&row.ID, &row.DocumentID, &det, &used,
			&row.Confidence, &row.OverrideUsed, &row.Degraded, &row.Fields,
			&row.Summary, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}
		row.DetectedType = constants.DocType(det)
		row.UsedType = constants.DocType(used)
		out = append(out, &row)
	}
	return out, rows.Err()
}
