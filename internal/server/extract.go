package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docuscan/docintake/constants"
	"github.com/docuscan/docintake/internal/common"
	"github.com/docuscan/docintake/internal/extract"
	"github.com/docuscan/docintake/internal/pipeline"
	"github.com/docuscan/docintake/internal/repository"
	"github.com/docuscan/docintake/internal/schema"
)

// DetectRequest carries either raw text or a stored document reference.
type DetectRequest struct {
	Text       string `json:"text,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
}

// handleDetect classifies text without running extraction.
// POST /api/detect
func (s *Service) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "invalid request body", common.ErrInvalidInput))
		return
	}

	text := req.Text
	if text == "" && req.DocumentID != "" {
		id, err := uuid.Parse(req.DocumentID)
		if err != nil {
			writeError(w, common.NewAppError("INVALID_INPUT", "document_id must be a UUID", common.ErrInvalidInput))
			return
		}
		if text, err = s.store.GetText(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		defer func() {
			if err := s.store.UpdateStatus(r.Context(), id, constants.DocStatusClassified); err != nil {
				s.logger.Warn("server.detect.status_update_failed", "document_id", id, "error", err)
			}
		}()
	}

	writeJSON(w, http.StatusOK, s.pipe.Detect(text))
}

// ExtractRequest selects per-run behavior for one document.
type ExtractRequest struct {
	OverrideType     string `json:"override_type,omitempty"`
	IncludeSummary   bool   `json:"include_summary,omitempty"`
	IncludeEmbedding bool   `json:"include_embedding,omitempty"`
}

// handleExtract runs the full pipeline on a stored document's text and, when
// a sink is configured, persists the validated result.
// POST /api/extract/{id}
func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "id must be a UUID", common.ErrInvalidInput))
		return
	}

	var req ExtractRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, common.NewAppError("INVALID_INPUT", "invalid request body", common.ErrInvalidInput))
			return
		}
	}

	ctx := common.WithDocumentID(r.Context(), id.String())

	text, err := s.store.GetText(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.pipe.Run(ctx, text, pipeline.Options{
		OverrideType:     req.OverrideType,
		IncludeSummary:   req.IncludeSummary,
		IncludeEmbedding: req.IncludeEmbedding,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	fields, err := json.Marshal(res.Extraction)
	if err != nil {
		writeError(w, common.WrapError(err, "encode extraction"))
		return
	}

	// A record that fails its own schema is a bug, not a client error: keep
	// the response, warn, and keep it out of the sink. Validation keys off
	// the record's variant, which differs from used_type on degraded results.
	persist := s.sink != nil
	if err := schema.Validate(res.Extraction.DocumentType(), fields); err != nil {
		s.logger.Warn("server.extract.schema_mismatch", "document_id", id, "error", err)
		res.Warnings = append(res.Warnings, "extraction does not match its schema; result not persisted")
		persist = false
	}

	if persist {
		row := &repository.ExtractionRow{
			DocumentID:   id,
			DetectedType: res.DetectedType,
			UsedType:     res.UsedType,
			Confidence:   res.DetectionConfidence,
			OverrideUsed: res.OverrideUsed,
			Degraded:     res.Degraded,
			Fields:       fields,
			Summary:      res.Summary,
			Embedding:    res.Embedding,
			LineItems:    lineItemRows(res.Extraction),
		}
		if err := s.sink.Save(ctx, row); err != nil {
			writeError(w, err)
			return
		}
	}

	if err := s.store.UpdateStatus(ctx, id, constants.DocStatusExtracted); err != nil {
		s.logger.Warn("server.extract.status_update_failed", "document_id", id, "error", err)
	}
	writeJSON(w, http.StatusOK, res)
}

// lineItemRows flattens a record's line items for the sink.
func lineItemRows(rec extract.Record) []repository.LineItemRow {
	switch r := rec.(type) {
	case *extract.InvoiceRecord:
		out := make([]repository.LineItemRow, 0, len(r.LineItems))
		for _, li := range r.LineItems {
			out = append(out, repository.LineItemRow{
				Description: strVal(li.Description),
				Quantity:    floatVal(li.Quantity),
				UnitPrice:   floatVal(li.UnitPrice),
				TotalPrice:  floatVal(li.TotalPrice),
			})
		}
		return out
	case *extract.ReceiptRecord:
		out := make([]repository.LineItemRow, 0, len(r.Items))
		for _, li := range r.Items {
			out = append(out, repository.LineItemRow{
				Description: strVal(li.Description),
				Quantity:    floatVal(li.Quantity),
				UnitPrice:   floatVal(li.UnitPrice),
				TotalPrice:  floatVal(li.TotalPrice),
			})
		}
		return out
	case *extract.PORecord:
		out := make([]repository.LineItemRow, 0, len(r.LineItems))
		for _, li := range r.LineItems {
			out = append(out, repository.LineItemRow{
				Description: strVal(li.Description),
				Quantity:    strVal(li.Quantity),
				UnitPrice:   strVal(li.UnitPrice),
				TotalPrice:  strVal(li.TotalPrice),
			})
		}
		return out
	default:
		return nil
	}
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatVal(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
