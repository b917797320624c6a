package server

import (
	"net/http"
	"time"

	"github.com/docuscan/docintake/constants"
	"github.com/docuscan/docintake/internal/common"
)

// handleExport streams an XLSX workbook of persisted extractions.
// GET /api/export.xlsx?type=invoice&from=2026-01-01&to=2026-01-31
func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "export requires a configured database",
		})
		return
	}

	var usedType *constants.DocType
	if raw := r.URL.Query().Get("type"); raw != "" {
		dt, ok := constants.Canonicalize(raw)
		if !ok {
			writeError(w, common.NewAppError("INVALID_INPUT", "unrecognized type filter", common.ErrInvalidInput))
			return
		}
		usedType = &dt
	}

	parseDate := func(key string) (*time.Time, bool) {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, false
		}
		return &t, true
	}

	from, ok := parseDate("from")
	if !ok {
		writeError(w, common.NewAppError("INVALID_INPUT", "from must be YYYY-MM-DD", common.ErrInvalidInput))
		return
	}
	to, ok := parseDate("to")
	if !ok {
		writeError(w, common.NewAppError("INVALID_INPUT", "to must be YYYY-MM-DD", common.ErrInvalidInput))
		return
	}

	xlsx, err := s.exporter.ExportExtractionsXLSX(r.Context(), usedType, from, to)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "error", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extractions.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}
