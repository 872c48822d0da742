// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
	"github.com/campusvote/campusvote/tally"
)

type ExportHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	results *ResultsHandler
}

func NewExportHandler(db *sql.DB, cfg cliparse.Config, results *ResultsHandler) *ExportHandler {
	return &ExportHandler{db: db, cfg: cfg, results: results}
}

// Export handles GET /admin/export?format=csv|json.
// Exports always read a fresh tally (not the voter-facing cache): an admin
// pulling the official file expects it to match the ledger at that moment.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = tally.FormatCSV
	}
	if format != tally.FormatCSV && format != tally.FormatJSON {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"format must be csv or json")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	result, err := h.results.compute(ctx)
	if err != nil {
		storeError(w, err, "failed to compute tallies")
		return
	}

	exported, err := tally.FormatExport(result, format, time.Now())
	if err != nil {
		slog.Error("failed to format export", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export results")
		return
	}

	totalVotes := 0
	for _, ct := range result.PerCategory {
		totalVotes += ct.TotalVotes
	}
	slog.Info("results exported",
		"format", format,
		"file", exported.FileName,
		"votes", humanize.Comma(int64(totalVotes)),
	)

	w.Header().Set("Content-Type", exported.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exported.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(exported.Content))
}
