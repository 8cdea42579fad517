package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/xavierca1/leadpulse/internal/infra/export"
	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// ExportHandler streams the current filtered view as a file download.
type ExportHandler struct {
	QueryUC *usecase.QueryLeadsUseCase
	Log     logger.Logger
}

func NewExportHandler(queryUC *usecase.QueryLeadsUseCase, log logger.Logger) *ExportHandler {
	return &ExportHandler{QueryUC: queryUC, Log: log}
}

func (h *ExportHandler) LeadsXLSX(w http.ResponseWriter, r *http.Request) {
	leads, err := h.QueryUC.Matching(r.Context(), queryFromRequest(r))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.LeadsXLSX(&buf, leads, h.QueryUC.Location); err != nil {
		h.fail(w, "xlsx", err)
		return
	}
	h.send(w, xlsxContentType, export.Filename("leads", "xlsx", h.now()), buf.Bytes())
}

func (h *ExportHandler) LeadsPDF(w http.ResponseWriter, r *http.Request) {
	leads, err := h.QueryUC.Matching(r.Context(), queryFromRequest(r))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.LeadsPDF(&buf, leads, h.now()); err != nil {
		h.fail(w, "pdf", err)
		return
	}
	h.send(w, pdfContentType, export.Filename("leads", "pdf", h.now()), buf.Bytes())
}

// AnalyticsXLSX accepts the same start and end parameters as the report.
func (h *ExportHandler) AnalyticsXLSX(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r, h.QueryUC.Location)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}

	report, err := h.QueryUC.Report(r.Context(), start, end)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.AnalyticsXLSX(&buf, report); err != nil {
		h.fail(w, "analytics xlsx", err)
		return
	}
	h.send(w, xlsxContentType, export.Filename("analytics_report", "xlsx", h.now()), buf.Bytes())
}

func (h *ExportHandler) now() time.Time {
	return h.QueryUC.Now().In(h.QueryUC.Location)
}

func (h *ExportHandler) fail(w http.ResponseWriter, kind string, err error) {
	h.Log.Error("export failed", "kind", kind, "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, "EXPORT_ERROR", "failed to build export")
}

func (h *ExportHandler) send(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
