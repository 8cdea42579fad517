package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type AnalyticsHandler struct {
	QueryUC *usecase.QueryLeadsUseCase
	Log     logger.Logger
}

func NewAnalyticsHandler(queryUC *usecase.QueryLeadsUseCase, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{QueryUC: queryUC, Log: log}
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.QueryUC.Dashboard(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// Report handles GET /api/analytics?start=2006-01-02&end=2006-01-02.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, report)
}

// parseDateRange reads start and end as calendar days in loc. The end day is
// inclusive. Missing values stay zero.
func parseDateRange(r *http.Request, loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	q := r.URL.Query()

	if raw := q.Get("start"); raw != "" {
		t, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q", raw)
		}
		start = t
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q", raw)
		}
		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, end, nil
}
