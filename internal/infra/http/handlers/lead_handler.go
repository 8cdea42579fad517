package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/leadquery"
	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type LeadHandler struct {
	CreateUC *usecase.CreateLeadUseCase
	UpdateUC *usecase.UpdateLeadUseCase
	QueryUC  *usecase.QueryLeadsUseCase
	Log      logger.Logger
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	queryUC *usecase.QueryLeadsUseCase,
	log logger.Logger,
) *LeadHandler {
	return &LeadHandler{
		CreateUC: createUC,
		UpdateUC: updateUC,
		QueryUC:  queryUC,
		Log:      log,
	}
}

// List handles GET /api/leads?search=&source=&status=&sort=&order=&page=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.QueryUC.List(r.Context(), queryFromRequest(r))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.QueryUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.UpdateUC.SetStatus(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input usecase.AssignInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.UpdateUC.Assign(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddNoteInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.UpdateUC.AddNote(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Sources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.QueryUC.Sources(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sources": sources})
}

func (h *LeadHandler) Team(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"team": entity.TeamRoster})
}

func queryFromRequest(r *http.Request) leadquery.Query {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return leadquery.Query{
		Filter: leadquery.Filter{
			Search: q.Get("search"),
			Source: q.Get("source"),
			Status: q.Get("status"),
		},
		SortField: leadquery.ParseSortField(q.Get("sort")),
		SortOrder: leadquery.ParseSortOrder(q.Get("order")),
		Page:      page,
	}
}
