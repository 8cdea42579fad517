package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type IntegrationHandler struct {
	UC  *usecase.ManageIntegrationsUseCase
	Log logger.Logger
}

func NewIntegrationHandler(uc *usecase.ManageIntegrationsUseCase, log logger.Logger) *IntegrationHandler {
	return &IntegrationHandler{UC: uc, Log: log}
}

func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.UC.List(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"integrations": items})
}

func (h *IntegrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateIntegrationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	item, err := h.UC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *IntegrationHandler) Test(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.TestConnection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
