package handlers

import (
	"errors"
	"net/http"

	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

const (
	APIKeyHeader  = "X-API-Key"
	WebsiteSource = "Website"
)

// WebhookHandler captures leads posted by website forms.
type WebhookHandler struct {
	Integrations *usecase.ManageIntegrationsUseCase
	CreateUC     *usecase.CreateLeadUseCase
	Log          logger.Logger
}

func NewWebhookHandler(integrations *usecase.ManageIntegrationsUseCase, createUC *usecase.CreateLeadUseCase, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		Integrations: integrations,
		CreateUC:     createUC,
		Log:          log,
	}
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	err := h.Integrations.AuthenticateWebhook(r.Context(), r.Header.Get(APIKeyHeader))
	switch {
	case errors.Is(err, usecase.ErrInvalidAPIKey):
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_API_KEY", "Invalid API key")
		return
	case errors.Is(err, usecase.ErrIntegrationDisabled):
		writeErrorResponse(w, http.StatusForbidden, "INTEGRATION_DISABLED", "Website forms integration is disabled")
		return
	case err != nil:
		writeUseCaseError(w, h.Log, err)
		return
	}

	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Source = WebsiteSource

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}

	h.Log.Info("lead captured from website form", "lead_id", lead.ID)
	writeJSON(w, http.StatusCreated, CaptureLeadResponse{Success: true, LeadID: lead.ID})
}
