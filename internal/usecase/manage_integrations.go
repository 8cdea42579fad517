package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/leadpulse/internal/entity"
)

var (
	ErrInvalidAPIKey       = errors.New("invalid api key")
	ErrIntegrationDisabled = errors.New("integration disabled")
)

// DefaultIntegrations is the catalog of inbound lead channels.
func DefaultIntegrations(webhookURL, apiKey string) []entity.Integration {
	return []entity.Integration{
		{
			ID:          entity.IntegrationWebsiteForms,
			Name:        "Website Forms",
			Description: "Capture leads posted by forms on your website",
			Enabled:     true,
			Fields: []entity.IntegrationField{
				{Name: "webhookUrl", Label: "Webhook URL", ReadOnly: true},
				{Name: "apiKey", Label: "API Key", ReadOnly: true},
			},
			Config: map[string]string{"webhookUrl": webhookURL, "apiKey": apiKey},
		},
		{
			ID:          entity.IntegrationMetaAds,
			Name:        "Meta Ads (Facebook)",
			Description: "Import leads from Facebook and Instagram lead forms",
			Fields: []entity.IntegrationField{
				{Name: "accessToken", Label: "Access Token", Secret: true},
				{Name: "pageId", Label: "Page ID"},
				{Name: "formId", Label: "Form ID"},
			},
			Config: map[string]string{},
		},
		{
			ID:          entity.IntegrationGoogleAds,
			Name:        "Google Ads",
			Description: "Sync leads from Google Ads lead form extensions",
			Fields: []entity.IntegrationField{
				{Name: "clientId", Label: "Client ID"},
				{Name: "clientSecret", Label: "Client Secret", Secret: true},
				{Name: "customerId", Label: "Customer ID"},
			},
			Config: map[string]string{},
		},
	}
}

type ManageIntegrationsUseCase struct {
	Repo entity.IntegrationRepositoryInterface
}

func NewManageIntegrationsUseCase(repo entity.IntegrationRepositoryInterface) *ManageIntegrationsUseCase {
	return &ManageIntegrationsUseCase{Repo: repo}
}

// List returns every integration with secret values masked.
func (uc *ManageIntegrationsUseCase) List(ctx context.Context) ([]entity.Integration, error) {
	items, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, storeError("failed to list integrations", err)
	}
	for i := range items {
		maskSecrets(&items[i])
	}
	return items, nil
}

func (uc *ManageIntegrationsUseCase) find(ctx context.Context, id string) (*entity.Integration, error) {
	item, err := uc.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrIntegrationNotFound) {
		return nil, &DomainError{Code: CodeIntegrationNotFound, Message: "integration not found: " + id}
	}
	if err != nil {
		return nil, storeError("failed to load integration", err)
	}
	return item, nil
}

// Update toggles an integration and/or merges config values. Read-only
// fields cannot be written.
func (uc *ManageIntegrationsUseCase) Update(ctx context.Context, id string, input UpdateIntegrationInput) (*entity.Integration, error) {
	item, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	for name, value := range input.Config {
		field, ok := item.Field(name)
		if !ok {
			return nil, &DomainError{Code: CodeValidation, Message: fmt.Sprintf("%s: %s", entity.ErrUnknownField, name)}
		}
		if field.ReadOnly {
			return nil, &DomainError{Code: CodeValidation, Message: fmt.Sprintf("%s: %s", entity.ErrReadOnlyField, name)}
		}
		value = strings.TrimSpace(value)
		if field.Secret && value == mask(item.Config[name]) {
			continue
		}
		item.Config[name] = value
	}
	if input.Enabled != nil {
		item.Enabled = *input.Enabled
	}

	if err := uc.Repo.Save(ctx, item); err != nil {
		return nil, storeError("failed to save integration", err)
	}
	maskSecrets(item)
	return item, nil
}

// TestConnection checks the integration is enabled and fully configured.
// No remote call is made.
func (uc *ManageIntegrationsUseCase) TestConnection(ctx context.Context, id string) (*TestConnectionOutput, error) {
	item, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !item.Enabled {
		return &TestConnectionOutput{Success: false, Message: item.Name + " is disabled"}, nil
	}

	var missing []string
	for _, f := range item.Fields {
		if strings.TrimSpace(item.Config[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &TestConnectionOutput{Success: false, Message: "missing configuration", Missing: missing}, nil
	}
	return &TestConnectionOutput{Success: true, Message: "Connection successful"}, nil
}

// AuthenticateWebhook checks key against the website forms API key.
func (uc *ManageIntegrationsUseCase) AuthenticateWebhook(ctx context.Context, key string) error {
	item, err := uc.find(ctx, entity.IntegrationWebsiteForms)
	if err != nil {
		return err
	}

	expected := item.Config["apiKey"]
	if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
		return ErrInvalidAPIKey
	}
	if !item.Enabled {
		return ErrIntegrationDisabled
	}
	return nil
}

func maskSecrets(item *entity.Integration) {
	for _, f := range item.Fields {
		if f.Secret && item.Config[f.Name] != "" {
			item.Config[f.Name] = mask(item.Config[f.Name])
		}
	}
}

// mask keeps the last four characters. Echoing a masked value back leaves
// the stored secret untouched.
func mask(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}
