package entity

import (
	"context"
	"errors"
)

const (
	IntegrationWebsiteForms = "website-forms"
	IntegrationMetaAds      = "meta-ads"
	IntegrationGoogleAds    = "google-ads"
)

var (
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrReadOnlyField       = errors.New("field is read-only")
	ErrUnknownField        = errors.New("unknown integration field")
)

type IntegrationField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Secret   bool   `json:"secret"`
	ReadOnly bool   `json:"read_only"`
}

// Integration is a configured inbound lead channel.
type Integration struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Enabled     bool               `json:"enabled"`
	Fields      []IntegrationField `json:"fields"`
	Config      map[string]string  `json:"config"`
}

func (i *Integration) Field(name string) (IntegrationField, bool) {
	for _, f := range i.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return IntegrationField{}, false
}

type IntegrationRepositoryInterface interface {
	List(ctx context.Context) ([]Integration, error)
	FindByID(ctx context.Context, id string) (*Integration, error)
	Save(ctx context.Context, integration *Integration) error
}
