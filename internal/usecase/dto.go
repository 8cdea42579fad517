package usecase

type CreateLeadInput struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"omitempty,email,max=254"`
	Phone    string  `json:"phone" validate:"omitempty,max=40"`
	Company  string  `json:"company" validate:"max=200"`
	Service  string  `json:"service" validate:"max=100"`
	Source   string  `json:"source" validate:"max=100"`
	Campaign string  `json:"campaign" validate:"max=100"`
	Notes    string  `json:"notes" validate:"max=5000"`
	Value    float64 `json:"value" validate:"gte=0"`
}

type SetStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type AssignInput struct {
	AssignedTo string `json:"assigned_to" validate:"required,max=200"`
}

type AddNoteInput struct {
	Note string `json:"note" validate:"required,max=5000"`
}

type UpdateIntegrationInput struct {
	Enabled *bool             `json:"enabled,omitempty"`
	Config  map[string]string `json:"config,omitempty"`
}

type TestConnectionOutput struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}
