package usecase

import "errors"

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeLeadNotFound        = "LEAD_NOT_FOUND"
	CodeIntegrationNotFound = "INTEGRATION_NOT_FOUND"
	CodeStoreError          = "STORE_ERROR"
)

// DomainError is a caller mistake: bad input or an unknown resource.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a failure of the store or another dependency.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func notFound(id string) error {
	return &DomainError{Code: CodeLeadNotFound, Message: "lead not found: " + id}
}

func storeError(op string, err error) error {
	return &TechnicalError{Code: CodeStoreError, Message: op + ": " + err.Error(), Err: err}
}
