package errors

import (
	"errors"
	"fmt"
)

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound         = errors.New("error.user_not_found")
	ErrEmailAlreadyExists   = errors.New("error.email_already_exists")
	ErrPasswordsDoNotMatch  = errors.New("error.passwords_do_not_match")
	ErrMissingRequiredField = errors.New("error.missing_required_fields")
	ErrBulkPayloadNotArray  = errors.New("error.bulk_payload_not_array")
	ErrInvalidDate          = errors.New("error.invalid_date")
	ErrInvalidID            = errors.New("error.invalid_id")
	ErrInvalidCredentials   = errors.New("error.invalid_credentials")
	ErrUnauthorized         = errors.New("error.unauthorized")
	ErrForbidden            = errors.New("error.forbidden")
	ErrInternal             = errors.New("error.internal")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional.
// Message é o message ID usado na tradução.
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError cria um erro de entrada inválida (400).
// messageID é um dos erros de negócio acima; cause é opcional.
func NewValidationError(messageID error, cause ...error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeValidation,
		Title:   "error.validation.title",
		Message: messageID.Error(),
		Err:     wrap(messageID, cause),
	}
}

// NewConflictError cria um erro de conflito, ex. email duplicado (400)
func NewConflictError(err error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeConflict,
		Title:   "error.conflict.title",
		Message: ErrEmailAlreadyExists.Error(),
		Err:     err,
	}
}

// NewInternalError cria um erro inesperado (500). A causa nunca vai para o cliente.
func NewInternalError(err error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeInternal,
		Title:   "error.internal.title",
		Message: ErrInternal.Error(),
		Err:     err,
	}
}

// NewUnauthorizedError cria um erro de credenciais ou token inválidos (401)
func NewUnauthorizedError(messageID error, cause ...error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeUnauthorized,
		Title:   "error.unauthorized.title",
		Message: messageID.Error(),
		Err:     wrap(messageID, cause),
	}
}

// IsValidation verifica se err é um erro de validação
func IsValidation(err error) bool {
	return hasType(err, ProblemTypeValidation)
}

// IsConflict verifica se err é um erro de conflito
func IsConflict(err error) bool {
	return hasType(err, ProblemTypeConflict)
}

// IsUnauthorized verifica se err é um erro de autenticação
func IsUnauthorized(err error) bool {
	return hasType(err, ProblemTypeUnauthorized)
}

// IsInternal verifica se err é um erro interno
func IsInternal(err error) bool {
	return hasType(err, ProblemTypeInternal)
}

func wrap(messageID error, cause []error) error {
	if len(cause) == 0 || cause[0] == nil {
		return messageID
	}
	return fmt.Errorf("%w: %w", messageID, cause[0])
}

func hasType(err error, problemType string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == problemType
	}
	return false
}
