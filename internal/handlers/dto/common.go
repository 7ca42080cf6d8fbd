package dto

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/handlers/middleware"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	*problems.DefaultProblem
	RequestID string `json:"requestId,omitempty"`
}

// MessageResponse é a resposta simples {"message": ...}
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]any) ErrorResponse {
	// Pegar base URL da configuração
	baseURL := c.GetString(middleware.BaseURLContextKey)
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, T(c, detailKey, params...))
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		DefaultProblem: problem,
		RequestID:      c.GetString(middleware.RequestIDContextKey),
	}
}

// AbortWithProblem encerra a requisição com application/problem+json
func AbortWithProblem(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// StatusFor retorna o status HTTP de um tipo de problema
func StatusFor(problemType string) int {
	switch problemType {
	case errors.ProblemTypeValidation, errors.ProblemTypeConflict, errors.ProblemTypeBadRequest:
		return http.StatusBadRequest
	case errors.ProblemTypeUnauthorized:
		return http.StatusUnauthorized
	case errors.ProblemTypeForbidden:
		return http.StatusForbidden
	case errors.ProblemTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DomainErrorResponseI18n converte um erro do serviço em Problem Details.
// Erros desconhecidos viram 500 sem expor a causa.
func DomainErrorResponseI18n(c *gin.Context, err error) ErrorResponse {
	var domainErr *errors.DomainError
	if !stderrors.As(err, &domainErr) {
		return InternalErrorResponseI18n(c)
	}

	return NewErrorResponseI18n(
		c,
		domainErr.Type,
		domainErr.Title,
		domainErr.Message,
		StatusFor(domainErr.Type),
	)
}

// Helper functions para respostas de erro comuns com i18n

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		detailKey,
		http.StatusBadRequest,
	)
}

// BadRequestErrorResponseI18n cria uma resposta 400 para corpo ilegível
func BadRequestErrorResponseI18n(c *gin.Context, err error) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeBadRequest,
		"error.bad_request.title",
		"error.invalid_body",
		http.StatusBadRequest,
		map[string]any{"Detail": err.Error()},
	)
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeNotFound,
		"error.not_found.title",
		detailKey,
		http.StatusNotFound,
	)
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeUnauthorized,
		"error.unauthorized.title",
		detailKey,
		http.StatusUnauthorized,
	)
}

// ForbiddenErrorResponseI18n cria uma resposta de erro 403
func ForbiddenErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeForbidden,
		"error.forbidden.title",
		errors.ErrForbidden.Error(),
		http.StatusForbidden,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		errors.ErrInternal.Error(),
		http.StatusInternalServerError,
	)
}
