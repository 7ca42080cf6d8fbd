package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/ports"
	"github.com/rafabene/usuarios-backend/internal/handlers/dto"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/security"
)

const (
	targetIDContextKey = "target_user_id"
	claimsContextKey   = "claims"
)

// GuardError descreve a recusa de um guard
type GuardError struct {
	Status    int
	Type      string
	Title     string
	MessageID string
}

// Guard decide se a requisição pode seguir; nil libera
type Guard func(c *gin.Context) *GuardError

// UserChecker verifica a existência de usuários ativos
type UserChecker interface {
	UserExists(ctx context.Context, id uint) (bool, error)
}

// TokenParser valida tokens de acesso
type TokenParser interface {
	Parse(token string) (*security.Claims, error)
}

// Chain executa os guards em ordem e para no primeiro que recusar
func Chain(guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, guard := range guards {
			if gerr := guard(c); gerr != nil {
				dto.AbortWithProblem(c, dto.NewErrorResponseI18n(c, gerr.Type, gerr.Title, gerr.MessageID, gerr.Status))
				return
			}
		}
		c.Next()
	}
}

// NumericID exige que :id seja um inteiro positivo
func NumericID() Guard {
	return func(c *gin.Context) *GuardError {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			return &GuardError{
				Status:    http.StatusBadRequest,
				Type:      errors.ProblemTypeValidation,
				Title:     "error.validation.title",
				MessageID: errors.ErrInvalidID.Error(),
			}
		}
		c.Set(targetIDContextKey, uint(id))
		return nil
	}
}

// UserExists exige um usuário ativo com o id da rota
func UserExists(users UserChecker, logger ports.Logger) Guard {
	return func(c *gin.Context) *GuardError {
		exists, err := users.UserExists(c.Request.Context(), targetID(c))
		if err != nil {
			logger.Error("user existence check failed", "error", err)
			return &GuardError{
				Status:    http.StatusInternalServerError,
				Type:      errors.ProblemTypeInternal,
				Title:     "error.internal.title",
				MessageID: errors.ErrInternal.Error(),
			}
		}
		if !exists {
			return &GuardError{
				Status:    http.StatusNotFound,
				Type:      errors.ProblemTypeNotFound,
				Title:     "error.not_found.title",
				MessageID: errors.ErrUserNotFound.Error(),
			}
		}
		return nil
	}
}

// BearerToken exige Authorization: Bearer <jwt> válido
func BearerToken(tokens TokenParser) Guard {
	return func(c *gin.Context) *GuardError {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return unauthorized()
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return unauthorized()
		}

		c.Set(claimsContextKey, claims)
		return nil
	}
}

// Permission exige que o role do token tenha a permissão sobre o usuário da rota
func Permission(permission entities.Permission) Guard {
	return func(c *gin.Context) *GuardError {
		value, _ := c.Get(claimsContextKey)
		claims, ok := value.(*security.Claims)
		if !ok {
			return unauthorized()
		}

		subjectID, err := claims.UserID()
		if err != nil {
			return unauthorized()
		}

		if !claims.Role.CanActOn(permission, subjectID, targetID(c)) {
			return &GuardError{
				Status:    http.StatusForbidden,
				Type:      errors.ProblemTypeForbidden,
				Title:     "error.forbidden.title",
				MessageID: errors.ErrForbidden.Error(),
			}
		}
		return nil
	}
}

func unauthorized() *GuardError {
	return &GuardError{
		Status:    http.StatusUnauthorized,
		Type:      errors.ProblemTypeUnauthorized,
		Title:     "error.unauthorized.title",
		MessageID: errors.ErrUnauthorized.Error(),
	}
}

// targetID retorna o id validado por NumericID
func targetID(c *gin.Context) uint {
	return c.GetUint(targetIDContextKey)
}
