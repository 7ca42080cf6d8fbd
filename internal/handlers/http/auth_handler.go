package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/usuarios-backend/internal/handlers/dto"
	"github.com/rafabene/usuarios-backend/internal/services"
)

// AuthHandler emite tokens de acesso
type AuthHandler struct {
	authService *services.AuthService
	tokenTTL    time.Duration
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenTTL:    tokenTTL,
	}
}

// Login troca email e senha por um token Bearer
//
//	@Summary	Login
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.LoginResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, bindingErrorResponse(c, err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}
