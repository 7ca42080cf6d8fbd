package http

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/ports"
	"github.com/rafabene/usuarios-backend/internal/handlers/dto"
	"github.com/rafabene/usuarios-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser cria um novo usuário
//
//	@Summary	Cria um usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateUserRequest	true	"Dados do usuário"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	500		{object}	dto.ErrorResponse
//	@Router		/users/create [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, bindingErrorResponse(c, err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		PasswordSecond: req.PasswordSecond,
		Cellphone:      req.Cellphone,
	})
	if err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: dto.T(c, "message.user_created", map[string]any{"ID": user.ID}),
	})
}

// GetAllUsers lista os usuários ativos
//
//	@Summary	Lista usuários ativos
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}		dto.UserResponse
//	@Failure	500	{object}	dto.ErrorResponse
//	@Router		/users/getAllUsers [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// FindUsers filtra usuários pelos parâmetros de consulta
//
//	@Summary	Busca usuários
//	@Tags		users
//	@Produce	json
//	@Param		status				query		string	false	"true para ativos; qualquer outro valor para removidos"
//	@Param		name				query		string	false	"Parte do nome"
//	@Param		fechaInicioAntes	query		string	false	"Criados antes de (YYYY-MM-DD)"
//	@Param		fechaInicioDespues	query		string	false	"Criados depois de (YYYY-MM-DD)"
//	@Success	200					{array}		dto.UserResponse
//	@Failure	400					{object}	dto.ErrorResponse
//	@Failure	500					{object}	dto.ErrorResponse
//	@Router		/users/findUsers [get]
func (h *UserHandler) FindUsers(c *gin.Context) {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	users, err := h.userService.FindUsers(c.Request.Context(), params)
	if err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// BulkCreate cadastra vários usuários; falhas por item não interrompem o lote
//
//	@Summary	Cadastro em lote
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		[]object	true	"Lista de usuários"
//	@Success	200		{object}	dto.BulkCreateResponse
//	@Failure	500		{object}	dto.MessageResponse
//	@Router		/users/bulkCreate [post]
func (h *UserHandler) BulkCreate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Error("failed to read bulk body", "error", err)
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: dto.T(c, errors.ErrInternal.Error())})
		return
	}

	items, err := services.ParseBulkPayload(body)
	if err != nil {
		h.logger.Warn("bulk body rejected", "error", err)
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: dto.T(c, errors.ErrBulkPayloadNotArray.Error())})
		return
	}

	result := h.userService.BulkCreateUsers(c.Request.Context(), items)

	c.JSON(http.StatusOK, dto.BulkCreateResponse{
		SuccessCount: result.SuccessCount,
		ErrorCount:   result.ErrorCount,
		ErrorUsers:   result.ErrorUsers,
	})
}

// GetUser busca um usuário ativo por ID; responde null quando não há
//
//	@Summary	Busca usuário por ID
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"ID do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), targetID(c))
	if err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateUser altera nome, senha ou celular
//
//	@Summary	Atualiza usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int						true	"ID do usuário"
//	@Param		request	body		dto.UpdateUserRequest	true	"Campos a alterar"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	// Corpo vazio equivale a nenhuma alteração
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		dto.AbortWithProblem(c, bindingErrorResponse(c, err))
		return
	}

	err := h.userService.UpdateUser(c.Request.Context(), targetID(c), services.UpdateUserInput{
		Name:      req.Name,
		Password:  req.Password,
		Cellphone: req.Cellphone,
	})
	if err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.user_updated")})
}

// DeleteUser remove logicamente o usuário
//
//	@Summary	Remove usuário
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"ID do usuário"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), targetID(c)); err != nil {
		dto.AbortWithProblem(c, dto.DomainErrorResponseI18n(c, err))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.user_deleted")})
}

// bindingErrorResponse distingue campos ausentes de JSON ilegível
func bindingErrorResponse(c *gin.Context, err error) dto.ErrorResponse {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		return dto.ValidationErrorResponseI18n(c, errors.ErrMissingRequiredField.Error())
	}
	return dto.BadRequestErrorResponseI18n(c, err)
}
