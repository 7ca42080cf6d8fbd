package dto

import (
	"encoding/json"
	"time"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
)

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Name           string `json:"name" binding:"required" example:"Ana Souza"`
	Email          string `json:"email" binding:"required" example:"ana@example.com"`
	Password       string `json:"password" binding:"required" example:"s3cret"`
	PasswordSecond string `json:"password_second" binding:"required" example:"s3cret"`
	Cellphone      string `json:"cellphone" binding:"required" example:"+55 11 99999-0000"`
}

// UpdateUserRequest representa a requisição para atualizar um usuário.
// Campos ausentes mantêm o valor atual; o email não pode ser alterado.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Password  *string `json:"password"`
	Cellphone *string `json:"cellphone"`
}

// LoginRequest representa as credenciais de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse contém o token de acesso emitido
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// UserResponse representa a resposta de um usuário; a senha nunca é exposta
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Cellphone string    `json:"cellphone"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BulkCreateResponse resume o cadastro em lote
type BulkCreateResponse struct {
	SuccessCount int               `json:"successCount"`
	ErrorCount   int               `json:"errorCount"`
	ErrorUsers   []json.RawMessage `json:"errorUsers" swaggertype:"array,object"`
}

// ToUserResponse converte uma entidade User para UserResponse; nil vira nil
func ToUserResponse(user *entities.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Cellphone: user.Cellphone,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, *ToUserResponse(user))
	}
	return responses
}
