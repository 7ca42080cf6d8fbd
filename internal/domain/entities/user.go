package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Cellphone    string
	Status       bool // false = removido logicamente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUserData)
	}

	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUserData)
	}

	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidUserData)
	}

	return nil
}

// UserPatch contém os campos alteráveis de um usuário.
// Campos nil não são alterados.
type UserPatch struct {
	Name         *string
	PasswordHash *string
	Cellphone    *string
}

// IsEmpty indica que não há nada a alterar
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.PasswordHash == nil && p.Cellphone == nil
}
