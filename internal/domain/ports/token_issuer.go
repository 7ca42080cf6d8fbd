package ports

import "github.com/rafabene/usuarios-backend/internal/domain/entities"

// TokenIssuer emite tokens de acesso
type TokenIssuer interface {
	Generate(userID uint, email string, role entities.Role) (string, error)
}
