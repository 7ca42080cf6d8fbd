package repositories

//go:generate go tool mockgen -destination user_repository_mock.go -package repositories . UserRepository

import (
	"context"
	"time"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	// FindByID retorna apenas usuários ativos; nil quando não existe
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	// FindByEmail considera também usuários removidos
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// Update aplica o patch sem verificar status nem existência
	Update(ctx context.Context, id uint, patch entities.UserPatch) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
}

// DateComparison indica o sentido da condição sobre created_at
type DateComparison int

const (
	CreatedBefore DateComparison = iota + 1
	CreatedAfter
)

// CreatedAtCondition é a única condição de data suportada por consulta
type CreatedAtCondition struct {
	Comparison DateComparison
	Date       time.Time
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Status    bool
	Name      *string             // busca por substring
	CreatedAt *CreatedAtCondition // nil = sem filtro de data
}

// ActiveUsers retorna o filtro padrão (somente usuários ativos)
func ActiveUsers() UserFilters {
	return UserFilters{Status: true}
}
