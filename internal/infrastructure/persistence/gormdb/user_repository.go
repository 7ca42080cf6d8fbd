package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", domainerrors.ErrEmailAlreadyExists, err)
		}
		return err
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	// Soft delete: ignorar registros inativos
	if err := db.Where("id = ? AND status = ?", id, true).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	// O email é único entre todos os registros, inclusive inativos
	if err := db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64

	db := r.getDB(ctx)
	if err := db.Model(&UserModel{}).Where("id = ? AND status = ?", id, true).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, patch entities.UserPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	values := map[string]any{}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.PasswordHash != nil {
		values["password"] = *patch.PasswordHash
	}
	if patch.Cellphone != nil {
		values["cellphone"] = *patch.Cellphone
	}

	db := r.getDB(ctx)
	return db.Model(&UserModel{}).Where("id = ?", id).Updates(values).Error
}

func (r *UserRepository) SoftDelete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Model(&UserModel{}).Where("id = ?", id).Update("status", false).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	db := r.getDB(ctx)
	query := db.Model(&UserModel{}).Where("status = ?", filters.Status)

	if filters.Name != nil {
		query = query.Where("name LIKE ?", "%"+*filters.Name+"%")
	}

	if cond := filters.CreatedAt; cond != nil {
		switch cond.Comparison {
		case repositories.CreatedBefore:
			query = query.Where("created_at < ?", cond.Date)
		case repositories.CreatedAfter:
			query = query.Where("created_at > ?", cond.Date)
		}
	}

	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models), nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	status := user.Status

	return &UserModel{
		ID:        user.ID,
		Name:      user.Name,
		Password:  user.PasswordHash,
		Status:    &status,
		Email:     user.Email,
		Cellphone: user.Cellphone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	return &entities.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.Password,
		Cellphone:    model.Cellphone,
		Status:       model.Status != nil && *model.Status,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func (r *UserRepository) toEntities(models []*UserModel) []*entities.User {
	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		users = append(users, r.toEntity(model))
	}
	return users
}
