package services

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/ports"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	metrics  ports.UserMetrics
	logger   ports.Logger
	validate *validator.Validate
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	metrics ports.UserMetrics,
	logger ports.Logger,
) *UserService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		metrics:  metrics,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Name           string
	Email          string
	Password       string
	PasswordSecond string
	Cellphone      string
}

// CreateUser cria um novo usuário ativo com a senha em hash
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	if input.Password != input.PasswordSecond {
		return nil, errors.NewValidationError(errors.ErrPasswordsDoNotMatch)
	}

	s.logger.Info("creating user", "email", input.Email)

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, errors.NewInternalError(err)
	}

	user := &entities.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Cellphone:    input.Cellphone,
		Status:       true,
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		// O email é único inclusive entre usuários removidos
		existing, err := s.userRepo.FindByEmail(txCtx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrEmailAlreadyExists) {
			return nil, errors.NewConflictError(err)
		}
		s.logger.Error("failed to create user", "email", input.Email, "error", err)
		return nil, errors.NewInternalError(err)
	}

	s.metrics.RecordUserCreated("single")
	s.logger.Info("user created", "user_id", user.ID)

	return user, nil
}

// BulkUserInput é um item do cadastro em lote
type BulkUserInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	PasswordSecond string `json:"password_second" validate:"eqfield=Password"`
	Cellphone      string `json:"cellphone" validate:"required"`
	Status         *bool  `json:"status"`

	// Raw guarda o item como recebido, devolvido em ErrorUsers
	Raw json.RawMessage `json:"-"`
	// Malformed indica que o item não pôde ser lido como objeto
	Malformed bool `json:"-"`
}

// BulkCreateResult resume o cadastro em lote
type BulkCreateResult struct {
	SuccessCount int               `json:"successCount"`
	ErrorCount   int               `json:"errorCount"`
	ErrorUsers   []json.RawMessage `json:"errorUsers"`
}

// ParseBulkPayload decodifica o corpo do cadastro em lote.
// O corpo precisa ser um array; itens ilegíveis viram Malformed.
func ParseBulkPayload(body []byte) ([]BulkUserInput, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(body, &rawItems); err != nil || rawItems == nil {
		return nil, errors.NewValidationError(errors.ErrBulkPayloadNotArray, err)
	}

	items := make([]BulkUserInput, len(rawItems))
	for i, raw := range rawItems {
		if err := json.Unmarshal(raw, &items[i]); err != nil || isJSONNull(raw) {
			items[i] = BulkUserInput{Malformed: true}
		}
		items[i].Raw = raw
	}

	return items, nil
}

// BulkCreateUsers cria cada item de forma independente, sem transação.
// Falhas de um item são contadas e não interrompem os demais.
func (s *UserService) BulkCreateUsers(ctx context.Context, items []BulkUserInput) BulkCreateResult {
	result := BulkCreateResult{ErrorUsers: []json.RawMessage{}}

	for _, item := range items {
		if err := s.createBulkItem(ctx, item); err != nil {
			result.ErrorCount++
			result.ErrorUsers = append(result.ErrorUsers, item.Raw)
			s.metrics.RecordBulkItem("error")
			s.logger.Warn("bulk create item failed", "name", item.Name, "error", err)
			continue
		}
		result.SuccessCount++
		s.metrics.RecordBulkItem("success")
	}

	s.logger.Info("bulk create finished",
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)

	return result
}

func (s *UserService) createBulkItem(ctx context.Context, item BulkUserInput) error {
	if item.Malformed {
		return errors.ErrMissingRequiredField
	}

	if err := s.validate.Struct(item); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "eqfield" {
					return errors.ErrPasswordsDoNotMatch
				}
			}
		}
		return stderrors.Join(errors.ErrMissingRequiredField, err)
	}

	hash, err := s.hasher.Hash(item.Password)
	if err != nil {
		return err
	}

	status := true
	if item.Status != nil {
		status = *item.Status
	}

	user := &entities.User{
		Name:         item.Name,
		Email:        item.Email,
		PasswordHash: hash,
		Cellphone:    item.Cellphone,
		Status:       status,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.metrics.RecordUserCreated("bulk")
	return nil
}

// GetAllUsers lista todos os usuários ativos
func (s *UserService) GetAllUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.List(ctx, repositories.ActiveUsers())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

// GetUserByID busca um usuário ativo por ID; nil quando não existe
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

// FindUsers lista usuários conforme os parâmetros de consulta
func (s *UserService) FindUsers(ctx context.Context, params map[string]string) ([]*entities.User, error) {
	filters, err := BuildUserFilter(params)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx, filters)
	if err != nil {
		s.logger.Error("failed to find users", "error", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

// UserExists verifica se há um usuário ativo com o ID
func (s *UserService) UserExists(ctx context.Context, id uint) (bool, error) {
	exists, err := s.userRepo.ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to check user existence", "user_id", id, "error", err)
		return false, errors.NewInternalError(err)
	}
	return exists, nil
}

// UpdateUserInput contém os campos alteráveis; nil mantém o valor atual
type UpdateUserInput struct {
	Name      *string
	Password  *string
	Cellphone *string
}

// UpdateUser aplica uma alteração parcial. O email nunca muda.
// O sucesso não depende de o ID existir: o UPDATE é aplicado mesmo sem linha correspondente.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) error {
	current, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user for update", "user_id", id, "error", err)
		return errors.NewInternalError(err)
	}

	var patch entities.UserPatch
	if current != nil {
		patch = entities.UserPatch{
			Name:         &current.Name,
			PasswordHash: &current.PasswordHash,
			Cellphone:    &current.Cellphone,
		}
	}

	if input.Name != nil {
		patch.Name = input.Name
	}
	if input.Cellphone != nil {
		patch.Cellphone = input.Cellphone
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return errors.NewInternalError(err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.userRepo.Update(ctx, id, patch); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return errors.NewInternalError(err)
	}

	s.logger.Info("user updated", "user_id", id, "found", current != nil)
	return nil
}

// DeleteUser remove logicamente o usuário (status=false)
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return errors.NewInternalError(err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
