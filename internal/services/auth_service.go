package services

import (
	"context"
	"strings"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/ports"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
)

// AuthService autentica usuários e emite tokens de acesso
type AuthService struct {
	userRepo    repositories.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	adminEmails map[string]struct{}
	logger      ports.Logger
}

// NewAuthService cria um AuthService; adminEmails recebem o role admin
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	adminEmails []string,
	logger ports.Logger,
) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}

	return &AuthService{
		userRepo:    userRepo,
		hasher:      hasher,
		tokens:      tokens,
		adminEmails: admins,
		logger:      logger,
	}
}

// LoginResult contém o token emitido
type LoginResult struct {
	User        *entities.User
	Role        entities.Role
	AccessToken string
}

// Login confere email e senha de um usuário ativo
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to load user for login", "error", err)
		return nil, errors.NewInternalError(err)
	}

	// Mesma resposta para email inexistente, usuário removido ou senha errada
	if user == nil || !user.IsActive() || !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Warn("login rejected", "email", email)
		return nil, errors.NewUnauthorizedError(errors.ErrInvalidCredentials)
	}

	role := s.RoleFor(user.Email)
	token, err := s.tokens.Generate(user.ID, user.Email, role)
	if err != nil {
		s.logger.Error("failed to issue token", "user_id", user.ID, "error", err)
		return nil, errors.NewInternalError(err)
	}

	return &LoginResult{User: user, Role: role, AccessToken: token}, nil
}

// RoleFor define o role a partir da lista de administradores
func (s *AuthService) RoleFor(email string) entities.Role {
	if _, ok := s.adminEmails[strings.ToLower(email)]; ok {
		return entities.RoleAdmin
	}
	return entities.RoleUser
}
