package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bank-support/internal/auth"
	"github.com/spec-kit/bank-support/internal/config"
	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/repository"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput describes a registration submission.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new client account with the user role. All validation
// failures are collected; a duplicate email surfaces as a conflict.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.TrimSpace(input.Email)

	var messages []string
	if firstName == "" {
		messages = append(messages, "Prénom requis.")
	}
	if lastName == "" {
		messages = append(messages, "Nom requis.")
	}
	if email == "" {
		messages = append(messages, "Email requis.")
	} else if !emailPattern.MatchString(email) {
		messages = append(messages, "Format d'email invalide.")
	}
	if input.Password == "" {
		messages = append(messages, "Mot de passe requis.")
	} else if len(input.Password) < 6 {
		messages = append(messages, "Le mot de passe doit faire au moins 6 caractères.")
	} else if input.Password != input.ConfirmPassword {
		messages = append(messages, "Les mots de passe ne correspondent pas.")
	}
	if len(messages) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationFailed(messages)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("Cette adresse e-mail est déjà utilisée.", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Email:        email,
		Username:     firstName + " " + lastName,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", time.Time{}, apperrors.NewConflict("Cette adresse e-mail est déjà utilisée.", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account. The failure message never says whether the
// email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Adresse e-mail ou mot de passe incorrect.")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Adresse e-mail ou mot de passe incorrect.")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
