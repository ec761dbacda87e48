package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bank-support/internal/config"
	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/repository"
	"github.com/spec-kit/bank-support/internal/service"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

func newAuthService(repo repository.UserRepository) *service.AuthService {
	return service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}, repo)
}

func validRegistration() service.RegisterInput {
	return service.RegisterInput{
		FirstName:       "Marie",
		LastName:        "Curie",
		Email:           "marie@mail.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

// TestRegisterSuccess creates an account with the user role and a verifiable
// password hash.
func TestRegisterSuccess(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	user, token, exp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "marie@mail.com", user.Email)
	assert.Equal(t, "Marie Curie", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

// TestRegisterCollectsAllMessages verifies every violated rule yields its
// message and no account is created.
func TestRegisterCollectsAllMessages(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, _, _, err := svc.Register(context.Background(), service.RegisterInput{})
	require.Error(t, err)

	messages := apperrors.ValidationMessages(err)
	assert.Equal(t, []string{
		"Prénom requis.",
		"Nom requis.",
		"Email requis.",
		"Mot de passe requis.",
	}, messages)
	assert.Empty(t, repo.users)
}

// TestRegisterPasswordTooShort verifies the length rule.
func TestRegisterPasswordTooShort(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	input := validRegistration()
	input.Password = "abc"
	input.ConfirmPassword = "abc"

	_, _, _, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, []string{"Le mot de passe doit faire au moins 6 caractères."},
		apperrors.ValidationMessages(err))
}

// TestRegisterPasswordMismatch verifies the confirmation rule.
func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	input := validRegistration()
	input.ConfirmPassword = "different"

	_, _, _, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, []string{"Les mots de passe ne correspondent pas."},
		apperrors.ValidationMessages(err))
}

// TestRegisterInvalidEmail verifies the format rule.
func TestRegisterInvalidEmail(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	input := validRegistration()
	input.Email = "not-an-email"

	_, _, _, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, []string{"Format d'email invalide."}, apperrors.ValidationMessages(err))
}

// TestRegisterDuplicateEmail verifies a second registration on the same email
// surfaces as a conflict.
func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, _, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), validRegistration())
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	assert.Len(t, repo.users, 1)
}

// TestLoginSuccess authenticates a registered account and issues a token.
func TestLoginSuccess(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, _, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "marie@mail.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "marie@mail.com", user.Email)
	assert.NotEmpty(t, token)
}

// TestLoginWrongPassword verifies the generic unauthorized answer.
func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	_, _, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "marie@mail.com", "wrong")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "Adresse e-mail ou mot de passe incorrect.", domainErr.Message)
}

// TestLoginUnknownEmail verifies the answer does not reveal whether the
// account exists.
func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	_, _, _, err := svc.Login(context.Background(), "absent@mail.com", "secret1")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "Adresse e-mail ou mot de passe incorrect.", domainErr.Message)
}
