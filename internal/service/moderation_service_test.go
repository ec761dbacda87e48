package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/repository"
	"github.com/spec-kit/bank-support/internal/service"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

// memUserRepo is an in-memory UserRepository for service tests. It mirrors the
// Postgres implementation's error contract: pgx.ErrNoRows for missing rows and
// ErrDuplicateEmail on an email collision.
type memUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]domain.User{}, nextID: 1}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	user, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	m.users[id] = user
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

func seedAccount(repo *memUserRepo, email string, role domain.Role) int64 {
	id := repo.nextID
	repo.nextID++
	repo.users[id] = domain.User{ID: id, Email: email, Username: "Seeded Account", Role: role}
	return id
}

func newModerationService(repo repository.UserRepository) *service.ModerationService {
	return service.NewModerationService(repo, nil, zap.NewNop())
}

func clientPrincipal() domain.Principal {
	return domain.Principal{UserID: 99, Email: "client@mail.com", Role: domain.RoleUser}
}

// TestFindByEmail covers the found and absent cases for the agent console
// lookup.
func TestFindByEmail(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(repo, "marie@mail.com", domain.RoleUser)
	svc := newModerationService(repo)

	user, err := svc.FindByEmail(context.Background(), adminPrincipal(), "marie@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "marie@mail.com", user.Email)

	_, err = svc.FindByEmail(context.Background(), adminPrincipal(), "absent@mail.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

// TestFindByEmailRequiresAdmin verifies the gate fires before any lookup.
func TestFindByEmailRequiresAdmin(t *testing.T) {
	repo := newMemUserRepo()
	seedAccount(repo, "marie@mail.com", domain.RoleUser)
	svc := newModerationService(repo)

	_, err := svc.FindByEmail(context.Background(), clientPrincipal(), "marie@mail.com")

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

// TestSetRoleSuccess promotes an account and returns the updated record.
func TestSetRoleSuccess(t *testing.T) {
	repo := newMemUserRepo()
	id := seedAccount(repo, "marie@mail.com", domain.RoleUser)
	svc := newModerationService(repo)

	user, err := svc.SetRole(context.Background(), adminPrincipal(), id, domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, domain.RoleAdmin, repo.users[id].Role)
}

// TestSetRoleRejectsUnknownRole verifies an unknown role fails validation and
// leaves storage untouched.
func TestSetRoleRejectsUnknownRole(t *testing.T) {
	repo := newMemUserRepo()
	id := seedAccount(repo, "marie@mail.com", domain.RoleUser)
	svc := newModerationService(repo)

	_, err := svc.SetRole(context.Background(), adminPrincipal(), id, domain.Role("superuser"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Equal(t, domain.RoleUser, repo.users[id].Role)
}

// TestSetRoleUnknownAccount verifies the not-found mapping.
func TestSetRoleUnknownAccount(t *testing.T) {
	svc := newModerationService(newMemUserRepo())

	_, err := svc.SetRole(context.Background(), adminPrincipal(), 42, domain.RoleAdmin)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

// TestDeleteRequiresAdmin verifies a non-admin principal cannot delete and the
// account survives.
func TestDeleteRequiresAdmin(t *testing.T) {
	repo := newMemUserRepo()
	id := seedAccount(repo, "marie@mail.com", domain.RoleUser)
	svc := newModerationService(repo)

	err := svc.Delete(context.Background(), clientPrincipal(), id)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Contains(t, repo.users, id)
}

// TestDeleteSuccess removes the account.
func TestDeleteSuccess(t *testing.T) {
	repo := newMemUserRepo()
	id := seedAccount(repo, "marie@mail.com", domain.RoleUser)
	svc := newModerationService(repo)

	require.NoError(t, svc.Delete(context.Background(), adminPrincipal(), id))
	assert.NotContains(t, repo.users, id)
}

// TestDeleteUnknownAccount verifies the not-found mapping.
func TestDeleteUnknownAccount(t *testing.T) {
	svc := newModerationService(newMemUserRepo())

	err := svc.Delete(context.Background(), adminPrincipal(), 42)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
