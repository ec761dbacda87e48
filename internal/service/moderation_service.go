package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-support/internal/domain"
	"github.com/spec-kit/bank-support/internal/events"
	"github.com/spec-kit/bank-support/internal/repository"
	apperrors "github.com/spec-kit/bank-support/pkg/util/errorutil"
)

// ModerationService performs admin-gated mutations of client accounts. Every
// operation takes the calling principal explicitly and refuses non-admins
// before touching storage.
type ModerationService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewModerationService constructs the service.
func NewModerationService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ModerationService {
	return &ModerationService{users: users, dispatcher: dispatcher, logger: logger}
}

// FindByEmail looks up an account for the agent console.
func (s *ModerationService) FindByEmail(ctx context.Context, principal domain.Principal, email string) (*domain.User, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("administrator role required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

// SetRole changes an account's role. An invalid role is rejected without
// touching storage.
func (s *ModerationService) SetRole(ctx context.Context, principal domain.Principal, accountID int64, role domain.Role) (*domain.User, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("administrator role required")
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("role must be one of: user, admin",
			map[string]any{"role": string(role)})
	}

	user, err := s.users.GetByID(ctx, accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, err
	}
	oldRole := user.Role

	if err := s.users.UpdateRole(ctx, accountID, role); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventAccountRoleChanged,
		SubjectID: user.Email,
		Actor:     events.Actor{UserID: &principal.UserID, Email: principal.Email},
		Payload:   events.AccountRoleChangedPayload{OldRole: oldRole, NewRole: role},
	})

	user.Role = role
	return user, nil
}

// Delete removes an account permanently. Complaint records submitted under
// the account's email are left in place.
func (s *ModerationService) Delete(ctx context.Context, principal domain.Principal, accountID int64) error {
	if !principal.IsAdmin() {
		return apperrors.NewForbidden("administrator role required")
	}

	user, err := s.users.GetByID(ctx, accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return err
	}

	if err := s.users.Delete(ctx, accountID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("account", map[string]any{"id": accountID})
		}
		return err
	}
	s.logger.Info("account deleted",
		zap.Int64("account_id", accountID),
		zap.Int64("deleted_by", principal.UserID))

	s.publish(ctx, events.Event{
		Type:      events.EventAccountDeleted,
		SubjectID: user.Email,
		Actor:     events.Actor{UserID: &principal.UserID, Email: principal.Email},
		Payload:   events.AccountDeletedPayload{Email: user.Email},
	})
	return nil
}

func (s *ModerationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
