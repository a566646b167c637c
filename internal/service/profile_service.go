package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
)

// ProfileService mutates non-security profile fields.
type ProfileService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProfileService constructs the service.
func NewProfileService(accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProfileService {
	return &ProfileService{accounts: accounts, dispatcher: dispatcher, logger: logger}
}

// ProfileUpdate carries the full replacement field set for a profile edit.
// Login is included: renaming the external identifier is permitted on both
// paths; downstream session invalidation is not this service's concern.
type ProfileUpdate struct {
	Login       string
	Phone       string
	Gender      int
	Age         int
	Classes     string
	Description string
	AvatarURL   string
	FirstName   string
	LastName    string
	Email       string
}

// UpdateSelf applies the update to the caller's own account, resolved from
// the session-derived login. Missing accounts are a silent no-op.
func (s *ProfileService) UpdateSelf(ctx context.Context, currentLogin string, update ProfileUpdate) error {
	return s.apply(ctx, currentLogin, update, false)
}

// UpdateOther applies the update to an explicitly named account on behalf of
// an administrator. Missing accounts are a silent no-op.
func (s *ProfileService) UpdateOther(ctx context.Context, targetLogin string, update ProfileUpdate) error {
	return s.apply(ctx, targetLogin, update, true)
}

func (s *ProfileService) apply(ctx context.Context, login string, update ProfileUpdate, byAdmin bool) error {
	account, err := s.accounts.GetByLogin(ctx, login)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Debug("profile update target not found", zap.String("login", login))
			return nil
		}
		return err
	}

	previousLogin := account.Login
	account.Login = update.Login
	account.Phone = update.Phone
	account.Gender = update.Gender
	account.Age = update.Age
	account.Classes = update.Classes
	account.Description = update.Description
	account.AvatarURL = update.AvatarURL
	account.FirstName = update.FirstName
	account.LastName = update.LastName
	account.Email = update.Email

	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	s.logger.Debug("changed account information", zap.String("login", account.Login), zap.Bool("by_admin", byAdmin))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProfileUpdated,
			AccountID: account.ID,
			Login:     account.Login,
			Timestamp: time.Now(),
			Payload: events.ProfileUpdatedPayload{
				PreviousLogin: previousLogin,
				ByAdmin:       byAdmin,
			},
		})
	}
	return nil
}
