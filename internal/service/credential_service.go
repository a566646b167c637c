package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
)

// CredentialRotationService rehashes and persists new passwords. Both entry
// points share one targeted-write routine so a rotation can never tear
// profile fields written concurrently.
type CredentialRotationService struct {
	accounts   repository.AccountRepository
	hasher     auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCredentialRotationService constructs the service.
func NewCredentialRotationService(accounts repository.AccountRepository, hasher auth.PasswordHasher, dispatcher events.Dispatcher, logger *zap.Logger) *CredentialRotationService {
	return &CredentialRotationService{accounts: accounts, hasher: hasher, dispatcher: dispatcher, logger: logger}
}

// ChangeOwnPassword rotates the caller's password. A missing account is a
// silent no-op.
func (s *CredentialRotationService) ChangeOwnPassword(ctx context.Context, currentLogin, newPassword string) error {
	return s.rotate(ctx, currentLogin, newPassword)
}

// SetPasswordByID rotates the caller's password through the id-targeted
// write path. Semantics match ChangeOwnPassword.
func (s *CredentialRotationService) SetPasswordByID(ctx context.Context, currentLogin, newPassword string) error {
	return s.rotate(ctx, currentLogin, newPassword)
}

func (s *CredentialRotationService) rotate(ctx context.Context, login, newPassword string) error {
	account, err := s.accounts.GetByLogin(ctx, login)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Debug("password change target not found", zap.String("login", login))
			return nil
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		return err
	}

	s.logger.Debug("changed password for account", zap.String("login", account.Login))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPasswordChanged,
			AccountID: account.ID,
			Login:     account.Login,
			Timestamp: time.Now(),
		})
	}
	return nil
}
