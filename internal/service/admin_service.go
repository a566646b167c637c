package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
)

// AccountAdminService exposes administrator-triggered account operations.
type AccountAdminService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAccountAdminService constructs the service.
func NewAccountAdminService(accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AccountAdminService {
	return &AccountAdminService{accounts: accounts, dispatcher: dispatcher, logger: logger}
}

// SoftDelete marks the account logically deleted without removing the
// record. Activation state is left untouched.
func (s *AccountAdminService) SoftDelete(ctx context.Context, id int64) error {
	s.logger.Debug("deleting account logically", zap.Int64("id", id))

	if err := s.accounts.SoftDelete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrAccountNotFound
		}
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccountSoftDeleted,
			AccountID: id,
			Timestamp: time.Now(),
		})
	}
	return nil
}

// GetWithAuthorities loads an account with its role grants eagerly attached.
func (s *AccountAdminService) GetWithAuthorities(ctx context.Context, login string) (*domain.Account, error) {
	account, err := s.accounts.GetByLogin(ctx, login)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
