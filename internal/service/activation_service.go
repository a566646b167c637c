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

// ActivationService transitions pending accounts to active.
type ActivationService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivationService constructs the service.
func NewActivationService(accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ActivationService {
	return &ActivationService{accounts: accounts, dispatcher: dispatcher, logger: logger}
}

// Activate consumes an activation key. A missing key yields
// ErrActivationNotFound whether it never existed or was already used;
// callers must not assume either. Repeating a successful activation is a
// no-op returning ErrActivationNotFound while the account stays active.
func (s *ActivationService) Activate(ctx context.Context, key string) (*domain.Account, error) {
	s.logger.Debug("activating account for activation key", zap.String("key", key))

	account, err := s.accounts.GetByActivationKey(ctx, key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrActivationNotFound
		}
		return nil, err
	}

	account.Activated = true
	account.ActivationKey = nil
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Debug("activated account", zap.String("login", account.Login))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccountActivated,
			AccountID: account.ID,
			Login:     account.Login,
			Timestamp: time.Now(),
		})
	}
	return account, nil
}
