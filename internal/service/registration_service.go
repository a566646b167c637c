package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
)

// RegistrationService creates pending accounts awaiting activation.
type RegistrationService struct {
	accounts    repository.AccountRepository
	authorities repository.AuthorityRepository
	hasher      auth.PasswordHasher
	keys        auth.KeyGenerator
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// RegistrationDependencies bundles collaborators for the registration service.
type RegistrationDependencies struct {
	AccountRepo   repository.AccountRepository
	AuthorityRepo repository.AuthorityRepository
	Hasher        auth.PasswordHasher
	KeyGenerator  auth.KeyGenerator
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	return &RegistrationService{
		accounts:    deps.AccountRepo,
		authorities: deps.AuthorityRepo,
		hasher:      deps.Hasher,
		keys:        deps.KeyGenerator,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	Login     string
	UserNo    string
	Password  string
	FirstName string
	LastName  string
	Email     string
	LangKey   string
	RoleIDs   []string
	Deleted   bool
}

// Register creates a not-activated account carrying a fresh activation key.
// Only the first requested role id is resolved; the rest are ignored.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if len(input.RoleIDs) == 0 {
		return nil, errors.New("at least one role id required")
	}

	authority, err := s.authorities.GetByName(ctx, input.RoleIDs[0])
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	key := s.keys.Generate()
	account := &domain.Account{
		Login:         input.Login,
		UserNo:        input.UserNo,
		PasswordHash:  hash,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		LangKey:       input.LangKey,
		Activated:     false,
		ActivationKey: &key,
		Deleted:       input.Deleted,
		Authorities:   []domain.Authority{*authority},
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Debug("created account", zap.String("login", account.Login), zap.String("user_no", account.UserNo))
	s.publishRegistered(ctx, account)
	return account, nil
}

func (s *RegistrationService) publishRegistered(ctx context.Context, account *domain.Account) {
	if s.dispatcher == nil {
		return
	}
	names := make([]string, 0, len(account.Authorities))
	for _, authority := range account.Authorities {
		names = append(names, authority.Name)
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRegistered,
		AccountID: account.ID,
		Login:     account.Login,
		Timestamp: time.Now(),
		Payload: events.AccountRegisteredPayload{
			UserNo:      account.UserNo,
			Email:       account.Email,
			Authorities: names,
		},
	})
}
