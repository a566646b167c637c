package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
)

func TestUpdateSelf(t *testing.T) {
	t.Run("CopiesAllFields", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewProfileService(accounts, nil, zap.NewNop())

		existing := &domain.Account{ID: 3, Login: "alice", Email: "old@example.com", Activated: true}
		accounts.On("GetByLogin", ctx, "alice").Return(existing, nil).Once()

		var saved *domain.Account
		accounts.On("Update", ctx, mock.AnythingOfType("*domain.Account")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*domain.Account)
			}).Return(nil).Once()

		err := svc.UpdateSelf(ctx, "alice", ProfileUpdate{
			Login:       "alice-renamed",
			Phone:       "555-0100",
			Gender:      1,
			Age:         30,
			Classes:     "2026-A",
			Description: "hello",
			AvatarURL:   "https://cdn.example.com/a.png",
			FirstName:   "Alice",
			LastName:    "Liddell",
			Email:       "new@example.com",
		})

		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			assert.Equal(t, "alice-renamed", saved.Login)
			assert.Equal(t, "555-0100", saved.Phone)
			assert.Equal(t, 1, saved.Gender)
			assert.Equal(t, 30, saved.Age)
			assert.Equal(t, "2026-A", saved.Classes)
			assert.Equal(t, "new@example.com", saved.Email)
		}
		accounts.AssertExpectations(t)
	})

	t.Run("MissingAccountIsNoOp", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewProfileService(accounts, nil, zap.NewNop())

		accounts.On("GetByLogin", ctx, "ghost").Return(nil, pgx.ErrNoRows).Once()

		err := svc.UpdateSelf(ctx, "ghost", ProfileUpdate{Login: "ghost"})

		assert.NoError(t, err)
		accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUpdateOther(t *testing.T) {
	t.Run("ResolvesExplicitTarget", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewProfileService(accounts, nil, zap.NewNop())

		existing := &domain.Account{ID: 4, Login: "bob", Activated: true}
		accounts.On("GetByLogin", ctx, "bob").Return(existing, nil).Once()
		accounts.On("Update", ctx, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Login == "bob" && a.FirstName == "Robert"
		})).Return(nil).Once()

		err := svc.UpdateOther(ctx, "bob", ProfileUpdate{Login: "bob", FirstName: "Robert"})

		assert.NoError(t, err)
		accounts.AssertExpectations(t)
	})

	t.Run("MissingAccountIsNoOp", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewProfileService(accounts, nil, zap.NewNop())

		accounts.On("GetByLogin", ctx, "ghost").Return(nil, pgx.ErrNoRows).Once()

		err := svc.UpdateOther(ctx, "ghost", ProfileUpdate{Login: "ghost"})

		assert.NoError(t, err)
		accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
