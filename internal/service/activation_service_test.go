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

func TestActivate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewActivationService(accounts, nil, zap.NewNop())

		key := "live-key"
		pending := &domain.Account{ID: 7, Login: "alice", Activated: false, ActivationKey: &key}

		accounts.On("GetByActivationKey", ctx, key).Return(pending, nil).Once()
		accounts.On("Update", ctx, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Activated && a.ActivationKey == nil
		})).Return(nil).Once()

		account, err := svc.Activate(ctx, key)

		assert.NoError(t, err)
		assert.True(t, account.Activated)
		assert.Nil(t, account.ActivationKey)
		accounts.AssertExpectations(t)
	})

	t.Run("UnknownOrConsumedKey", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewActivationService(accounts, nil, zap.NewNop())

		accounts.On("GetByActivationKey", ctx, "gone-key").Return(nil, pgx.ErrNoRows).Once()

		account, err := svc.Activate(ctx, "gone-key")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, ErrActivationNotFound)
		accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("SecondAttemptIsNoOp", func(t *testing.T) {
		ctx := context.Background()
		accounts := new(MockAccountRepo)
		svc := NewActivationService(accounts, nil, zap.NewNop())

		key := "once-key"
		pending := &domain.Account{ID: 9, Login: "bob", ActivationKey: &key}

		accounts.On("GetByActivationKey", ctx, key).Return(pending, nil).Once()
		accounts.On("Update", ctx, mock.Anything).Return(nil).Once()
		// key cleared by the first activation, so the second lookup misses
		accounts.On("GetByActivationKey", ctx, key).Return(nil, pgx.ErrNoRows).Once()

		first, err := svc.Activate(ctx, key)
		assert.NoError(t, err)
		assert.True(t, first.Activated)

		second, err := svc.Activate(ctx, key)
		assert.Nil(t, second)
		assert.ErrorIs(t, err, ErrActivationNotFound)
		accounts.AssertNumberOfCalls(t, "Update", 1)
	})
}
