package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
)

// fakeAccountStore is an in-memory store; beforeDelete lets tests interleave
// an activation between the sweeper's read and its delete.
type fakeAccountStore struct {
	mu           sync.Mutex
	accounts     map[int64]*domain.Account
	deleteErr    map[int64]error
	beforeDelete func(id int64)
}

func newFakeAccountStore(accounts ...*domain.Account) *fakeAccountStore {
	store := &fakeAccountStore{
		accounts:  make(map[int64]*domain.Account),
		deleteErr: make(map[int64]error),
	}
	for _, account := range accounts {
		store.accounts[account.ID] = account
	}
	return store
}

func (f *fakeAccountStore) Create(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountStore) Update(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountStore) GetByLogin(ctx context.Context, login string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Login == login && !account.Deleted {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountStore) GetByActivationKey(ctx context.Context, key string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.ActivationKey != nil && *account.ActivationKey == key {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountStore) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []*domain.Account
	for _, account := range f.accounts {
		if !account.Activated && account.CreatedDate.Before(cutoff) {
			pending = append(pending, account)
		}
	}
	return pending, nil
}

func (f *fakeAccountStore) DeleteIfNotActivated(ctx context.Context, id int64) (bool, error) {
	if f.beforeDelete != nil {
		f.beforeDelete(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return false, err
	}
	account, ok := f.accounts[id]
	if !ok || account.Activated {
		return false, nil
	}
	delete(f.accounts, id)
	return true, nil
}

func (f *fakeAccountStore) SoftDelete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Deleted = true
	return nil
}

func (f *fakeAccountStore) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.PasswordHash = hash
	return nil
}

func (f *fakeAccountStore) activate(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account, ok := f.accounts[id]; ok {
		account.Activated = true
		account.ActivationKey = nil
	}
}

func (f *fakeAccountStore) contains(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[id]
	return ok
}

func pendingAccount(id int64, login string, created time.Time) *domain.Account {
	key := login + "-key"
	return &domain.Account{
		ID:            id,
		Login:         login,
		Activated:     false,
		ActivationKey: &key,
		CreatedDate:   created,
	}
}

const retention = 3 * 24 * time.Hour

func TestSweep(t *testing.T) {
	now := time.Date(2026, time.August, 29, 1, 0, 0, 0, time.UTC)

	t.Run("RemovesExpiredPending", func(t *testing.T) {
		expired := pendingAccount(1, "stale", now.Add(-retention-time.Second))
		store := newFakeAccountStore(expired)
		sweeper := NewExpirySweeper(store, nil, zap.NewNop(), nil, retention, nil)

		removed := sweeper.Sweep(context.Background(), now)

		assert.Equal(t, 1, removed)
		assert.False(t, store.contains(1))
	})

	t.Run("KeepsPendingInsideWindow", func(t *testing.T) {
		fresh := pendingAccount(2, "fresh", now.Add(-(2*24*time.Hour + 23*time.Hour)))
		store := newFakeAccountStore(fresh)
		sweeper := NewExpirySweeper(store, nil, zap.NewNop(), nil, retention, nil)

		removed := sweeper.Sweep(context.Background(), now)

		assert.Equal(t, 0, removed)
		assert.True(t, store.contains(2))
	})

	t.Run("ActivationBetweenReadAndDelete", func(t *testing.T) {
		contested := pendingAccount(3, "racer", now.Add(-retention-time.Second))
		store := newFakeAccountStore(contested)
		store.beforeDelete = func(id int64) {
			store.activate(id)
		}
		sweeper := NewExpirySweeper(store, nil, zap.NewNop(), nil, retention, nil)

		removed := sweeper.Sweep(context.Background(), now)

		// exactly one outcome holds: the account survives, activated
		assert.Equal(t, 0, removed)
		assert.True(t, store.contains(3))
		account, err := store.GetByLogin(context.Background(), "racer")
		assert.NoError(t, err)
		assert.True(t, account.Activated)
	})

	t.Run("PerAccountFailureDoesNotAbortBatch", func(t *testing.T) {
		broken := pendingAccount(4, "broken", now.Add(-retention-time.Hour))
		stale := pendingAccount(5, "stale", now.Add(-retention-time.Hour))
		store := newFakeAccountStore(broken, stale)
		store.deleteErr[4] = errors.New("connection reset")
		sweeper := NewExpirySweeper(store, nil, zap.NewNop(), nil, retention, nil)

		removed := sweeper.Sweep(context.Background(), now)

		assert.Equal(t, 1, removed)
		assert.True(t, store.contains(4))
		assert.False(t, store.contains(5))
	})

	t.Run("CancelledContextStopsBatch", func(t *testing.T) {
		first := pendingAccount(6, "first", now.Add(-retention-time.Hour))
		second := pendingAccount(7, "second", now.Add(-retention-time.Hour))
		store := newFakeAccountStore(first, second)

		ctx, cancel := context.WithCancel(context.Background())
		store.beforeDelete = func(id int64) {
			cancel()
		}
		sweeper := NewExpirySweeper(store, nil, zap.NewNop(), nil, retention, nil)

		removed := sweeper.Sweep(ctx, now)

		// one delete may land before cancellation is observed
		assert.LessOrEqual(t, removed, 1)
		assert.True(t, store.contains(6) || store.contains(7))
	})
}

func TestRunSkipsOverlappingTick(t *testing.T) {
	store := newFakeAccountStore()
	sweeper := NewExpirySweeper(store, nil, zap.NewNop(), nil, retention, nil)

	// simulate a run still in progress; the next tick must be skipped
	assert.True(t, sweeper.running.CompareAndSwap(false, true))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sweeper.Run(ctx, 5*time.Millisecond)

	// still held: Run never stole the guard while it was taken
	assert.True(t, sweeper.running.Load())
}
