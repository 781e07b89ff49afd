package account

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/interfaces"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

type mockStorage struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMockStorage() *mockStorage {
	return &mockStorage{users: make(map[string]*models.User)}
}

func (m *mockStorage) Users() interfaces.UserStore    { return m }
func (m *mockStorage) Ledger() interfaces.LedgerStore { return nil }
func (m *mockStorage) Close() error                   { return nil }

func (m *mockStorage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *mockStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockStorage) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return models.ErrUsernameTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func newTestService(storage *mockStorage) *Service {
	return NewService(storage, common.NewDefaultConfig(), common.NewSilentLogger())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with starting cash", func(t *testing.T) {
		storage := newMockStorage()
		svc := newTestService(storage)

		user, err := svc.Register(ctx, "alice", "s3cret", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.Cash.Equal(decimal.RequireFromString("10000")))
		assert.NotEqual(t, "s3cret", user.PasswordHash)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := newTestService(newMockStorage())

		_, err := svc.Register(ctx, "", "s3cret", "s3cret")
		assert.ErrorIs(t, err, models.ErrInvalidInput)

		_, err = svc.Register(ctx, "alice", "", "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		svc := newTestService(newMockStorage())

		_, err := svc.Register(ctx, "alice", "s3cret", "different")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		storage := newMockStorage()
		svc := newTestService(storage)

		_, err := svc.Register(ctx, "alice", "s3cret", "s3cret")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other", "other")
		assert.ErrorIs(t, err, models.ErrUsernameTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts correct credentials", func(t *testing.T) {
		storage := newMockStorage()
		svc := newTestService(storage)

		registered, err := svc.Register(ctx, "alice", "s3cret", "s3cret")
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		storage := newMockStorage()
		svc := newTestService(storage)

		_, err := svc.Register(ctx, "alice", "s3cret", "s3cret")
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("rejects unknown username", func(t *testing.T) {
		svc := newTestService(newMockStorage())

		_, err := svc.Authenticate(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("rejects blank credentials", func(t *testing.T) {
		svc := newTestService(newMockStorage())

		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("long passwords match after bcrypt truncation", func(t *testing.T) {
		storage := newMockStorage()
		svc := newTestService(storage)

		long := ""
		for len(long) < 100 {
			long += "abcdefghij"
		}
		_, err := svc.Register(ctx, "alice", long, long)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "alice", long)
		assert.NoError(t, err)
	})
}
