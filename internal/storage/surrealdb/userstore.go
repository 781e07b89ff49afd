package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

// userRecord is the storage shape of a user. Cash crosses the boundary as a
// decimal string so CBOR round-tripping stays exact.
type userRecord struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Cash         string    `json:"cash"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserRecord(u *models.User) *userRecord {
	return &userRecord{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Cash:         u.Cash.String(),
		CreatedAt:    u.CreatedAt,
	}
}

func fromUserRecord(r *userRecord) (*models.User, error) {
	cash, err := decimal.NewFromString(r.Cash)
	if err != nil {
		return nil, fmt.Errorf("invalid stored cash %q for user %s: %w", r.Cash, r.UserID, err)
	}
	return &models.User{
		ID:           r.UserID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Cash:         cash,
		CreatedAt:    r.CreatedAt,
	}, nil
}

type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	record, err := surrealdb.Select[userRecord](ctx, s.db, surrealmodels.NewRecordID("user", userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if record == nil || record.UserID == "" {
		return nil, models.ErrUserNotFound
	}
	return fromUserRecord(record)
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	sql := "SELECT * FROM user WHERE username = $username LIMIT 1"
	vars := map[string]any{"username": username}

	results, err := surrealdb.Query[[]userRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by username: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, models.ErrUserNotFound
	}
	return fromUserRecord(&(*results)[0].Result[0])
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	sql := "CREATE type::record('user', $id) CONTENT $user"
	vars := map[string]any{"id": user.ID, "user": toUserRecord(user)}

	if _, err := surrealdb.Query[[]userRecord](ctx, s.db, sql, vars); err != nil {
		if isUniqueIndexError(err) {
			return models.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *UserStore) Close() error {
	return nil
}
