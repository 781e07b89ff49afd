// Package account handles registration and credential verification.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jayashbyhedger/Finance-Website/internal/common"
	"github.com/Jayashbyhedger/Finance-Website/internal/interfaces"
	"github.com/Jayashbyhedger/Finance-Website/internal/models"
)

const bcryptCost = 10

// Service implements interfaces.AccountService.
type Service struct {
	storage interfaces.StorageManager
	config  *common.Config
	logger  *common.Logger
}

// NewService creates a new account service.
func NewService(storage interfaces.StorageManager, config *common.Config, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// Register creates a new user funded with the configured starting cash.
func (s *Service) Register(ctx context.Context, username, password, confirmation string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrInvalidInput)
	}
	if password != confirmation {
		return nil, fmt.Errorf("%w: passwords do not match", models.ErrInvalidInput)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Cash:         s.config.Ledger.GetStartingCash(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.storage.Users().CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User registered")
	return user, nil
}

// Authenticate verifies a username and password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", models.ErrInvalidInput)
	}

	user, err := s.storage.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(truncatePassword(password))); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// truncatePassword keeps within bcrypt's 72 byte input limit.
func truncatePassword(password string) string {
	if len(password) > 72 {
		return password[:72]
	}
	return password
}

// Ensure Service implements AccountService
var _ interfaces.AccountService = (*Service)(nil)
