package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskfeed/taskfeed-be/internal/storage"
)

// Service orchestrates registration and login on top of the credential
// hasher, the token manager and the user store. All dependencies are
// injected at construction and held for the service's lifetime.
type Service struct {
	store  storage.UserStore
	hasher *Hasher
	tokens *TokenManager
}

// NewService constructs the auth service.
func NewService(store storage.UserStore, hasher *Hasher, tokens *TokenManager) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Register creates a new user account. The password policy runs before any
// storage access. The username pre-check is advisory only; the unique
// constraint on insert is the authoritative guard against concurrent
// registrations of the same name.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	count, err := s.store.CountByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return &UsernameTakenError{Username: username}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := s.store.CreateUser(ctx, username, hash); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return &UsernameTakenError{Username: username}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns a signed token. ErrUserNotFound
// and ErrInvalidPassword stay distinct here so the caller can log which one
// happened before collapsing them for the client.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidPassword
	}

	return s.tokens.Generate(user)
}
