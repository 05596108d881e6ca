// Package service contains the business logic layer: it sits between the
// HTTP handlers and the repositories, owns the business rules, and knows
// nothing about HTTP.
//
//	Handler (HTTP)  →  Service (rules)  →  Repository (storage)
//	                ↘  auth.TokenService / auth.PasswordService
//
// Services receive repository interfaces, never concrete sqlite types, so
// tests run against in-memory fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SwSsinha/NEXUS/internal/apperror"
	"github.com/SwSsinha/NEXUS/internal/auth"
	"github.com/SwSsinha/NEXUS/internal/model"
	"github.com/SwSsinha/NEXUS/internal/repository"
)

// incorrectCredentials is the one message every signin failure shares.
// An unknown email and a wrong password must be indistinguishable, or the
// signin endpoint doubles as an account-enumeration oracle.
const incorrectCredentials = "Incorrect credentials"

// UserService handles signup, signin, and profile management.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

// NewUserService creates a UserService with all required dependencies.
func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new account. The email is normalized (trimmed,
// lowercased) before it is stored so "A@X.com" and "a@x.com" are one
// account. A duplicate email surfaces as a Conflict from the repository —
// the store's uniqueness constraint is the authority, not a prior read.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, error) {
	email = normalizeEmail(email)

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/user: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/user: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))

	return user, nil
}

// Authenticate checks an email/password pair and returns a signed bearer
// token. Every failure path returns the identical Forbidden error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", apperror.Forbidden(incorrectCredentials)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Forbidden(incorrectCredentials)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/user: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user signed in", slog.String("userID", user.ID))

	return token, nil
}

// GetProfile returns the account behind an authenticated user ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/user: fetching user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateProfile sets the user's display name.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*model.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID,
		strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if err != nil {
		return nil, fmt.Errorf("service/user: updating profile for user %s: %w", userID, err)
	}

	s.logger.Info("profile updated", slog.String("userID", userID))

	return user, nil
}

// ChangePassword replaces the user's password after re-verifying the
// current one. The current-password check is not optional — a bearer token
// alone must never be enough to take over an account's credentials.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("service/user: fetching user %s: %w", userID, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, currentPassword); err != nil {
		return apperror.Forbidden(incorrectCredentials)
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("service/user: hashing new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("service/user: updating password for user %s: %w", userID, err)
	}

	s.logger.Info("password changed", slog.String("userID", userID))

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
