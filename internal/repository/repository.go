// Package repository declares the storage interfaces the service layer
// depends on. The sqlite subpackage provides the implementation; services
// never import it directly.
package repository

import (
	"context"

	"github.com/SwSsinha/NEXUS/internal/model"
)

// UserRepository stores user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns an error wrapping
	// apperror.ErrConflict when the email is already registered — duplicate
	// signups must fail, never overwrite.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail returns the user with the given login email, or an error
	// wrapping apperror.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID returns the user with the given internal ID, or an error
	// wrapping apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UpdateProfile sets the user's first and last name and returns the
	// updated record.
	UpdateProfile(ctx context.Context, id, firstName, lastName string) (*model.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ContentRepository stores saved links. Items are owner-scoped on every
// read and delete; there is no update operation.
type ContentRepository interface {
	Create(ctx context.Context, content *model.Content) error

	// ListByUser returns all items owned by userID, oldest first.
	ListByUser(ctx context.Context, userID string) ([]model.Content, error)

	// Delete removes the item only when BOTH contentID and userID match.
	// When nothing matches — wrong ID or wrong owner, deliberately
	// indistinguishable — it returns an error wrapping apperror.ErrNotFound.
	Delete(ctx context.Context, contentID, userID string) error
}

// ShareLinkRepository stores the public share hash per user.
type ShareLinkRepository interface {
	// GetByUser returns the user's share link, or an error wrapping
	// apperror.ErrNotFound when sharing is not enabled.
	GetByUser(ctx context.Context, userID string) (*model.ShareLink, error)

	// GetByHash resolves a public hash to its share link, or an error
	// wrapping apperror.ErrNotFound.
	GetByHash(ctx context.Context, hash string) (*model.ShareLink, error)

	// Create persists a new share link. Returns an error wrapping
	// apperror.ErrConflict when the user already has one — the storage
	// constraint, not the caller's earlier read, is what enforces
	// at-most-one-per-user under concurrency.
	Create(ctx context.Context, link *model.ShareLink) error

	// DeleteByUser removes the user's share link. Idempotent: deleting a
	// link that does not exist is not an error.
	DeleteByUser(ctx context.Context, userID string) error
}
