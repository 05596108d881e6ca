package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SwSsinha/NEXUS/internal/apperror"
	"github.com/SwSsinha/NEXUS/internal/model"
	"github.com/SwSsinha/NEXUS/internal/repository"
	"github.com/SwSsinha/NEXUS/internal/token"
)

// BrainService manages the public share link over a user's collection.
type BrainService struct {
	links    repository.ShareLinkRepository
	users    repository.UserRepository
	contents repository.ContentRepository
	logger   *slog.Logger
}

// NewBrainService creates a BrainService with all required dependencies.
func NewBrainService(
	links repository.ShareLinkRepository,
	users repository.UserRepository,
	contents repository.ContentRepository,
	logger *slog.Logger,
) *BrainService {
	return &BrainService{
		links:    links,
		users:    users,
		contents: contents,
		logger:   logger,
	}
}

// SharedView is a read-only public rendering of one user's collection.
type SharedView struct {
	Username string          `json:"username"`
	Content  []model.Content `json:"content"`
}

// EnableSharing returns the user's share hash, creating one if none exists.
//
// Get-or-create: calling it twice returns the same hash; the hash only
// changes after DisableSharing. Two racing calls can both pass the
// existence check — the repository's uniqueness constraint fails the
// second insert, and the loser re-reads and returns the winner's hash.
func (s *BrainService) EnableSharing(ctx context.Context, userID string) (string, error) {
	existing, err := s.links.GetByUser(ctx, userID)
	if err == nil {
		return existing.Hash, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return "", fmt.Errorf("service/brain: looking up share link for user %s: %w", userID, err)
	}

	hash, err := token.NewShareHash()
	if err != nil {
		return "", fmt.Errorf("service/brain: %w", err)
	}

	link := &model.ShareLink{UserID: userID, Hash: hash}
	if err := s.links.Create(ctx, link); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the race — another request created the link first.
			winner, getErr := s.links.GetByUser(ctx, userID)
			if getErr != nil {
				return "", fmt.Errorf("service/brain: re-reading share link for user %s: %w", userID, getErr)
			}
			return winner.Hash, nil
		}
		return "", fmt.Errorf("service/brain: creating share link for user %s: %w", userID, err)
	}

	s.logger.Info("sharing enabled", slog.String("userID", userID))

	return hash, nil
}

// DisableSharing revokes the user's share link. Idempotent — disabling
// sharing that was never enabled succeeds quietly.
func (s *BrainService) DisableSharing(ctx context.Context, userID string) error {
	if err := s.links.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("service/brain: deleting share link for user %s: %w", userID, err)
	}

	s.logger.Info("sharing disabled", slog.String("userID", userID))

	return nil
}

// ResolveSharedView resolves a public hash to the owner's display name and
// their complete, current collection. The list is fetched live on every
// call — additions and deletions after the link was created show through
// immediately.
//
// Every failure is the same generic NotFound: a revoked hash, a hash that
// never existed, and a dangling owner all look identical from the outside.
func (s *BrainService) ResolveSharedView(ctx context.Context, hash string) (*SharedView, error) {
	link, err := s.links.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFoundMessage("share link not found")
		}
		return nil, fmt.Errorf("service/brain: resolving share hash: %w", err)
	}

	owner, err := s.users.GetByID(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFoundMessage("share link not found")
		}
		return nil, fmt.Errorf("service/brain: fetching owner for share hash: %w", err)
	}

	items, err := s.contents.ListByUser(ctx, link.UserID)
	if err != nil {
		return nil, fmt.Errorf("service/brain: listing shared content: %w", err)
	}

	return &SharedView{
		Username: owner.DisplayName(),
		Content:  items,
	}, nil
}
