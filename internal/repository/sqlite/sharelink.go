package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SwSsinha/NEXUS/internal/apperror"
	"github.com/SwSsinha/NEXUS/internal/model"
	"github.com/SwSsinha/NEXUS/internal/repository"
)

// compile-time check that *ShareLinkRepo implements repository.ShareLinkRepository
var _ repository.ShareLinkRepository = (*ShareLinkRepo)(nil)

// ShareLinkRepo implements repository.ShareLinkRepository on the
// share_links table.
type ShareLinkRepo struct {
	db *DB
}

// ShareLinks returns the share link repository backed by this database.
func (db *DB) ShareLinks() *ShareLinkRepo {
	return &ShareLinkRepo{db: db}
}

// GetByUser returns the user's share link, NotFound when sharing is off.
func (r *ShareLinkRepo) GetByUser(ctx context.Context, userID string) (*model.ShareLink, error) {
	return r.getShareLink(ctx, `WHERE user_id = ?`, userID)
}

// GetByHash resolves a public hash. The NotFound message is the same
// whether the hash was revoked or never existed.
func (r *ShareLinkRepo) GetByHash(ctx context.Context, hash string) (*model.ShareLink, error) {
	return r.getShareLink(ctx, `WHERE hash = ?`, hash)
}

func (r *ShareLinkRepo) getShareLink(ctx context.Context, where string, arg any) (*model.ShareLink, error) {
	var link model.ShareLink

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT user_id, hash, created_at FROM share_links `+where,
		arg,
	).Scan(&link.UserID, &link.Hash, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundMessage("share link not found")
		}
		return nil, fmt.Errorf("sqlite: getting share link: %w", err)
	}

	return &link, nil
}

// Create persists a new share link. The PRIMARY KEY on user_id turns the
// losing side of a get-or-create race into a Conflict instead of a second
// link; the caller re-reads and returns the winner's hash.
func (r *ShareLinkRepo) Create(ctx context.Context, link *model.ShareLink) error {
	link.CreatedAt = time.Now()

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO share_links (user_id, hash, created_at) VALUES (?, ?, ?)`,
		link.UserID, link.Hash, link.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("share link already exists for this user")
		}
		return fmt.Errorf("sqlite: creating share link: %w", err)
	}

	return nil
}

// DeleteByUser removes the user's share link. Deleting a nonexistent link
// is a no-op, which is what makes disabling sharing idempotent.
func (r *ShareLinkRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM share_links WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting share link for user %s: %w", userID, err)
	}
	return nil
}
