package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/SwSsinha/NEXUS/internal/apperror"
	"github.com/SwSsinha/NEXUS/internal/model"
	"github.com/SwSsinha/NEXUS/internal/repository"
)

// compile-time check that *ContentRepo implements repository.ContentRepository
var _ repository.ContentRepository = (*ContentRepo)(nil)

// ContentRepo implements repository.ContentRepository on the contents table.
type ContentRepo struct {
	db *DB
}

// Contents returns the content repository backed by this database.
func (db *DB) Contents() *ContentRepo {
	return &ContentRepo{db: db}
}

// Create inserts a new content item. ID and creation time are generated
// here and written back into the caller's struct.
func (r *ContentRepo) Create(ctx context.Context, content *model.Content) error {
	content.ID = xid.New().String()
	content.CreatedAt = time.Now()

	tags, err := encodeTags(content.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding tags: %w", err)
	}

	_, err = r.db.conn.ExecContext(ctx,
		`INSERT INTO contents
		   (id, user_id, link, type, title, description, tags,
		    scraped_title, scraped_description, scraped_image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		content.ID,
		content.UserID,
		content.Link,
		content.Type,
		content.Title,
		content.Description,
		tags,
		content.ScrapedTitle,
		content.ScrapedDescription,
		content.ScrapedImage,
		content.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating content: %w", err)
	}

	return nil
}

// ListByUser returns every item owned by userID, oldest first (xid IDs sort
// by creation time, but created_at is the explicit contract).
func (r *ContentRepo) ListByUser(ctx context.Context, userID string) ([]model.Content, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, link, type, title, description, tags,
		        scraped_title, scraped_description, scraped_image, created_at
		 FROM contents
		 WHERE user_id = ?
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing content for user %s: %w", userID, err)
	}
	defer rows.Close()

	// Non-nil so an empty collection serializes as [] rather than null.
	items := []model.Content{}
	for rows.Next() {
		var c model.Content
		var tags string
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Link,
			&c.Type,
			&c.Title,
			&c.Description,
			&tags,
			&c.ScrapedTitle,
			&c.ScrapedDescription,
			&c.ScrapedImage,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning content row: %w", err)
		}
		if c.Tags, err = decodeTags(tags); err != nil {
			return nil, fmt.Errorf("sqlite: decoding tags for content %s: %w", c.ID, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating content rows: %w", err)
	}

	return items, nil
}

// Delete removes an item only when both the content ID and the owner match.
// Zero matched rows — nonexistent ID or someone else's item — collapse into
// one NotFound, so ownership can't be probed through error differences.
func (r *ContentRepo) Delete(ctx context.Context, contentID, userID string) error {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM contents WHERE id = ? AND user_id = ?`,
		contentID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting content %s: %w", contentID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting content %s: %w", contentID, err)
	}
	if affected == 0 {
		return apperror.NotFoundMessage("content not found")
	}

	return nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
