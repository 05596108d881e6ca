package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SwSsinha/NEXUS/internal/model"
	"github.com/SwSsinha/NEXUS/internal/repository"
	"github.com/SwSsinha/NEXUS/internal/scraper"
)

// MetadataFetcher is the scraping capability ContentService depends on.
// The concrete implementation lives in internal/scraper; tests supply a
// stub.
type MetadataFetcher interface {
	Fetch(ctx context.Context, link string) scraper.Metadata
}

// ContentService handles saving, listing, and deleting bookmarked links.
type ContentService struct {
	contents repository.ContentRepository
	metadata MetadataFetcher
	logger   *slog.Logger
}

// NewContentService creates a ContentService. metadata may be nil, in which
// case items are saved without scraped metadata.
func NewContentService(
	contents repository.ContentRepository,
	metadata MetadataFetcher,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		contents: contents,
		metadata: metadata,
		logger:   logger,
	}
}

// Add saves a new link for userID.
//
// The page's own metadata is fetched best-effort and stored alongside the
// user-supplied fields; the user's title wins, with the scraped title as a
// fallback when the user left it blank. A failed scrape never fails the
// save. Input shape validation (is the link a URL, is the type present)
// happened at the handler; this layer persists what it is given.
func (s *ContentService) Add(
	ctx context.Context,
	userID, link, contentType, title, description string,
	tags []string,
) (*model.Content, error) {
	var meta scraper.Metadata
	if s.metadata != nil {
		meta = s.metadata.Fetch(ctx, link)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = meta.Title
	}

	content := &model.Content{
		UserID:             userID,
		Link:               link,
		Type:               contentType,
		Title:              title,
		Description:        strings.TrimSpace(description),
		Tags:               tags,
		ScrapedTitle:       meta.Title,
		ScrapedDescription: meta.Description,
		ScrapedImage:       meta.Image,
	}

	if err := s.contents.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("service/content: creating content: %w", err)
	}

	s.logger.Info("content added",
		slog.String("userID", userID),
		slog.String("contentID", content.ID),
		slog.String("type", contentType),
	)

	return content, nil
}

// List returns the caller's entire collection.
func (s *ContentService) List(ctx context.Context, userID string) ([]model.Content, error) {
	items, err := s.contents.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/content: listing content for user %s: %w", userID, err)
	}
	return items, nil
}

// Delete removes one item, owner-scoped. The repository reports NotFound
// for both a wrong ID and someone else's item; that deliberately stays
// undistinguished all the way to the response.
func (s *ContentService) Delete(ctx context.Context, contentID, userID string) error {
	if err := s.contents.Delete(ctx, contentID, userID); err != nil {
		return fmt.Errorf("service/content: deleting content %s: %w", contentID, err)
	}

	s.logger.Info("content deleted",
		slog.String("userID", userID),
		slog.String("contentID", contentID),
	)

	return nil
}
