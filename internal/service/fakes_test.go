package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SwSsinha/NEXUS/internal/apperror"
	"github.com/SwSsinha/NEXUS/internal/auth"
	"github.com/SwSsinha/NEXUS/internal/model"
	"github.com/SwSsinha/NEXUS/internal/scraper"
)

// In-memory fakes, not a mock framework — you can read exactly what each
// one does, and they enforce the same error contracts as the sqlite
// implementations.

// ---------------------------------------------------------------------
// fakeUserRepo
// ---------------------------------------------------------------------

type fakeUserRepo struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
	nextID  int

	// set to simulate a storage failure
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return apperror.Conflict("user already exists with this email")
	}
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	f.byID[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFoundMessage("user not found")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFoundMessage("user not found")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFoundMessage("user not found")
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return apperror.NotFoundMessage("user not found")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// ---------------------------------------------------------------------
// fakeContentRepo
// ---------------------------------------------------------------------

type fakeContentRepo struct {
	items  []model.Content
	nextID int

	createErr error
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{nextID: 1}
}

func (f *fakeContentRepo) Create(ctx context.Context, content *model.Content) error {
	if f.createErr != nil {
		return f.createErr
	}
	content.ID = fmt.Sprintf("content-%d", f.nextID)
	f.nextID++
	content.CreatedAt = time.Now()
	f.items = append(f.items, *content)
	return nil
}

func (f *fakeContentRepo) ListByUser(ctx context.Context, userID string) ([]model.Content, error) {
	out := []model.Content{}
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) Delete(ctx context.Context, contentID, userID string) error {
	for i, item := range f.items {
		if item.ID == contentID && item.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundMessage("content not found")
}

// ---------------------------------------------------------------------
// fakeShareLinkRepo
// ---------------------------------------------------------------------

type fakeShareLinkRepo struct {
	byUser map[string]*model.ShareLink
}

func newFakeShareLinkRepo() *fakeShareLinkRepo {
	return &fakeShareLinkRepo{byUser: make(map[string]*model.ShareLink)}
}

func (f *fakeShareLinkRepo) GetByUser(ctx context.Context, userID string) (*model.ShareLink, error) {
	link, ok := f.byUser[userID]
	if !ok {
		return nil, apperror.NotFoundMessage("share link not found")
	}
	copied := *link
	return &copied, nil
}

func (f *fakeShareLinkRepo) GetByHash(ctx context.Context, hash string) (*model.ShareLink, error) {
	for _, link := range f.byUser {
		if link.Hash == hash {
			copied := *link
			return &copied, nil
		}
	}
	return nil, apperror.NotFoundMessage("share link not found")
}

func (f *fakeShareLinkRepo) Create(ctx context.Context, link *model.ShareLink) error {
	if _, exists := f.byUser[link.UserID]; exists {
		return apperror.Conflict("share link already exists for this user")
	}
	link.CreatedAt = time.Now()
	stored := *link
	f.byUser[link.UserID] = &stored
	return nil
}

func (f *fakeShareLinkRepo) DeleteByUser(ctx context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

// ---------------------------------------------------------------------
// fakeMetadataFetcher
// ---------------------------------------------------------------------

type fakeMetadataFetcher struct {
	meta    scraper.Metadata
	fetched []string // links Fetch was called with
}

func (f *fakeMetadataFetcher) Fetch(ctx context.Context, link string) scraper.Metadata {
	f.fetched = append(f.fetched, link)
	return f.meta
}

// ---------------------------------------------------------------------
// shared helpers
// ---------------------------------------------------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func newTestUserService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()
	// bcrypt cost 4 keeps the suite fast
	return NewUserService(repo, auth.NewPasswordServiceForTest(4), newTestTokenService(t), testLogger())
}
