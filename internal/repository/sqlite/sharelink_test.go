package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/SwSsinha/NEXUS/internal/apperror"
	"github.com/SwSsinha/NEXUS/internal/model"
)

func TestShareLinkCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "share@x.com")

	link := &model.ShareLink{UserID: user.ID, Hash: "abcDEF1234567890"}
	if err := db.ShareLinks().Create(context.Background(), link); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if link.CreatedAt.IsZero() {
		t.Error("Create() did not set link.CreatedAt")
	}

	byUser, err := db.ShareLinks().GetByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if byUser.Hash != "abcDEF1234567890" {
		t.Errorf("GetByUser() hash = %q, want %q", byUser.Hash, "abcDEF1234567890")
	}

	byHash, err := db.ShareLinks().GetByHash(context.Background(), "abcDEF1234567890")
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if byHash.UserID != user.ID {
		t.Errorf("GetByHash() userID = %q, want %q", byHash.UserID, user.ID)
	}
}

func TestShareLinkCreate_SecondLinkConflicts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "onelink@x.com")

	first := &model.ShareLink{UserID: user.ID, Hash: "firstHash1234567"}
	if err := db.ShareLinks().Create(context.Background(), first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The PRIMARY KEY on user_id is what holds the at-most-one invariant
	// when two enable-sharing requests race past the existence check.
	second := &model.ShareLink{UserID: user.ID, Hash: "secondHash123456"}
	err := db.ShareLinks().Create(context.Background(), second)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() second link error = %v, want ErrConflict", err)
	}

	got, _ := db.ShareLinks().GetByUser(context.Background(), user.ID)
	if got.Hash != "firstHash1234567" {
		t.Error("losing Create() replaced the existing share link")
	}
}

func TestShareLinkGetByHash_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.ShareLinks().GetByHash(context.Background(), "neverIssuedHash1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByHash() error = %v, want ErrNotFound", err)
	}
}

func TestShareLinkDeleteByUser_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "revoke@x.com")

	link := &model.ShareLink{UserID: user.ID, Hash: "revokable1234567"}
	if err := db.ShareLinks().Create(context.Background(), link); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := db.ShareLinks().DeleteByUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteByUser() error = %v", err)
	}

	// Deleting again is not an error.
	if err := db.ShareLinks().DeleteByUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteByUser() second call error = %v", err)
	}

	_, err := db.ShareLinks().GetByHash(context.Background(), "revokable1234567")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByHash() after revoke error = %v, want ErrNotFound", err)
	}
}
