package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SwSsinha/NEXUS/internal/auth"
	"github.com/SwSsinha/NEXUS/internal/service"
)

// BrainHandler serves the share-link surface: the owner's on/off toggle and
// the public read-only view behind a share hash.
type BrainHandler struct {
	brain  *service.BrainService
	logger *slog.Logger
}

func NewBrainHandler(brain *service.BrainService, logger *slog.Logger) *BrainHandler {
	return &BrainHandler{brain: brain, logger: logger}
}

type shareRequest struct {
	Share *bool `json:"share" validate:"required"`
}

// HandleShare toggles sharing for the authenticated user.
//
// HTTP: POST /api/v1/brain/share
// {share: true} returns the user's hash, minting one on first call and
// returning the same hash on every call after. {share: false} revokes it.
func (h *BrainHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req shareRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if *req.Share {
		hash, err := h.brain.EnableSharing(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"hash": hash})
		return
	}

	if err := h.brain.DisableSharing(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sharing disabled"})
}

// HandleSharedView renders someone's collection behind their share hash.
//
// HTTP: GET /api/v1/brain/{shareLink}
// No authentication — the hash itself is the capability. A revoked or
// never-issued hash is a plain 404.
func (h *BrainHandler) HandleSharedView(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "shareLink")
	if hash == "" {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "share link not found"})
		return
	}

	view, err := h.brain.ResolveSharedView(r.Context(), hash)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
