package handler

import (
	"log/slog"
	"net/http"

	"github.com/SwSsinha/NEXUS/internal/auth"
	"github.com/SwSsinha/NEXUS/internal/service"
)

// ContentHandler serves the authenticated user's saved links.
type ContentHandler struct {
	contents *service.ContentService
	logger   *slog.Logger
}

func NewContentHandler(contents *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{contents: contents, logger: logger}
}

type addContentRequest struct {
	Link        string   `json:"link" validate:"required,url"`
	Type        string   `json:"type" validate:"required,max=50"`
	Title       string   `json:"title" validate:"max=500"`
	Description string   `json:"description" validate:"max=5000"`
	Tags        []string `json:"tags" validate:"dive,max=100"`
}

// HandleAdd saves a new link for the authenticated user.
//
// HTTP: POST /api/v1/content
func (h *ContentHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req addContentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	content, err := h.contents.Add(r.Context(), userID, req.Link, req.Type, req.Title, req.Description, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Content added",
		"content": content,
	})
}

// HandleList returns every item the authenticated user has saved.
//
// HTTP: GET /api/v1/content
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	contents, err := h.contents.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"content": contents})
}

type deleteContentRequest struct {
	ContentID string `json:"contentId" validate:"required"`
}

// HandleDelete removes one of the authenticated user's items.
//
// HTTP: DELETE /api/v1/content
// The id travels in the body, and deletion is scoped to the caller — an id
// belonging to someone else 404s exactly like an id that never existed.
func (h *ContentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	var req deleteContentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.contents.Delete(r.Context(), req.ContentID, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Content deleted"})
}
