package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateAccount(r.Context(), userID, service.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		writeServiceError(w, "UserHandler.UpdateAccount", err)
		return
	}

	respond(w, http.StatusOK, user.Public(), "Account updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage")
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	upload, file, err := formUpload(r, field)
	if err != nil {
		writeServiceError(w, "UserHandler.updateImage", err)
		return
	}
	defer closeUploads(file)

	switch field {
	case "avatar":
		updated, err := h.userService.UpdateAvatar(r.Context(), userID, upload)
		if err != nil {
			writeServiceError(w, "UserHandler.UpdateAvatar", err)
			return
		}
		respond(w, http.StatusOK, updated.Public(), "Avatar updated successfully")
	default:
		updated, err := h.userService.UpdateCoverImage(r.Context(), userID, upload)
		if err != nil {
			writeServiceError(w, "UserHandler.UpdateCoverImage", err)
			return
		}
		respond(w, http.StatusOK, updated.Public(), "Cover image updated successfully")
	}
}

// Channel serves a public channel page by username. IsSubscribed is
// resolved against the caller when one is authenticated.
func (h *UserHandler) Channel(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var viewerID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		viewerID = &id
	}

	profile, err := h.userService.ChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		writeServiceError(w, "UserHandler.Channel", err)
		return
	}

	respond(w, http.StatusOK, profile, "Channel profile fetched")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videos, err := h.userService.WatchHistory(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "UserHandler.WatchHistory", err)
		return
	}

	respond(w, http.StatusOK, videos, "Watch history fetched")
}
