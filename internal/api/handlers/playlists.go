package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, "PlaylistHandler.Create", err)
		return
	}

	respond(w, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.Get", err)
		return
	}

	view, err := h.playlistService.Get(r.Context(), playlistID)
	if err != nil {
		writeServiceError(w, "PlaylistHandler.Get", err)
		return
	}

	respond(w, http.StatusOK, view, "Playlist fetched")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuidParam(r, "userId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.ListByUser", err)
		return
	}

	views, err := h.playlistService.ListByUser(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, "PlaylistHandler.ListByUser", err)
		return
	}

	respond(w, http.StatusOK, views, "Playlists fetched")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.AddVideo", err)
		return
	}
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.AddVideo", err)
		return
	}

	playlist, err := h.playlistService.AddVideo(r.Context(), playlistID, videoID, userID)
	if err != nil {
		writeServiceError(w, "PlaylistHandler.AddVideo", err)
		return
	}

	respond(w, http.StatusOK, playlist, "Video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.RemoveVideo", err)
		return
	}
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.RemoveVideo", err)
		return
	}

	playlist, err := h.playlistService.RemoveVideo(r.Context(), playlistID, videoID, userID)
	if err != nil {
		writeServiceError(w, "PlaylistHandler.RemoveVideo", err)
		return
	}

	respond(w, http.StatusOK, playlist, "Video removed from playlist")
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.Update", err)
		return
	}

	var req UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), playlistID, userID, service.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, "PlaylistHandler.Update", err)
		return
	}

	respond(w, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		writeServiceError(w, "PlaylistHandler.Delete", err)
		return
	}

	if err := h.playlistService.Delete(r.Context(), playlistID, userID); err != nil {
		writeServiceError(w, "PlaylistHandler.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Playlist deleted successfully")
}
