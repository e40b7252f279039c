package handlers

import (
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/service"
)

type LikeHandler struct {
	engagementService *service.EngagementService
}

func NewLikeHandler(engagementService *service.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

type ToggleLikeResponse struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetVideo, "videoId")
}

func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetComment, "commentId")
}

func (h *LikeHandler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetTweet, "tweetId")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind domain.LikeTarget, param string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID, err := uuidParam(r, param)
	if err != nil {
		writeServiceError(w, "LikeHandler.toggle", err)
		return
	}

	result, err := h.engagementService.Toggle(r.Context(), kind, targetID, userID)
	if err != nil {
		writeServiceError(w, "LikeHandler.toggle", err)
		return
	}

	respond(w, http.StatusOK, ToggleLikeResponse{
		Liked:      result.Liked,
		TotalLikes: result.TotalLikes,
	}, "Like toggled")
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videos, err := h.engagementService.LikedVideos(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "LikeHandler.LikedVideos", err)
		return
	}

	respond(w, http.StatusOK, videos, "Liked videos fetched")
}
