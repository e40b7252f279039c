package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content"`
}

type TweetPageResponse struct {
	Tweets     interface{} `json:"tweets"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Total      int64       `json:"total"`
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), userID, req.Content)
	if err != nil {
		writeServiceError(w, "TweetHandler.Create", err)
		return
	}

	respond(w, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuidParam(r, "userId")
	if err != nil {
		writeServiceError(w, "TweetHandler.ListByUser", err)
		return
	}

	page, err := h.tweetService.ListByUser(r.Context(), ownerID, parseListOptions(r))
	if err != nil {
		writeServiceError(w, "TweetHandler.ListByUser", err)
		return
	}

	respond(w, http.StatusOK, TweetPageResponse{
		Tweets:     page.Tweets,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}, "Tweets fetched")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tweetID, err := uuidParam(r, "tweetId")
	if err != nil {
		writeServiceError(w, "TweetHandler.Update", err)
		return
	}

	var req TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tweet, err := h.tweetService.Update(r.Context(), tweetID, userID, req.Content)
	if err != nil {
		writeServiceError(w, "TweetHandler.Update", err)
		return
	}

	respond(w, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tweetID, err := uuidParam(r, "tweetId")
	if err != nil {
		writeServiceError(w, "TweetHandler.Delete", err)
		return
	}

	if err := h.tweetService.Delete(r.Context(), tweetID, userID); err != nil {
		writeServiceError(w, "TweetHandler.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Tweet deleted successfully")
}
