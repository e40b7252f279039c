package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentPageResponse struct {
	Comments   interface{} `json:"comments"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Total      int64       `json:"total"`
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "CommentHandler.ListByVideo", err)
		return
	}

	page, err := h.commentService.ListByVideo(r.Context(), videoID, parseListOptions(r))
	if err != nil {
		writeServiceError(w, "CommentHandler.ListByVideo", err)
		return
	}

	respond(w, http.StatusOK, CommentPageResponse{
		Comments:   page.Comments,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}, "Comments fetched")
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "CommentHandler.Add", err)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.Add(r.Context(), videoID, userID, req.Content)
	if err != nil {
		writeServiceError(w, "CommentHandler.Add", err)
		return
	}

	respond(w, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, err := uuidParam(r, "commentId")
	if err != nil {
		writeServiceError(w, "CommentHandler.Update", err)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		writeServiceError(w, "CommentHandler.Update", err)
		return
	}

	respond(w, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, err := uuidParam(r, "commentId")
	if err != nil {
		writeServiceError(w, "CommentHandler.Delete", err)
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		writeServiceError(w, "CommentHandler.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Comment deleted successfully")
}
