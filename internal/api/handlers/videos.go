package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/service"
)

type VideoHandler struct {
	videoService *service.VideoService
	userService  *service.UserService
}

func NewVideoHandler(videoService *service.VideoService, userService *service.UserService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		userService:  userService,
	}
}

type VideoPageResponse struct {
	Videos     interface{} `json:"videos"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Total      int64       `json:"total"`
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.videoService.List(r.Context(), parseListOptions(r))
	if err != nil {
		writeServiceError(w, "VideoHandler.List", err)
		return
	}

	respond(w, http.StatusOK, VideoPageResponse{
		Videos:     page.Videos,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
	}, "Videos fetched")
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	videoFile, vf, err := formUpload(r, "videoFile")
	if err != nil {
		writeServiceError(w, "VideoHandler.Publish", err)
		return
	}
	thumbnail, tf, err := formUpload(r, "thumbnail")
	if err != nil {
		closeUploads(vf)
		writeServiceError(w, "VideoHandler.Publish", err)
		return
	}
	defer closeUploads(vf, tf)

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	video, err := h.videoService.Publish(r.Context(), userID, service.PublishVideoInput{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		DurationSeconds: duration,
		VideoFile:       videoFile,
		Thumbnail:       thumbnail,
	})
	if err != nil {
		writeServiceError(w, "VideoHandler.Publish", err)
		return
	}

	respond(w, http.StatusCreated, video, "Video published successfully")
}

// Get fetches a video, counts the view, and records it in the caller's
// watch history when the caller is authenticated.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "VideoHandler.Get", err)
		return
	}

	video, err := h.videoService.Get(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, "VideoHandler.Get", err)
		return
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		if err := h.userService.RecordWatch(r.Context(), userID, video.ID); err != nil {
			log.Printf("ERROR [VideoHandler.Get] failed to record watch history: %v", err)
		}
	}

	respond(w, http.StatusOK, video, "Video fetched")
}

type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "VideoHandler.Update", err)
		return
	}

	input := service.UpdateVideoInput{}

	// Thumbnail replacement rides in as multipart; plain metadata edits
	// may be JSON.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		thumbnail, tf, err := formUpload(r, "thumbnail")
		if err != nil {
			writeServiceError(w, "VideoHandler.Update", err)
			return
		}
		defer closeUploads(tf)
		input.Thumbnail = thumbnail
		if title := r.FormValue("title"); title != "" {
			input.Title = &title
		}
		if description := r.FormValue("description"); description != "" {
			input.Description = &description
		}
	} else {
		var req UpdateVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		input.Title = req.Title
		input.Description = req.Description
	}

	video, err := h.videoService.Update(r.Context(), videoID, userID, input)
	if err != nil {
		writeServiceError(w, "VideoHandler.Update", err)
		return
	}

	respond(w, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "VideoHandler.Delete", err)
		return
	}

	if err := h.videoService.Delete(r.Context(), videoID, userID); err != nil {
		writeServiceError(w, "VideoHandler.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		writeServiceError(w, "VideoHandler.TogglePublish", err)
		return
	}

	video, err := h.videoService.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		writeServiceError(w, "VideoHandler.TogglePublish", err)
		return
	}

	respond(w, http.StatusOK, video, "Publish status toggled")
}
