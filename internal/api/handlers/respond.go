package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// envelope is the uniform response shape. Every endpoint, success or
// failure, answers with one of these.
type envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors,omitempty"`
}

func respond(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		StatusCode: status,
		Message:    message,
		Success:    false,
	})
}

// writeServiceError maps domain sentinels onto HTTP statuses; anything
// unrecognized is a 500 and gets logged with its call site.
func writeServiceError(w http.ResponseWriter, component string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ERROR [%s] %v", component, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.Join(domain.ErrInvalidArgument, err)
	}
	return id, nil
}

// parseListOptions reads the shared pagination and filter query params.
func parseListOptions(r *http.Request) domain.ListOptions {
	q := r.URL.Query()

	opts := domain.ListOptions{
		Query:  q.Get("query"),
		SortBy: q.Get("sortBy"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = limit
	}
	if q.Get("sortType") == "desc" {
		opts.SortDesc = true
	}
	if q.Get("random") == "true" {
		opts.Random = true
	}
	if ownerID, err := uuid.Parse(q.Get("userId")); err == nil {
		opts.OwnerID = &ownerID
	}
	return opts.Normalize()
}

// formUpload pulls a named file out of an already-parsed multipart
// form. A missing file is not an error; the caller decides whether the
// field is required.
func formUpload(r *http.Request, field string) (*service.Upload, *multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, errors.Join(domain.ErrInvalidArgument, err)
	}

	return &service.Upload{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, &file, nil
}

func closeUploads(files ...*multipart.File) {
	for _, f := range files {
		if f != nil {
			(*f).Close()
		}
	}
}
