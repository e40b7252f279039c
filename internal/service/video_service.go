package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clipstream/backend/internal/cache"
	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/clipstream/backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	media     storage.MediaStore
	counts    *cache.Counts
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, media storage.MediaStore, counts *cache.Counts) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		media:     media,
		counts:    counts,
	}
}

type PublishVideoInput struct {
	Title           string
	Description     string
	DurationSeconds float64
	VideoFile       *Upload
	Thumbnail       *Upload
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *Upload
}

type VideoPage struct {
	Videos     []*domain.Video
	Page       int
	TotalPages int
	Total      int64
}

func (s *VideoService) List(ctx context.Context, opts domain.ListOptions) (*VideoPage, error) {
	opts = opts.Normalize()
	videos, total, err := s.videoRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &VideoPage{
		Videos:     videos,
		Page:       opts.Page,
		TotalPages: totalPages(total, opts.Limit),
		Total:      total,
	}, nil
}

func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, input PublishVideoInput) (*domain.Video, error) {
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidArgument)
	}
	if input.VideoFile == nil || input.Thumbnail == nil {
		return nil, fmt.Errorf("%w: video file and thumbnail are required", domain.ErrInvalidArgument)
	}
	if input.DurationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidArgument)
	}

	videoID := uuid.New()

	videoURL, err := uploadMedia(ctx, s.media, fmt.Sprintf("videos/%s/media", videoID), input.VideoFile)
	if err != nil {
		return nil, err
	}
	thumbnailURL, err := uploadMedia(ctx, s.media, fmt.Sprintf("videos/%s/thumbnail", videoID), input.Thumbnail)
	if err != nil {
		return nil, err
	}

	video := &domain.Video{
		ID:              videoID,
		OwnerID:         ownerID,
		Title:           input.Title,
		Description:     input.Description,
		VideoURL:        videoURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: input.DurationSeconds,
		IsPublished:     true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Get fetches a video and counts the view.
func (s *VideoService) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video", domain.ErrNotFound)
		}
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	video.Views++

	return video, nil
}

func (s *VideoService) Update(ctx context.Context, id, actorID uuid.UUID, input UpdateVideoInput) (*domain.Video, error) {
	if input.Title == nil && input.Description == nil && input.Thumbnail == nil {
		return nil, fmt.Errorf("%w: at least one of title, description or thumbnail is required", domain.ErrInvalidArgument)
	}

	video, err := s.ownedVideo(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if input.Thumbnail != nil {
		oldURL := video.ThumbnailURL
		newURL, err := uploadMedia(ctx, s.media, fmt.Sprintf("videos/%s/thumbnail", video.ID), input.Thumbnail)
		if err != nil {
			return nil, err
		}
		video.ThumbnailURL = newURL
		removeMedia(ctx, s.media, oldURL)
	}

	if input.Title != nil && *input.Title != "" {
		video.Title = *input.Title
	}
	if input.Description != nil && *input.Description != "" {
		video.Description = *input.Description
	}
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Delete removes a video together with its comments and all related
// likes, then drops any memoized like count for it.
func (s *VideoService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	video, err := s.ownedVideo(ctx, id, actorID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, video.ID); err != nil {
		return err
	}

	s.counts.Invalidate(domain.LikeTargetVideo, video.ID)

	removeMedia(ctx, s.media, video.VideoURL)
	removeMedia(ctx, s.media, video.ThumbnailURL)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, actorID uuid.UUID) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, id, actorID uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video", domain.ErrNotFound)
		}
		return nil, err
	}
	if video.OwnerID != actorID {
		return nil, fmt.Errorf("%w: you do not own this video", domain.ErrForbidden)
	}
	return video, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
