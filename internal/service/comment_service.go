package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clipstream/backend/internal/cache"
	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	counts      *cache.Counts
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, counts *cache.Counts) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		counts:      counts,
	}
}

type CommentPage struct {
	Comments   []*domain.Comment
	Page       int
	TotalPages int
	Total      int64
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID uuid.UUID, opts domain.ListOptions) (*CommentPage, error) {
	opts = opts.Normalize()
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, opts)
	if err != nil {
		return nil, err
	}
	return &CommentPage{
		Comments:   comments,
		Page:       opts.Page,
		TotalPages: totalPages(total, opts.Limit),
		Total:      total,
	}, nil
}

func (s *CommentService) Add(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", domain.ErrInvalidArgument)
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video", domain.ErrNotFound)
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, id, actorID uuid.UUID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: updated content is required", domain.ErrInvalidArgument)
	}

	comment, err := s.ownedComment(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	comment, err := s.ownedComment(ctx, id, actorID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.counts.Invalidate(domain.LikeTargetComment, comment.ID)
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, id, actorID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment", domain.ErrNotFound)
		}
		return nil, err
	}
	if comment.OwnerID != actorID {
		return nil, fmt.Errorf("%w: you can only modify your own comments", domain.ErrForbidden)
	}
	return comment, nil
}
