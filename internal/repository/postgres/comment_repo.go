package postgres

import (
	"context"

	"github.com/clipstream/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("target_kind = ? AND target_id = ?", domain.LikeTargetComment, id).
			Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Comment{}, "id = ?", id).Error
	})
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, opts domain.ListOptions) ([]*domain.Comment, int64, error) {
	opts = opts.Normalize()

	query := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*domain.Comment
	err := query.
		Select("comments.*, (SELECT COUNT(*) FROM likes WHERE likes.target_kind = ? AND likes.target_id = comments.id) AS like_count", domain.LikeTargetComment).
		Preload("Owner").
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
