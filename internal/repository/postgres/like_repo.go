package postgres

import (
	"context"

	"github.com/clipstream/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Insert(ctx context.Context, like *domain.Like) (bool, error) {
	// ON CONFLICT DO NOTHING absorbs the race where two toggles both
	// observed "absent" and both insert.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Remove(ctx context.Context, kind domain.LikeTarget, targetID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ? AND liked_by = ?", kind, targetID, userID).
		Delete(&domain.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, kind domain.LikeTarget, targetID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("target_kind = ? AND target_id = ? AND liked_by = ?", kind, targetID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) CountByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountVideoLikesByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("target_kind = ? AND target_id IN (?)",
			domain.LikeTargetVideo,
			r.db.Model(&domain.Video{}).Select("id").Where("owner_id = ?", ownerID),
		).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) ListLikedVideoIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("target_kind = ? AND liked_by = ?", domain.LikeTargetVideo, userID).
		Order("created_at DESC").
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
