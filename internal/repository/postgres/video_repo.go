package postgres

import (
	"context"
	"fmt"

	"github.com/clipstream/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *videoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Comments on the video lose their likes first, then the
		// comments themselves, then likes on the video.
		commentIDs := tx.Model(&domain.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.
			Where("target_kind = ? AND target_id IN (?)", domain.LikeTargetComment, commentIDs).
			Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("target_kind = ? AND target_id = ?", domain.LikeTargetVideo, id).
			Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Video{}, "id = ?", id).Error
	})
}

func (r *videoRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.Video, int64, error) {
	opts = opts.Normalize()

	query := r.db.WithContext(ctx).Model(&domain.Video{})
	if opts.Query != "" {
		query = query.Where("title ILIKE ?", "%"+opts.Query+"%")
	}
	if opts.OwnerID != nil {
		query = query.Where("owner_id = ?", *opts.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if opts.Random {
		query = query.Order("RANDOM()")
	} else {
		dir := "ASC"
		if opts.SortDesc {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", domain.VideoSortColumn(opts.SortBy), dir))
	}

	var videos []*domain.Video
	err := query.
		Preload("Owner").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) ListPublishedByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]*domain.Video, int64, error) {
	opts = opts.Normalize()

	query := r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("owner_id = ? AND is_published = ?", ownerID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*domain.Video
	err := query.
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []*domain.Video
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id IN ?", ids).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *videoRepository) SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Select("SUM(views)").
		Where("owner_id = ?", ownerID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
