package postgres

import (
	"context"

	"github.com/clipstream/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *tweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&tweet, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	return r.db.WithContext(ctx).Save(tweet).Error
}

func (r *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("target_kind = ? AND target_id = ?", domain.LikeTargetTweet, id).
			Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Tweet{}, "id = ?", id).Error
	})
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]*domain.Tweet, int64, error) {
	opts = opts.Normalize()

	query := r.db.WithContext(ctx).Model(&domain.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []*domain.Tweet
	err := query.
		Select("tweets.*, (SELECT COUNT(*) FROM likes WHERE likes.target_kind = ? AND likes.target_id = tweets.id) AS like_count", domain.LikeTargetTweet).
		Preload("Owner").
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}
