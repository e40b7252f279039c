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

type TweetService struct {
	tweetRepo repository.TweetRepository
	counts    *cache.Counts
}

func NewTweetService(tweetRepo repository.TweetRepository, counts *cache.Counts) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		counts:    counts,
	}
}

type TweetPage struct {
	Tweets     []*domain.Tweet
	Page       int
	TotalPages int
	Total      int64
}

func (s *TweetService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*domain.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: tweet content is required", domain.ErrInvalidArgument)
	}

	tweet := &domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) (*TweetPage, error) {
	opts = opts.Normalize()
	tweets, total, err := s.tweetRepo.ListByOwner(ctx, ownerID, opts)
	if err != nil {
		return nil, err
	}
	return &TweetPage{
		Tweets:     tweets,
		Page:       opts.Page,
		TotalPages: totalPages(total, opts.Limit),
		Total:      total,
	}, nil
}

func (s *TweetService) Update(ctx context.Context, id, actorID uuid.UUID, content string) (*domain.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: tweet content is required", domain.ErrInvalidArgument)
	}

	tweet, err := s.ownedTweet(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now()

	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	tweet, err := s.ownedTweet(ctx, id, actorID)
	if err != nil {
		return err
	}

	if err := s.tweetRepo.Delete(ctx, tweet.ID); err != nil {
		return err
	}

	s.counts.Invalidate(domain.LikeTargetTweet, tweet.ID)
	return nil
}

func (s *TweetService) ownedTweet(ctx context.Context, id, actorID uuid.UUID) (*domain.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tweet", domain.ErrNotFound)
		}
		return nil, err
	}
	if tweet.OwnerID != actorID {
		return nil, fmt.Errorf("%w: you can only modify your own tweets", domain.ErrForbidden)
	}
	return tweet, nil
}
