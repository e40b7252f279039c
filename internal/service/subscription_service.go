package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService toggles the subscriber-watches-channel edge. No
// memoization here: subscriber counts are always recomputed.
type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

type SubscriptionResult struct {
	Subscribed       bool
	TotalSubscribers int64
}

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*SubscriptionResult, error) {
	if subscriberID == uuid.Nil || channelID == uuid.Nil {
		return nil, fmt.Errorf("%w: subscriber and channel ids are required", domain.ErrInvalidArgument)
	}
	if subscriberID == channelID {
		return nil, fmt.Errorf("%w: you cannot subscribe to your own channel", domain.ErrInvalidArgument)
	}

	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: channel", domain.ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.subRepo.Exists(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	subscribed := !exists
	if exists {
		if _, err := s.subRepo.Remove(ctx, subscriberID, channelID); err != nil {
			return nil, err
		}
	} else {
		sub := &domain.Subscription{
			ID:           uuid.New(),
			SubscriberID: subscriberID,
			ChannelID:    channelID,
			CreatedAt:    time.Now(),
		}
		if _, err := s.subRepo.Insert(ctx, sub); err != nil {
			return nil, err
		}
	}

	total, err := s.subRepo.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return &SubscriptionResult{Subscribed: subscribed, TotalSubscribers: total}, nil
}

func (s *SubscriptionService) SubscriberCount(ctx context.Context, channelID uuid.UUID) (int64, error) {
	if channelID == uuid.Nil {
		return 0, fmt.Errorf("%w: channel id is required", domain.ErrInvalidArgument)
	}
	return s.subRepo.CountByChannel(ctx, channelID)
}

// SubscribedChannels lists the channels a user subscribes to, newest
// first, with the channel's public profile attached.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Subscription, error) {
	if subscriberID == uuid.Nil {
		return nil, fmt.Errorf("%w: subscriber id is required", domain.ErrInvalidArgument)
	}
	return s.subRepo.ListBySubscriber(ctx, subscriberID)
}
