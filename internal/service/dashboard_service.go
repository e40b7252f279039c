package service

import (
	"context"
	"fmt"

	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/google/uuid"
)

// DashboardService assembles channel-level aggregates for the owner's
// dashboard.
type DashboardService struct {
	videoRepo repository.VideoRepository
	likeRepo  repository.LikeRepository
	subRepo   repository.SubscriptionRepository
}

func NewDashboardService(videoRepo repository.VideoRepository, likeRepo repository.LikeRepository, subRepo repository.SubscriptionRepository) *DashboardService {
	return &DashboardService{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		subRepo:   subRepo,
	}
}

type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

func (s *DashboardService) Stats(ctx context.Context, channelID uuid.UUID) (*ChannelStats, error) {
	if channelID == uuid.Nil {
		return nil, fmt.Errorf("%w: channel id is required", domain.ErrInvalidArgument)
	}

	totalVideos, err := s.videoRepo.CountByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.videoRepo.SumViewsByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.likeRepo.CountVideoLikesByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}
	totalSubscribers, err := s.subRepo.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return &ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalLikes:       totalLikes,
		TotalSubscribers: totalSubscribers,
	}, nil
}

// Videos lists the channel's published videos, newest first.
func (s *DashboardService) Videos(ctx context.Context, channelID uuid.UUID, opts domain.ListOptions) (*VideoPage, error) {
	if channelID == uuid.Nil {
		return nil, fmt.Errorf("%w: channel id is required", domain.ErrInvalidArgument)
	}

	opts = opts.Normalize()
	videos, total, err := s.videoRepo.ListPublishedByOwner(ctx, channelID, opts)
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
