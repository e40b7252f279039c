package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clipstream/backend/internal/cache"
	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/google/uuid"
)

// EngagementService flips the like relation between a user and a
// content item and answers "how many likes does this target have now".
// Totals are memoized in a bounded cache; every toggle invalidates the
// target's entry before the count is re-read, so a returned total is
// never staler than the toggle that preceded it.
type EngagementService struct {
	likeRepo  repository.LikeRepository
	videoRepo repository.VideoRepository
	counts    *cache.Counts
}

func NewEngagementService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, counts *cache.Counts) *EngagementService {
	return &EngagementService{
		likeRepo:  likeRepo,
		videoRepo: videoRepo,
		counts:    counts,
	}
}

type ToggleResult struct {
	Liked      bool
	TotalLikes int64
}

func (s *EngagementService) Toggle(ctx context.Context, kind domain.LikeTarget, targetID, userID uuid.UUID) (*ToggleResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown like target %q", domain.ErrInvalidArgument, kind)
	}
	if targetID == uuid.Nil {
		return nil, fmt.Errorf("%w: target id is required", domain.ErrInvalidArgument)
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	exists, err := s.likeRepo.Exists(ctx, kind, targetID, userID)
	if err != nil {
		return nil, err
	}

	liked := !exists
	if exists {
		// A concurrent toggle may have removed the row already; the
		// unique index makes either outcome consistent.
		if _, err := s.likeRepo.Remove(ctx, kind, targetID, userID); err != nil {
			return nil, err
		}
	} else {
		like := &domain.Like{
			ID:         uuid.New(),
			TargetKind: kind,
			TargetID:   targetID,
			LikedBy:    userID,
			CreatedAt:  time.Now(),
		}
		if _, err := s.likeRepo.Insert(ctx, like); err != nil {
			return nil, err
		}
	}

	s.counts.Invalidate(kind, targetID)

	total, err := s.TotalLikes(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Liked: liked, TotalLikes: total}, nil
}

// TotalLikes returns the memoized total for a target, recounting from
// the store on a miss.
func (s *EngagementService) TotalLikes(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: unknown like target %q", domain.ErrInvalidArgument, kind)
	}

	if total, ok := s.counts.Get(kind, targetID); ok {
		return total, nil
	}

	total, err := s.likeRepo.CountByTarget(ctx, kind, targetID)
	if err != nil {
		return 0, err
	}
	s.counts.Set(kind, targetID, total)
	return total, nil
}

// LikedVideos lists the videos the user has liked, newest like first,
// with owner profiles attached. Videos deleted since the like are
// dropped.
func (s *EngagementService) LikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	ids, err := s.likeRepo.ListLikedVideoIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}
