package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/clipstream/backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	media     storage.MediaStore
}

func NewUserService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository, media storage.MediaStore) *UserService {
	return &UserService{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		subRepo:   subRepo,
		media:     media,
	}
}

type UpdateAccountInput struct {
	FullName *string
	Email    *string
}

// ChannelProfile is a user's public channel page.
type ChannelProfile struct {
	User              domain.PublicProfile `json:"user"`
	CoverImageURL     string               `json:"coverImageUrl"`
	SubscriberCount   int64                `json:"subscriberCount"`
	SubscribedToCount int64                `json:"subscribedToCount"`
	IsSubscribed      bool                 `json:"isSubscribed"`
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*domain.User, error) {
	if input.FullName == nil && input.Email == nil {
		return nil, fmt.Errorf("%w: at least one of fullName or email is required", domain.ErrInvalidArgument)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, upload *Upload) (*domain.User, error) {
	return s.updateImage(ctx, userID, "avatar", upload)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, upload *Upload) (*domain.User, error) {
	return s.updateImage(ctx, userID, "cover", upload)
}

func (s *UserService) updateImage(ctx context.Context, userID uuid.UUID, kind string, upload *Upload) (*domain.User, error) {
	if upload == nil {
		return nil, fmt.Errorf("%w: %s file is required", domain.ErrInvalidArgument, kind)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newURL, err := uploadMedia(ctx, s.media, fmt.Sprintf("users/%s/%s", userID, kind), upload)
	if err != nil {
		return nil, err
	}

	var oldURL string
	switch kind {
	case "avatar":
		oldURL = user.AvatarURL
		user.AvatarURL = newURL
	case "cover":
		oldURL = user.CoverImageURL
		user.CoverImageURL = newURL
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	removeMedia(ctx, s.media, oldURL)
	return user, nil
}

// RecordWatch prepends the video to the user's watch history, moving an
// already-present entry to the front instead of duplicating it.
func (s *UserService) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	history := make([]uuid.UUID, 0, len(user.WatchHistory)+1)
	history = append(history, videoID)
	for _, id := range user.WatchHistory {
		if id != videoID {
			history = append(history, id)
		}
	}

	user.WatchHistory = datatypes.NewJSONSlice(history)
	return s.userRepo.Update(ctx, user)
}

// WatchHistory resolves the stored video ids in watch order; videos
// deleted since they were watched are dropped.
func (s *UserService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDs(ctx, []uuid.UUID(user.WatchHistory))
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]*domain.Video, 0, len(user.WatchHistory))
	for _, id := range user.WatchHistory {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// ChannelProfile assembles a channel page for the given username. The
// viewer id, when present, determines IsSubscribed.
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID *uuid.UUID) (*ChannelProfile, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: channel", domain.ErrNotFound)
		}
		return nil, err
	}

	subscriberCount, err := s.subRepo.CountByChannel(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscribedToCount, err := s.subRepo.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &ChannelProfile{
		User:              user.Public(),
		CoverImageURL:     user.CoverImageURL,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
	}

	if viewerID != nil {
		subscribed, err := s.subRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsSubscribed = subscribed
	}

	return profile, nil
}
