package repository

import (
	"context"

	"github.com/clipstream/backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts domain.ListOptions) ([]*domain.Video, int64, error)
	ListPublishedByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]*domain.Video, int64, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVideo(ctx context.Context, videoID uuid.UUID, opts domain.ListOptions) ([]*domain.Comment, int64, error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Update(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]*domain.Tweet, int64, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error)
}

type LikeRepository interface {
	// Insert adds a like and reports whether a row was actually written;
	// a concurrent duplicate resolves to false via the unique index.
	Insert(ctx context.Context, like *domain.Like) (bool, error)
	// Remove deletes by identity and reports whether a row existed.
	Remove(ctx context.Context, kind domain.LikeTarget, targetID, userID uuid.UUID) (bool, error)
	Exists(ctx context.Context, kind domain.LikeTarget, targetID, userID uuid.UUID) (bool, error)
	CountByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) (int64, error)
	CountVideoLikesByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ListLikedVideoIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type SubscriptionRepository interface {
	Insert(ctx context.Context, sub *domain.Subscription) (bool, error)
	Remove(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Subscription, error)
}

type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Tweet        TweetRepository
	Playlist     PlaylistRepository
	Like         LikeRepository
	Subscription SubscriptionRepository
}
