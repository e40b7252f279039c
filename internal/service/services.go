package service

import (
	"github.com/clipstream/backend/internal/cache"
	"github.com/clipstream/backend/internal/config"
	"github.com/clipstream/backend/internal/repository"
	"github.com/clipstream/backend/internal/storage"
)

type Services struct {
	Auth         *AuthService
	User         *UserService
	Video        *VideoService
	Comment      *CommentService
	Tweet        *TweetService
	Playlist     *PlaylistService
	Engagement   *EngagementService
	Subscription *SubscriptionService
	Dashboard    *DashboardService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, media storage.MediaStore, counts *cache.Counts) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, media, cfg),
		User:         NewUserService(repos.User, repos.Video, repos.Subscription, media),
		Video:        NewVideoService(repos.Video, repos.User, media, counts),
		Comment:      NewCommentService(repos.Comment, repos.Video, counts),
		Tweet:        NewTweetService(repos.Tweet, counts),
		Playlist:     NewPlaylistService(repos.Playlist, repos.Video),
		Engagement:   NewEngagementService(repos.Like, repos.Video, counts),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User),
		Dashboard:    NewDashboardService(repos.Video, repos.Like, repos.Subscription),
	}
}
