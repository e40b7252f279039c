package api

import (
	"net/http"

	"github.com/clipstream/backend/internal/api/handlers"
	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/config"
	"github.com/clipstream/backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User)
	videoHandler := handlers.NewVideoHandler(services.Video, services.User)
	commentHandler := handlers.NewCommentHandler(services.Comment)
	tweetHandler := handlers.NewTweetHandler(services.Tweet)
	likeHandler := handlers.NewLikeHandler(services.Engagement)
	subscriptionHandler := handlers.NewSubscriptionHandler(services.Subscription)
	playlistHandler := handlers.NewPlaylistHandler(services.Playlist)
	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)

	authLimiter := middleware.NewIPRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes, rate limited per IP
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(authLimiter))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/refresh-token", authHandler.Refresh)
			})

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.With(middleware.OptionalAuth(services.Auth)).Get("/c/{username}", userHandler.Channel)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Patch("/update-account", userHandler.UpdateAccount)
				r.Patch("/avatar", userHandler.UpdateAvatar)
				r.Patch("/cover-image", userHandler.UpdateCoverImage)
				r.Get("/history", userHandler.WatchHistory)
			})
		})

		// Video routes
		r.Route("/videos", func(r chi.Router) {
			r.Get("/", videoHandler.List)
			r.With(middleware.OptionalAuth(services.Auth)).Get("/{videoId}", videoHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", videoHandler.Publish)
				r.Patch("/{videoId}", videoHandler.Update)
				r.Delete("/{videoId}", videoHandler.Delete)
				r.Patch("/toggle/publish/{videoId}", videoHandler.TogglePublish)
			})
		})

		// Comment routes
		r.Route("/comments", func(r chi.Router) {
			r.Get("/{videoId}", commentHandler.ListByVideo)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/{videoId}", commentHandler.Add)
				r.Patch("/c/{commentId}", commentHandler.Update)
				r.Delete("/c/{commentId}", commentHandler.Delete)
			})
		})

		// Tweet routes
		r.Route("/tweets", func(r chi.Router) {
			r.Get("/user/{userId}", tweetHandler.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", tweetHandler.Create)
				r.Patch("/{tweetId}", tweetHandler.Update)
				r.Delete("/{tweetId}", tweetHandler.Delete)
			})
		})

		// Like routes
		r.Route("/likes", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/toggle/v/{videoId}", likeHandler.ToggleVideoLike)
			r.Post("/toggle/c/{commentId}", likeHandler.ToggleCommentLike)
			r.Post("/toggle/t/{tweetId}", likeHandler.ToggleTweetLike)
			r.Get("/videos", likeHandler.LikedVideos)
		})

		// Subscription routes
		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/c/{channelId}", subscriptionHandler.SubscriberCount)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/c/{channelId}", subscriptionHandler.Toggle)
				r.Get("/", subscriptionHandler.SubscribedChannels)
			})
		})

		// Playlist routes
		r.Route("/playlists", func(r chi.Router) {
			r.Get("/{playlistId}", playlistHandler.Get)
			r.Get("/user/{userId}", playlistHandler.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", playlistHandler.Create)
				r.Patch("/{playlistId}", playlistHandler.Update)
				r.Delete("/{playlistId}", playlistHandler.Delete)
				r.Patch("/add/{videoId}/{playlistId}", playlistHandler.AddVideo)
				r.Patch("/remove/{videoId}/{playlistId}", playlistHandler.RemoveVideo)
			})
		})

		// Dashboard routes
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/videos", dashboardHandler.Videos)
		})
	})

	return r
}
