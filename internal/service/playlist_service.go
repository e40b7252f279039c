package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

type UpdatePlaylistInput struct {
	Name        *string
	Description *string
}

// PlaylistView is a playlist with its video ids resolved to videos.
// Videos deleted since they were added are dropped silently.
type PlaylistView struct {
	Playlist *domain.Playlist `json:"playlist"`
	Videos   []*domain.Video  `json:"videos"`
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: playlist name is required", domain.ErrInvalidArgument)
	}

	playlist := &domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		VideoIDs:    datatypes.NewJSONSlice([]uuid.UUID{}),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Get(ctx context.Context, id uuid.UUID) (*PlaylistView, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: playlist", domain.ErrNotFound)
		}
		return nil, err
	}
	return s.resolve(ctx, playlist)
}

func (s *PlaylistService) ListByUser(ctx context.Context, ownerID uuid.UUID) ([]*PlaylistView, error) {
	playlists, err := s.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]*PlaylistView, 0, len(playlists))
	for _, p := range playlists {
		view, err := s.resolve(ctx, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}

	if playlist.Contains(videoID) {
		return nil, fmt.Errorf("%w: video is already in the playlist", domain.ErrConflict)
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video", domain.ErrNotFound)
		}
		return nil, err
	}

	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}

	if !playlist.Contains(videoID) {
		return nil, fmt.Errorf("%w: video is not in the playlist", domain.ErrNotFound)
	}

	kept := make([]uuid.UUID, 0, len(playlist.VideoIDs)-1)
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	playlist.VideoIDs = datatypes.NewJSONSlice(kept)
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Update(ctx context.Context, playlistID, actorID uuid.UUID, input UpdatePlaylistInput) (*domain.Playlist, error) {
	if input.Name == nil && input.Description == nil {
		return nil, fmt.Errorf("%w: at least one of name or description is required", domain.ErrInvalidArgument)
	}

	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		playlist.Name = *input.Name
	}
	if input.Description != nil {
		playlist.Description = *input.Description
	}
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, actorID uuid.UUID) error {
	playlist, err := s.ownedPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlist.ID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, id, actorID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: playlist", domain.ErrNotFound)
		}
		return nil, err
	}
	if playlist.OwnerID != actorID {
		return nil, fmt.Errorf("%w: you do not own this playlist", domain.ErrForbidden)
	}
	return playlist, nil
}

func (s *PlaylistService) resolve(ctx context.Context, playlist *domain.Playlist) (*PlaylistView, error) {
	videos, err := s.videoRepo.GetByIDs(ctx, []uuid.UUID(playlist.VideoIDs))
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]*domain.Video, 0, len(playlist.VideoIDs))
	for _, id := range playlist.VideoIDs {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return &PlaylistView{Playlist: playlist, Videos: ordered}, nil
}
