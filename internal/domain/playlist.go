package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Playlist struct {
	ID          uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID                      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner       *User                          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string                         `json:"name" gorm:"not null"`
	Description string                         `json:"description"`
	VideoIDs    datatypes.JSONSlice[uuid.UUID] `json:"videoIds"`
	CreatedAt   time.Time                      `json:"createdAt"`
	UpdatedAt   time.Time                      `json:"updatedAt"`
}

// Contains reports whether the playlist already holds the given video.
func (p *Playlist) Contains(videoID uuid.UUID) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}
