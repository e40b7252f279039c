package domain

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID         uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner           *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"videoUrl" gorm:"not null"`
	ThumbnailURL    string    `json:"thumbnailUrl" gorm:"not null"`
	DurationSeconds float64   `json:"durationSeconds"`
	Views           int64     `json:"views" gorm:"not null;default:0"`
	IsPublished     bool      `json:"isPublished" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
