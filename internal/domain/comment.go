package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner     *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Content   string    `json:"content" gorm:"not null"`
	LikeCount int64     `json:"likeCount" gorm:"->;-:migration"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tweet struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner     *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Content   string    `json:"content" gorm:"not null"`
	LikeCount int64     `json:"likeCount" gorm:"->;-:migration"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
