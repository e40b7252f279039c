package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID               uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username         string                         `json:"username" gorm:"uniqueIndex;not null"`
	Email            string                         `json:"email" gorm:"uniqueIndex;not null"`
	FullName         string                         `json:"fullName" gorm:"not null"`
	PasswordHash     string                         `json:"-" gorm:"not null"`
	AvatarURL        string                         `json:"avatarUrl"`
	CoverImageURL    string                         `json:"coverImageUrl"`
	RefreshTokenHash *string                        `json:"-"`
	WatchHistory     datatypes.JSONSlice[uuid.UUID] `json:"watchHistory"`
	CreatedAt        time.Time                      `json:"createdAt"`
	UpdatedAt        time.Time                      `json:"updatedAt"`
}

// PublicProfile is the subset of user fields attached to content reads.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}
