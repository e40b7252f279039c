package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget is the closed set of content kinds a like can attach to.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like records that a user liked one content item. The composite unique
// index is what makes concurrent toggles safe: a duplicate insert or a
// double delete resolves at the storage layer.
type Like struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TargetKind LikeTarget `json:"targetKind" gorm:"not null;uniqueIndex:idx_like_identity,priority:1"`
	TargetID   uuid.UUID  `json:"targetId" gorm:"type:uuid;not null;uniqueIndex:idx_like_identity,priority:2"`
	LikedBy    uuid.UUID  `json:"likedBy" gorm:"type:uuid;not null;uniqueIndex:idx_like_identity,priority:3;index"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID uuid.UUID `json:"subscriberId" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_identity,priority:1"`
	ChannelID    uuid.UUID `json:"channelId" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_identity,priority:2;index"`
	Channel      *User     `json:"channel,omitempty" gorm:"foreignKey:ChannelID"`
	CreatedAt    time.Time `json:"createdAt"`
}
