package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Friendship struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID      `json:"requesterId" gorm:"type:uuid;index;not null;uniqueIndex:idx_friend_pair"`
	AddresseeID uuid.UUID      `json:"addresseeId" gorm:"type:uuid;index;not null;uniqueIndex:idx_friend_pair"`
	Status      string         `json:"status" gorm:"default:pending"` // pending, accepted
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type FriendRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RankingEntry is one row of the XP leaderboard.
type RankingEntry struct {
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	AvatarURL     string    `json:"avatarUrl"`
	TotalXP       int       `json:"totalXp"`
	CurrentStreak int       `json:"currentStreak"`
	IsMe          bool      `json:"isMe"`
}
