package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProgress is the single progression record per user. CurrentDay only
// ever moves forward, by exactly one per completed reflection.
type UserProgress struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID      `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	TrailID         uuid.UUID      `json:"trailId" gorm:"type:uuid;index;not null"`
	CurrentDay      int            `json:"currentDay" gorm:"not null;default:1"`
	Status          string         `json:"status" gorm:"default:new"` // new, in_progress, completed
	LastCompletedAt *time.Time     `json:"lastCompletedAt"`
	CurrentStreak   int            `json:"currentStreak" gorm:"default:0"`
	LongestStreak   int            `json:"longestStreak" gorm:"default:0"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type SubmitReflectionRequest struct {
	Text string `json:"text" validate:"required,min=10"`
}
