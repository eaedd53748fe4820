package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mission is a single day's task within a trail, keyed by DayNumber.
type Mission struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	TrailID     uuid.UUID      `json:"trailId" gorm:"type:uuid;index;not null;uniqueIndex:idx_trail_day"`
	DayNumber   int            `json:"dayNumber" gorm:"not null;uniqueIndex:idx_trail_day"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	ActionText  string         `json:"actionText"`
	Attribute   string         `json:"attribute"` // trait label shown with the reward, e.g. "Focus"
	XPReward    int            `json:"xpReward" gorm:"default:0"`
	BadgeName   *string        `json:"badgeName"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *Mission) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Mission DTOs
type CreateMissionRequest struct {
	DayNumber   int     `json:"dayNumber" validate:"required,min=1"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	ActionText  string  `json:"actionText"`
	Attribute   string  `json:"attribute"`
	XPReward    int     `json:"xpReward"`
	BadgeName   *string `json:"badgeName"`
}

type UpdateMissionRequest struct {
	DayNumber   *int    `json:"dayNumber"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ActionText  *string `json:"actionText"`
	Attribute   *string `json:"attribute"`
	XPReward    *int    `json:"xpReward"`
	BadgeName   *string `json:"badgeName"`
}
