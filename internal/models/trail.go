package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trail is an ordered sequence of daily missions. Position defines the
// single global order across all trails; the paid flag only gates access.
type Trail struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description"`
	IsPaid          bool           `json:"isPaid" gorm:"default:false"`
	Position        int            `json:"position" gorm:"not null;index"`
	AIPersonaPrompt *string        `json:"aiPersonaPrompt"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	Missions        []Mission      `json:"missions,omitempty" gorm:"foreignKey:TrailID"`
}

func (t *Trail) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Trail DTOs
type CreateTrailRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description"`
	IsPaid          bool    `json:"isPaid"`
	AIPersonaPrompt *string `json:"aiPersonaPrompt"`
}

type UpdateTrailRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	IsPaid          *bool   `json:"isPaid"`
	AIPersonaPrompt *string `json:"aiPersonaPrompt"`
}

type ReorderTrailsRequest struct {
	TrailIDs []uuid.UUID `json:"trailIds" validate:"required"`
}
