package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reflection is an append-only log entry: one per completed mission,
// never mutated after creation.
type Reflection struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	MissionID  uuid.UUID      `json:"missionId" gorm:"type:uuid;index;not null"`
	DayNumber  int            `json:"dayNumber" gorm:"not null"`
	UserText   string         `json:"userText" gorm:"not null"`
	AIFeedback string         `json:"aiFeedback"`
	CreatedAt  time.Time      `json:"createdAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	Mission    *Mission       `json:"mission,omitempty" gorm:"foreignKey:MissionID"`
}

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
