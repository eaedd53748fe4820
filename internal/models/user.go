package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email           string         `json:"email" gorm:"uniqueIndex;not null"`
	Password        string         `json:"-"`
	AuthProvider    string         `json:"authProvider" gorm:"default:email"`
	Name            string         `json:"name"`
	AvatarURL       string         `json:"avatarUrl"`
	Role            string         `json:"role" gorm:"default:user"` // user, admin
	IsPro           bool           `json:"isPro" gorm:"default:false"`
	TotalXP         int            `json:"totalXp" gorm:"default:0"`
	CurrentStreak   int            `json:"currentStreak" gorm:"default:0"`
	LongestStreak   int            `json:"longestStreak" gorm:"default:0"`
	LastCompletedAt *time.Time     `json:"lastCompletedAt"`
	InvitedBy       *uuid.UUID     `json:"invitedBy" gorm:"type:uuid"`
	FCMToken        string         `json:"-" gorm:"column:fcm_token"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

func (u *User) Level() string {
	switch {
	case u.TotalXP >= 2000:
		return "diamond"
	case u.TotalXP >= 500:
		return "gold"
	case u.TotalXP >= 100:
		return "silver"
	default:
		return "bronze"
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Auth DTOs
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
	Password  *string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
