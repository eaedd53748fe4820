package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want string
	}{
		{0, "bronze"},
		{99, "bronze"},
		{100, "silver"},
		{499, "silver"},
		{500, "gold"},
		{1999, "gold"},
		{2000, "diamond"},
		{10000, "diamond"},
	}

	for _, tt := range tests {
		u := User{TotalXP: tt.xp}
		assert.Equal(t, tt.want, u.Level(), "xp=%d", tt.xp)
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: "admin"}).IsAdmin())
	assert.False(t, (&User{Role: "user"}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
