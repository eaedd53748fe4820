package progression

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryly/tryly-api/internal/models"
)

func trail(position int, paid bool) models.Trail {
	return models.Trail{ID: uuid.New(), Position: position, IsPaid: paid}
}

func TestSortTrailsByPositionThenID(t *testing.T) {
	a := trail(2, false)
	b := trail(1, false)
	c := trail(3, true)
	sorted := SortTrails([]models.Trail{a, b, c})

	assert.Equal(t, []uuid.UUID{b.ID, a.ID, c.ID}, []uuid.UUID{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	// Duplicate positions fall back to id order, deterministically.
	d1 := trail(1, false)
	d2 := trail(1, false)
	first := SortTrails([]models.Trail{d1, d2})
	second := SortTrails([]models.Trail{d2, d1})
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, first[0].ID.String() < first[1].ID.String())
}

func TestNextTrailFollowsPositionOrder(t *testing.T) {
	t1 := trail(1, false)
	t2 := trail(2, false)
	t3 := trail(3, true)
	catalog := []models.Trail{t3, t1, t2}

	next := NextTrail(catalog, t1.ID)
	require.NotNil(t, next)
	assert.Equal(t, t2.ID, next.ID)

	assert.Nil(t, NextTrail(catalog, t3.ID), "last trail has no successor")
	assert.Nil(t, NextTrail(catalog, uuid.New()), "unknown active trail has no successor")
}

func TestAdvanceToFreeTrail(t *testing.T) {
	t1 := trail(1, false)
	t2 := trail(2, false)

	res := Advance([]models.Trail{t1, t2}, t1.ID, false)
	assert.False(t, res.AllComplete)
	assert.False(t, res.Blocked)
	require.NotNil(t, res.Next)
	assert.Equal(t, t2.ID, res.Next.ID)
}

func TestAdvanceBlockedByPaywall(t *testing.T) {
	t1 := trail(1, false)
	t2 := trail(2, true)
	catalog := []models.Trail{t1, t2}

	res := Advance(catalog, t1.ID, false)
	assert.True(t, res.Blocked)
	require.NotNil(t, res.Next)
	assert.Equal(t, t2.ID, res.Next.ID)

	pro := Advance(catalog, t1.ID, true)
	assert.False(t, pro.Blocked)
	require.NotNil(t, pro.Next)
	assert.Equal(t, t2.ID, pro.Next.ID)
}

func TestAdvanceTerminalOutcome(t *testing.T) {
	t1 := trail(1, false)
	t2 := trail(2, false)

	res := Advance([]models.Trail{t1, t2}, t2.ID, false)
	assert.True(t, res.AllComplete)
	assert.Nil(t, res.Next)
}

func TestApplyAdvanceResetsDayButKeepsStreaks(t *testing.T) {
	last := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	p := models.UserProgress{
		TrailID:         uuid.New(),
		CurrentDay:      15,
		Status:          StatusCompleted,
		LastCompletedAt: &last,
		CurrentStreak:   7,
		LongestStreak:   12,
	}
	next := trail(2, false)

	moved := ApplyAdvance(p, next)
	assert.Equal(t, next.ID, moved.TrailID)
	assert.Equal(t, 1, moved.CurrentDay)
	assert.Equal(t, StatusNew, moved.Status)
	assert.Nil(t, moved.LastCompletedAt)
	assert.Equal(t, 7, moved.CurrentStreak, "streaks survive trail changes")
	assert.Equal(t, 12, moved.LongestStreak)
}
