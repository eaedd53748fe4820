package progression

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryly/tryly-api/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(day int, status string, last *time.Time) models.UserProgress {
	return models.UserProgress{
		UserID:          uuid.New(),
		TrailID:         uuid.New(),
		CurrentDay:      day,
		Status:          status,
		LastCompletedAt: last,
	}
}

func TestDayTruncatesToUTCCalendarDate(t *testing.T) {
	late := time.Date(2024, 6, 11, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2024, 6, 11), Day(late))

	// A local-time instant lands on its UTC date, not the local one.
	loc := time.FixedZone("UTC-5", -5*3600)
	night := time.Date(2024, 6, 11, 22, 0, 0, 0, loc)
	assert.Equal(t, date(2024, 6, 12), Day(night))
}

func TestNormalizeStatusDefaultsToNew(t *testing.T) {
	assert.Equal(t, StatusNew, NormalizeStatus(""))
	assert.Equal(t, StatusNew, NormalizeStatus("bogus"))
	assert.Equal(t, StatusInProgress, NormalizeStatus(StatusInProgress))
	assert.Equal(t, StatusCompleted, NormalizeStatus(StatusCompleted))
}

func TestLockedOnlyWhenCompletedToday(t *testing.T) {
	today := date(2024, 6, 11)
	yesterday := date(2024, 6, 10)

	assert.True(t, LockedToday(record(3, StatusCompleted, &today), today))
	assert.False(t, LockedToday(record(3, StatusCompleted, &yesterday), today),
		"completed is a same-day-only state; lock clears at day rollover")
	assert.False(t, LockedToday(record(3, StatusInProgress, &today), today))
	assert.False(t, LockedToday(record(1, StatusNew, nil), today))
}

func TestPausedAfterGap(t *testing.T) {
	today := date(2024, 6, 11)
	yesterday := date(2024, 6, 10)
	threeDaysAgo := date(2024, 6, 8)

	assert.False(t, Paused(record(3, StatusNew, &yesterday), today))
	assert.True(t, Paused(record(3, StatusNew, &threeDaysAgo), today))
	assert.False(t, Paused(record(1, StatusNew, nil), today))
	assert.False(t, Paused(record(3, StatusCompleted, &today), today), "locked is not paused")
}

func TestReminderSkipsBrandNewUsers(t *testing.T) {
	today := date(2024, 6, 11)

	assert.Equal(t, ReminderNone, Reminder(record(1, StatusNew, nil), today))
	assert.Equal(t, ReminderNone, Reminder(record(1, "", nil), today))
	assert.Equal(t, ReminderStart, Reminder(record(2, StatusNew, nil), today))
	assert.Equal(t, ReminderFinish, Reminder(record(1, StatusInProgress, nil), today))

	completed := record(3, StatusCompleted, &today)
	assert.Equal(t, ReminderNone, Reminder(completed, today))

	yesterday := date(2024, 6, 10)
	stale := record(3, StatusCompleted, &yesterday)
	assert.Equal(t, ReminderStart, Reminder(stale, today), "yesterday's completion no longer suppresses the nudge")
}

func TestAcceptIsIdempotent(t *testing.T) {
	p := record(3, StatusNew, nil)

	once := Accept(p)
	assert.Equal(t, StatusInProgress, once.Status)

	twice := Accept(once)
	assert.Equal(t, once, twice, "double accept must not change the record")
}

func TestValidateReflectionBoundary(t *testing.T) {
	assert.ErrorIs(t, ValidateReflection("123456789"), ErrReflectionTooShort)
	assert.NoError(t, ValidateReflection("1234567890"))
	// Rune count, not byte count.
	assert.NoError(t, ValidateReflection("fiz dez não"))
}

func TestCompleteAdvancesExactlyOneDay(t *testing.T) {
	today := date(2024, 6, 11)
	p := record(5, StatusInProgress, nil)

	next, err := Complete(p, today)
	require.NoError(t, err)
	assert.Equal(t, 6, next.CurrentDay)
	assert.Equal(t, StatusCompleted, next.Status)
	require.NotNil(t, next.LastCompletedAt)
	assert.Equal(t, today, *next.LastCompletedAt)

	// Input record untouched.
	assert.Equal(t, 5, p.CurrentDay)
	assert.Equal(t, StatusInProgress, p.Status)
}

func TestCompleteRejectsSecondCompletionSameDay(t *testing.T) {
	today := date(2024, 6, 11)
	p := record(3, StatusInProgress, nil)

	done, err := Complete(p, today)
	require.NoError(t, err)

	_, err = Complete(done, today)
	assert.ErrorIs(t, err, ErrAlreadyCompletedToday)
	assert.Equal(t, 4, done.CurrentDay, "a rejected completion leaves the record as it was")
}

func TestStreakContinuationAndReset(t *testing.T) {
	yesterday := date(2024, 6, 10)

	// Consecutive day continues the streak.
	p := record(3, StatusInProgress, &yesterday)
	p.CurrentStreak = 2
	p.LongestStreak = 4

	next, err := Complete(p, date(2024, 6, 11))
	require.NoError(t, err)
	assert.Equal(t, 3, next.CurrentStreak)
	assert.Equal(t, 4, next.LongestStreak, "longest never decreases")

	// A gap of two or more days resets to 1.
	gap := record(3, StatusInProgress, &yesterday)
	gap.CurrentStreak = 5
	gap.LongestStreak = 5

	next, err = Complete(gap, date(2024, 6, 13))
	require.NoError(t, err)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 5, next.LongestStreak)

	// First-ever completion starts at 1.
	first := record(1, StatusInProgress, nil)
	next, err = Complete(first, date(2024, 6, 11))
	require.NoError(t, err)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 1, next.LongestStreak)
}

func TestStreakGrowsDayByDay(t *testing.T) {
	p := record(1, StatusInProgress, nil)
	day := date(2024, 6, 1)

	for i := 1; i <= 7; i++ {
		var err error
		p, err = Complete(p, day)
		require.NoError(t, err)
		assert.Equal(t, i, p.CurrentStreak)
		assert.Equal(t, i, p.LongestStreak)
		assert.Equal(t, i+1, p.CurrentDay, "day advances by exactly one per completion")

		p.Status = StatusInProgress // user accepts the next morning
		day = day.AddDate(0, 0, 1)
	}
}

func TestDeriveMissingMissionMeansTrailDone(t *testing.T) {
	today := date(2024, 6, 11)
	state := Derive(record(15, StatusCompleted, nil), nil, today)

	assert.True(t, state.TrailDone)
	assert.Nil(t, state.Mission)
	assert.False(t, state.Locked)
}

func TestDeriveLockedState(t *testing.T) {
	today := date(2024, 6, 11)
	mission := &models.Mission{DayNumber: 3, Title: "Cold shower"}

	state := Derive(record(3, StatusCompleted, &today), mission, today)
	assert.True(t, state.Locked)
	assert.Equal(t, mission, state.Mission)
	assert.Equal(t, ReminderNone, state.Reminder)
}

// The literal walkthrough from the product brief: day 3, completed yesterday,
// streak 2, submits today.
func TestConsecutiveDayScenario(t *testing.T) {
	yesterday := date(2024, 6, 10)
	today := date(2024, 6, 11)

	p := record(3, StatusNew, &yesterday)
	p.CurrentStreak = 2
	p.LongestStreak = 2

	p = Accept(p)
	assert.Equal(t, StatusInProgress, p.Status)

	require.NoError(t, ValidateReflection("12 chars ok."))

	next, err := Complete(p, today)
	require.NoError(t, err)
	assert.Equal(t, 4, next.CurrentDay)
	assert.Equal(t, StatusCompleted, next.Status)
	assert.Equal(t, today, *next.LastCompletedAt)
	assert.Equal(t, 3, next.CurrentStreak)
	assert.Equal(t, 3, next.LongestStreak)
}
