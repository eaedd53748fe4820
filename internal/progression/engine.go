// Package progression holds the daily-mission rules: locking, streaks, day
// advancement and trail hand-off. Everything here is a pure function of a
// progress record, the catalog and a calendar date. No clock, no storage.
package progression

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/tryly/tryly-api/internal/models"
)

const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// MinReflectionLen is the minimum reflection length in characters.
const MinReflectionLen = 10

var (
	ErrReflectionTooShort    = errors.New("reflection text too short")
	ErrAlreadyCompletedToday = errors.New("mission already completed today")
)

type ReminderKind string

const (
	ReminderNone   ReminderKind = ""
	ReminderStart  ReminderKind = "start"
	ReminderFinish ReminderKind = "finish"
)

// DisplayState is what the dashboard needs to render the current mission.
type DisplayState struct {
	Mission   *models.Mission `json:"mission"`
	TrailDone bool            `json:"trailDone"`
	Locked    bool            `json:"locked"`
	Paused    bool            `json:"paused"`
	Reminder  ReminderKind    `json:"reminder"`
}

// Day truncates a time to its UTC calendar date. All date comparisons in
// this package go through it so day boundaries don't drift per user.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeStatus maps legacy absent/unknown statuses to "new".
func NormalizeStatus(s string) string {
	switch s {
	case StatusInProgress, StatusCompleted:
		return s
	default:
		return StatusNew
	}
}

// LockedToday reports whether the current mission may not be completed again
// today: completed status with a last completion on this calendar date.
func LockedToday(p models.UserProgress, today time.Time) bool {
	if NormalizeStatus(p.Status) != StatusCompleted || p.LastCompletedAt == nil {
		return false
	}
	return Day(*p.LastCompletedAt).Equal(Day(today))
}

// Paused reports whether the user has let more than one calendar day pass
// since their last completion. Advisory only; it never blocks an action.
func Paused(p models.UserProgress, today time.Time) bool {
	if LockedToday(p, today) || p.LastCompletedAt == nil {
		return false
	}
	return Day(*p.LastCompletedAt).Before(Day(today).AddDate(0, 0, -1))
}

// Reminder derives the nudge to send, if any. Brand-new users (day 1, never
// started) are never prompted.
func Reminder(p models.UserProgress, today time.Time) ReminderKind {
	if p.CurrentDay == 1 && NormalizeStatus(p.Status) == StatusNew {
		return ReminderNone
	}
	if LockedToday(p, today) {
		return ReminderNone
	}
	if NormalizeStatus(p.Status) == StatusInProgress {
		return ReminderFinish
	}
	return ReminderStart
}

// Derive computes the full display state for the current day. A nil mission
// means the trail has no entry for CurrentDay, i.e. the trail is exhausted.
func Derive(p models.UserProgress, mission *models.Mission, today time.Time) DisplayState {
	if mission == nil {
		return DisplayState{TrailDone: true}
	}
	return DisplayState{
		Mission:  mission,
		Locked:   LockedToday(p, today),
		Paused:   Paused(p, today),
		Reminder: Reminder(p, today),
	}
}

// Accept marks the current mission as started. Idempotent: accepting an
// already in-progress mission changes nothing.
func Accept(p models.UserProgress) models.UserProgress {
	p.Status = StatusInProgress
	return p
}

// ValidateReflection enforces the minimum reflection length.
func ValidateReflection(text string) error {
	if utf8.RuneCountInString(text) < MinReflectionLen {
		return ErrReflectionTooShort
	}
	return nil
}

// Complete applies the completion transition: streak update, completion date,
// day advancement. It refuses a second completion on the same calendar day.
// The input record is not mutated; all fields of the result must be persisted
// together.
func Complete(p models.UserProgress, today time.Time) (models.UserProgress, error) {
	if LockedToday(p, today) {
		return p, ErrAlreadyCompletedToday
	}

	day := Day(today)
	yesterday := day.AddDate(0, 0, -1)

	if p.LastCompletedAt != nil && Day(*p.LastCompletedAt).Equal(yesterday) {
		p.CurrentStreak++
	} else {
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}

	p.LastCompletedAt = &day
	p.CurrentDay++
	p.Status = StatusCompleted
	return p, nil
}
