package progression

import (
	"sort"

	"github.com/google/uuid"

	"github.com/tryly/tryly-api/internal/models"
)

// AdvanceResult is the outcome of a trail advancement attempt.
// Exactly one of AllComplete, Blocked or Next is meaningful.
type AdvanceResult struct {
	AllComplete bool          `json:"allComplete"`
	Blocked     bool          `json:"blocked"`
	Next        *models.Trail `json:"next,omitempty"`
}

// SortTrails returns the catalog in its authoritative order: position
// ascending, trail id as the stable tie-break for duplicate positions.
func SortTrails(trails []models.Trail) []models.Trail {
	sorted := make([]models.Trail, len(trails))
	copy(sorted, trails)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted
}

// NextTrail finds the trail following the active one in position order.
// Returns nil when the active trail is last, or not in the catalog at all.
func NextTrail(trails []models.Trail, activeID uuid.UUID) *models.Trail {
	sorted := SortTrails(trails)
	for i := range sorted {
		if sorted[i].ID == activeID {
			if i+1 < len(sorted) {
				return &sorted[i+1]
			}
			return nil
		}
	}
	return nil
}

// Advance decides where an exhausted trail leads: the next trail, a paywall,
// or the all-complete terminal state. It never mutates the record itself;
// callers apply ApplyAdvance only for an unblocked Next.
func Advance(trails []models.Trail, activeID uuid.UUID, isPro bool) AdvanceResult {
	next := NextTrail(trails, activeID)
	if next == nil {
		return AdvanceResult{AllComplete: true}
	}
	if next.IsPaid && !isPro {
		return AdvanceResult{Blocked: true, Next: next}
	}
	return AdvanceResult{Next: next}
}

// ApplyAdvance moves the record to the start of the next trail. Streaks are
// a cross-trail measure and are left untouched.
func ApplyAdvance(p models.UserProgress, next models.Trail) models.UserProgress {
	p.TrailID = next.ID
	p.CurrentDay = 1
	p.Status = StatusNew
	p.LastCompletedAt = nil
	return p
}
