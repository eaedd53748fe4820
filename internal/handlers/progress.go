package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/middleware"
	"github.com/tryly/tryly-api/internal/models"
	"github.com/tryly/tryly-api/internal/progression"
	"github.com/tryly/tryly-api/internal/services"
)

func todayUTC() time.Time {
	return progression.Day(time.Now())
}

// getOrCreateProgress finds the user's progression record, lazily creating
// it on the lowest-position trail on first dashboard visit.
func getOrCreateProgress(userID uuid.UUID) (models.UserProgress, error) {
	var progress models.UserProgress
	err := database.DB.Where("user_id = ?", userID).First(&progress).Error
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return progress, err
	}

	var first models.Trail
	if err := database.DB.Order("position ASC, id ASC").First(&first).Error; err != nil {
		return progress, fmt.Errorf("no trails available: %w", err)
	}

	progress = models.UserProgress{
		UserID:     userID,
		TrailID:    first.ID,
		CurrentDay: 1,
		Status:     progression.StatusNew,
	}
	if err := database.DB.Create(&progress).Error; err != nil {
		return progress, err
	}
	return progress, nil
}

// missionForDay returns nil when the trail has no mission for that day,
// which is the trail-exhausted signal, not an error.
func missionForDay(trailID uuid.UUID, day int) (*models.Mission, error) {
	var mission models.Mission
	err := database.DB.Where("trail_id = ? AND day_number = ?", trailID, day).First(&mission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// GetProgress returns the dashboard state: active trail, today's mission and
// the derived locked/paused/reminder flags.
func GetProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	progress, err := getOrCreateProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	var trail models.Trail
	if err := database.DB.First(&trail, progress.TrailID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Active trail no longer exists",
		})
	}

	mission, err := missionForDay(trail.ID, progress.CurrentDay)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load mission",
		})
	}

	state := progression.Derive(progress, mission, todayUTC())

	var totalDays int64
	database.DB.Model(&models.Mission{}).Where("trail_id = ?", trail.ID).Count(&totalDays)
	percent := 0
	if totalDays > 0 {
		percent = int(float64(progress.CurrentDay-1) / float64(totalDays) * 100)
		if percent > 100 {
			percent = 100
		}
	}

	return c.JSON(fiber.Map{
		"progress": progress,
		"trail":    trail,
		"state":    state,
		"percent":  percent,
	})
}

// AcceptMission moves the record to in_progress. Idempotent.
func AcceptMission(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	progress, err := getOrCreateProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	if progression.LockedToday(progress, todayUTC()) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Mission already completed today",
		})
	}

	mission, err := missionForDay(progress.TrailID, progress.CurrentDay)
	if err != nil || mission == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "No mission to accept",
			"trailDone": mission == nil,
		})
	}

	progress = progression.Accept(progress)
	if err := database.DB.Save(&progress).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update progress",
		})
	}

	return c.JSON(progress)
}

// SubmitReflection is the completion transition: validates the text, gets
// AI feedback (with local fallback), then commits the Reflection, the
// advanced progress record and the user's XP/streak mirror in one
// transaction so the record can never end up half-advanced.
func SubmitReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SubmitReflectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := progression.ValidateReflection(req.Text); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Write a little more about how it went",
		})
	}

	progress, err := getOrCreateProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	today := todayUTC()

	mission, err := missionForDay(progress.TrailID, progress.CurrentDay)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load mission",
		})
	}
	if mission == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "This trail is complete",
			"trailDone": true,
		})
	}

	updated, err := progression.Complete(progress, today)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Mission already completed today",
		})
	}

	var trail models.Trail
	database.DB.First(&trail, progress.TrailID)

	rewardLabel := mission.Attribute
	if rewardLabel == "" {
		rewardLabel = fmt.Sprintf("%d XP", mission.XPReward)
	}

	// Feedback failure never blocks progression; SafeGenerate substitutes a
	// fallback string on any adapter error.
	feedback := services.SafeGenerate(c.Context(), services.FeedbackRequest{
		Text:          req.Text,
		RewardLabel:   rewardLabel,
		BadgeLabel:    mission.BadgeName,
		PersonaPrompt: trail.AIPersonaPrompt,
	})

	reflection := models.Reflection{
		UserID:     userID,
		MissionID:  mission.ID,
		DayNumber:  mission.DayNumber,
		UserText:   req.Text,
		AIFeedback: feedback,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reflection).Error; err != nil {
			return err
		}
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"total_xp":          gorm.Expr("total_xp + ?", mission.XPReward),
			"current_streak":    updated.CurrentStreak,
			"longest_streak":    updated.LongestStreak,
			"last_completed_at": updated.LastCompletedAt,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save completion, please retry",
		})
	}

	// Tell friends after the commit
	next, _ := missionForDay(progress.TrailID, updated.CurrentDay)
	notifyFriendsOfCompletion(userID, trail, *mission, next == nil)

	return c.JSON(fiber.Map{
		"progress":   updated,
		"reflection": reflection,
		"feedback":   feedback,
		"xpAwarded":  mission.XPReward,
		"badgeName":  mission.BadgeName,
		"trailDone":  next == nil,
	})
}

// AdvanceTrail moves an exhausted trail to the next one in position order,
// applying the paid gate. The record is untouched for blocked and terminal
// outcomes.
func AdvanceTrail(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	progress, err := getOrCreateProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	mission, err := missionForDay(progress.TrailID, progress.CurrentDay)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load mission",
		})
	}
	if mission != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Current trail still has missions",
		})
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var trails []models.Trail
	if err := database.DB.Find(&trails).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load trails",
		})
	}

	result := progression.Advance(trails, progress.TrailID, user.IsPro)

	if result.AllComplete {
		return c.JSON(fiber.Map{"allComplete": true})
	}

	if result.Blocked {
		return c.JSON(fiber.Map{
			"upgradeRequired": true,
			"trail":           result.Next,
		})
	}

	updated := progression.ApplyAdvance(progress, *result.Next)
	if err := database.DB.Save(&updated).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save progress",
		})
	}

	return c.JSON(fiber.Map{
		"progress": updated,
		"trail":    result.Next,
	})
}

// notifyFriendsOfCompletion fans a completion event out to accepted friends:
// a websocket event plus a notification row each.
func notifyFriendsOfCompletion(userID uuid.UUID, trail models.Trail, mission models.Mission, trailDone bool) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return
	}

	eventType := EventMissionCompleted
	title := "Friend on a roll"
	body := fmt.Sprintf("%s completed day %d of %s", user.Name, mission.DayNumber, trail.Title)
	if trailDone {
		eventType = EventTrailCompleted
		body = fmt.Sprintf("%s finished the whole %s trail", user.Name, trail.Title)
	}

	for _, friendID := range acceptedFriendIDs(userID) {
		WS.Send(friendID, WSEvent{
			Type:   eventType,
			UserID: userID.String(),
			Data: map[string]interface{}{
				"userName":   user.Name,
				"trailTitle": trail.Title,
				"dayNumber":  mission.DayNumber,
			},
		})
		CreateNotification(friendID, "friend_completed", title, body,
			map[string]interface{}{"userId": userID.String(), "trailId": trail.ID.String()})
	}
}
