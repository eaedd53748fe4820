package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/middleware"
	"github.com/tryly/tryly-api/internal/models"
)

// GetReflections returns the caller's reflection history, newest first
func GetReflections(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var reflections []models.Reflection
	if err := database.DB.Where("user_id = ?", userID).
		Preload("Mission").
		Order("created_at DESC").
		Limit(limit).
		Find(&reflections).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load reflections",
		})
	}

	return c.JSON(reflections)
}
