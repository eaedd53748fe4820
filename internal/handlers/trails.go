package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/models"
)

// GetTrails returns the catalog in position order. The paid filter is a view
// concern only; it never changes the underlying order.
func GetTrails(c *fiber.Ctx) error {
	query := database.DB.Order("position ASC, id ASC")

	switch c.Query("paid") {
	case "true":
		query = query.Where("is_paid = ?", true)
	case "false":
		query = query.Where("is_paid = ?", false)
	}

	var trails []models.Trail
	if err := query.Find(&trails).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load trails",
		})
	}

	return c.JSON(trails)
}

// GetTrail returns one trail with its missions in day order
func GetTrail(c *fiber.Ctx) error {
	trailID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trail ID",
		})
	}

	var trail models.Trail
	if err := database.DB.Preload("Missions", func(db *gorm.DB) *gorm.DB {
		return db.Order("day_number ASC")
	}).First(&trail, trailID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trail not found",
		})
	}

	return c.JSON(trail)
}

// CreateTrail appends a new trail at the end of the global order
func CreateTrail(c *fiber.Ctx) error {
	var req models.CreateTrailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	var maxPosition int
	database.DB.Model(&models.Trail{}).Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	trail := models.Trail{
		Title:           req.Title,
		Description:     req.Description,
		IsPaid:          req.IsPaid,
		Position:        maxPosition + 1,
		AIPersonaPrompt: req.AIPersonaPrompt,
	}

	if err := database.DB.Create(&trail).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create trail",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(trail)
}

func UpdateTrail(c *fiber.Ctx) error {
	trailID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trail ID",
		})
	}

	var trail models.Trail
	if err := database.DB.First(&trail, trailID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trail not found",
		})
	}

	var req models.UpdateTrailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		trail.Title = *req.Title
	}
	if req.Description != nil {
		trail.Description = *req.Description
	}
	if req.IsPaid != nil {
		trail.IsPaid = *req.IsPaid
	}
	if req.AIPersonaPrompt != nil {
		trail.AIPersonaPrompt = req.AIPersonaPrompt
	}

	if err := database.DB.Save(&trail).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update trail",
		})
	}

	return c.JSON(trail)
}

// DeleteTrail removes a trail and its missions
func DeleteTrail(c *fiber.Ctx) error {
	trailID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trail ID",
		})
	}

	var trail models.Trail
	if err := database.DB.First(&trail, trailID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trail not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trail_id = ?", trailID).Delete(&models.Mission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&trail).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete trail",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// ReorderTrails reassigns contiguous positions following the submitted order.
// Trails missing from the request keep their relative order after the listed
// ones.
func ReorderTrails(c *fiber.Ctx) error {
	var req models.ReorderTrailsRequest
	if err := c.BodyParser(&req); err != nil || len(req.TrailIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "trailIds is required",
		})
	}

	var trails []models.Trail
	if err := database.DB.Order("position ASC, id ASC").Find(&trails).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load trails",
		})
	}

	listed := make(map[uuid.UUID]int, len(req.TrailIDs))
	for i, id := range req.TrailIDs {
		listed[id] = i
	}

	ordered := make([]models.Trail, 0, len(trails))
	rest := make([]models.Trail, 0)
	for _, t := range trails {
		if _, ok := listed[t.ID]; ok {
			ordered = append(ordered, t)
		} else {
			rest = append(rest, t)
		}
	}
	if len(ordered) != len(req.TrailIDs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "trailIds contains an unknown trail",
		})
	}

	// Sort the listed trails by their requested index
	for i := range ordered {
		for j := i + 1; j < len(ordered); j++ {
			if listed[ordered[j].ID] < listed[ordered[i].ID] {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	ordered = append(ordered, rest...)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range ordered {
			if err := tx.Model(&models.Trail{}).
				Where("id = ?", ordered[i].ID).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reorder trails",
		})
	}

	return GetTrails(c)
}
