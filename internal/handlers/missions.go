package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/models"
)

// GetMissions lists a trail's missions in day order
func GetMissions(c *fiber.Ctx) error {
	trailID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trail ID",
		})
	}

	var missions []models.Mission
	if err := database.DB.Where("trail_id = ?", trailID).
		Order("day_number ASC").Find(&missions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load missions",
		})
	}

	return c.JSON(missions)
}

// CreateMission adds a mission to a trail. Day numbers are unique per trail.
func CreateMission(c *fiber.Ctx) error {
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

	var req models.CreateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" || req.DayNumber < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and a day number of 1 or more are required",
		})
	}

	var count int64
	database.DB.Model(&models.Mission{}).
		Where("trail_id = ? AND day_number = ?", trailID, req.DayNumber).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A mission already exists for that day",
		})
	}

	mission := models.Mission{
		TrailID:     trailID,
		DayNumber:   req.DayNumber,
		Title:       req.Title,
		Description: req.Description,
		ActionText:  req.ActionText,
		Attribute:   req.Attribute,
		XPReward:    req.XPReward,
		BadgeName:   req.BadgeName,
	}

	if err := database.DB.Create(&mission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create mission",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(mission)
}

func UpdateMission(c *fiber.Ctx) error {
	missionID, err := uuid.Parse(c.Params("missionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mission ID",
		})
	}

	var mission models.Mission
	if err := database.DB.First(&mission, missionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mission not found",
		})
	}

	var req models.UpdateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.DayNumber != nil && *req.DayNumber != mission.DayNumber {
		if *req.DayNumber < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Day number must be 1 or more",
			})
		}
		var count int64
		database.DB.Model(&models.Mission{}).
			Where("trail_id = ? AND day_number = ?", mission.TrailID, *req.DayNumber).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A mission already exists for that day",
			})
		}
		mission.DayNumber = *req.DayNumber
	}
	if req.Title != nil {
		mission.Title = *req.Title
	}
	if req.Description != nil {
		mission.Description = *req.Description
	}
	if req.ActionText != nil {
		mission.ActionText = *req.ActionText
	}
	if req.Attribute != nil {
		mission.Attribute = *req.Attribute
	}
	if req.XPReward != nil {
		mission.XPReward = *req.XPReward
	}
	if req.BadgeName != nil {
		mission.BadgeName = req.BadgeName
	}

	if err := database.DB.Save(&mission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update mission",
		})
	}

	return c.JSON(mission)
}

func DeleteMission(c *fiber.Ctx) error {
	missionID, err := uuid.Parse(c.Params("missionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mission ID",
		})
	}

	result := database.DB.Delete(&models.Mission{}, missionID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete mission",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mission not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
