package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/middleware"
	"github.com/tryly/tryly-api/internal/models"
)

// RequestFriend creates a pending friendship by the other user's email
func RequestFriend(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.FriendRequestRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	var target models.User
	if err := database.DB.Where("email = ?", req.Email).First(&target).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No user with that email",
		})
	}

	if target.ID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot befriend yourself",
		})
	}

	// Either direction counts as an existing relationship
	var existing models.Friendship
	err := database.DB.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userID, target.ID, target.ID, userID,
	).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Friendship already exists or is pending",
		})
	}

	friendship := models.Friendship{
		RequesterID: userID,
		AddresseeID: target.ID,
	}
	if err := database.DB.Create(&friendship).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create friend request",
		})
	}

	var requester models.User
	database.DB.First(&requester, userID)
	CreateNotification(target.ID, "friend_request",
		"New friend request",
		requester.Name+" wants to be your friend",
		map[string]interface{}{"friendshipId": friendship.ID.String()},
	)
	WS.Send(target.ID, WSEvent{
		Type:   EventFriendRequest,
		UserID: userID.String(),
		Data:   map[string]interface{}{"userName": requester.Name},
	})

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// AcceptFriend accepts a pending request addressed to the current user
func AcceptFriend(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	friendshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid friendship ID",
		})
	}

	var friendship models.Friendship
	if err := database.DB.Where("id = ? AND addressee_id = ? AND status = ?",
		friendshipID, userID, "pending").First(&friendship).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Pending request not found",
		})
	}

	friendship.Status = "accepted"
	if err := database.DB.Save(&friendship).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to accept request",
		})
	}

	var accepter models.User
	database.DB.First(&accepter, userID)
	CreateNotification(friendship.RequesterID, "friend_accepted",
		"Friend request accepted",
		accepter.Name+" accepted your friend request",
		map[string]interface{}{"userId": userID.String()},
	)
	WS.Send(friendship.RequesterID, WSEvent{
		Type:   EventFriendAccepted,
		UserID: userID.String(),
		Data:   map[string]interface{}{"userName": accepter.Name},
	})

	return c.JSON(friendship)
}

// ListFriends returns accepted friends plus requests waiting on the user
func ListFriends(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	friendIDs := acceptedFriendIDs(userID)
	var friends []models.User
	if len(friendIDs) > 0 {
		database.DB.Where("id IN ?", friendIDs).
			Select("id, name, avatar_url, total_xp, current_streak").
			Find(&friends)
	}

	var pending []models.Friendship
	database.DB.Where("addressee_id = ? AND status = ?", userID, "pending").Find(&pending)

	return c.JSON(fiber.Map{
		"friends": friends,
		"pending": pending,
	})
}

// RemoveFriend deletes a friendship in either direction
func RemoveFriend(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	friendID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	result := database.DB.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		userID, friendID, friendID, userID,
	).Delete(&models.Friendship{})

	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Friendship not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetRanking returns the XP leaderboard across the user and their friends
func GetRanking(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	ids := append(acceptedFriendIDs(userID), userID)
	var users []models.User
	database.DB.Where("id IN ?", ids).
		Select("id, name, avatar_url, total_xp, current_streak").
		Find(&users)

	entries := make([]models.RankingEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.RankingEntry{
			UserID:        u.ID,
			Name:          u.Name,
			AvatarURL:     u.AvatarURL,
			TotalXP:       u.TotalXP,
			CurrentStreak: u.CurrentStreak,
			IsMe:          u.ID == userID,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalXP != entries[j].TotalXP {
			return entries[i].TotalXP > entries[j].TotalXP
		}
		return entries[i].Name < entries[j].Name
	})

	return c.JSON(entries)
}

// acceptedFriendIDs collects the other side of every accepted friendship
func acceptedFriendIDs(userID uuid.UUID) []uuid.UUID {
	var friendships []models.Friendship
	database.DB.Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, "accepted").Find(&friendships)

	ids := make([]uuid.UUID, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == userID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	return ids
}
