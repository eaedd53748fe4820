package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/tryly/tryly-api/internal/handlers"
	"github.com/tryly/tryly-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/google", handlers.GoogleLogin)

	// Payment provider callbacks carry no user token
	api.Post("/billing/webhook", handlers.BillingWebhook)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	// Trail catalog
	protected.Get("/trails", handlers.GetTrails)
	protected.Get("/trails/:id", handlers.GetTrail)
	protected.Get("/trails/:id/missions", handlers.GetMissions)

	// Daily mission flow
	progress := protected.Group("/progress")
	progress.Get("/", handlers.GetProgress)
	progress.Post("/accept", handlers.AcceptMission)
	progress.Post("/reflection", handlers.SubmitReflection)
	progress.Post("/advance", handlers.AdvanceTrail)

	protected.Get("/reflections", handlers.GetReflections)

	// Friends & ranking
	friends := protected.Group("/friends")
	friends.Get("/", handlers.ListFriends)
	friends.Post("/", handlers.RequestFriend)
	friends.Post("/:id/accept", handlers.AcceptFriend)
	friends.Delete("/:userId", handlers.RemoveFriend)
	protected.Get("/ranking", handlers.GetRanking)

	// Billing
	protected.Post("/billing/checkout", handlers.CreateCheckout)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)

	// Avatar upload
	protected.Post("/upload", handlers.UploadAvatar)

	// Admin console
	admin := api.Group("/admin", middleware.Protected(), middleware.AdminOnly())
	admin.Post("/trails", handlers.CreateTrail)
	admin.Put("/trails/reorder", handlers.ReorderTrails)
	admin.Put("/trails/:id", handlers.UpdateTrail)
	admin.Delete("/trails/:id", handlers.DeleteTrail)
	admin.Post("/trails/:id/missions", handlers.CreateMission)
	admin.Put("/missions/:missionId", handlers.UpdateMission)
	admin.Delete("/missions/:missionId", handlers.DeleteMission)
	admin.Get("/users", handlers.ListUsers)
	admin.Post("/users/:id/reset-progress", handlers.ResetUserProgress)
	admin.Delete("/users/:id", handlers.DeleteUser)
	admin.Post("/nudges", handlers.SendNudges)

	// WebSocket for real-time friend activity
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws", websocket.New(handlers.HandleWebSocket))
}
