package handlers

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tryly/tryly-api/internal/middleware"
)

// Event types sent over WebSocket
const (
	EventMissionCompleted = "mission_completed"
	EventTrailCompleted   = "trail_completed"
	EventFriendRequest    = "friend_request"
	EventFriendAccepted   = "friend_accepted"
)

// WSEvent is the JSON message sent to connected clients
type WSEvent struct {
	Type   string      `json:"type"`
	UserID string      `json:"userId"`
	Data   interface{} `json:"data,omitempty"`
}

// connection wraps a websocket connection with its user ID
type connection struct {
	conn   *websocket.Conn
	userID uuid.UUID
}

// Hub manages WebSocket connections per user; each user subscribes to their
// own activity feed and friends' events are pushed into it.
type Hub struct {
	mu    sync.RWMutex
	feeds map[uuid.UUID]map[*connection]bool // userID -> set of connections
}

// Global hub instance
var WS = &Hub{
	feeds: make(map[uuid.UUID]map[*connection]bool),
}

func (h *Hub) register(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.feeds[conn.userID] == nil {
		h.feeds[conn.userID] = make(map[*connection]bool)
	}
	h.feeds[conn.userID][conn] = true
	log.Printf("WS register: user %s connected (total: %d)", conn.userID, len(h.feeds[conn.userID]))
}

func (h *Hub) unregister(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.feeds[conn.userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.feeds, conn.userID)
		}
	}
}

// Send delivers an event to every open connection of one user.
func (h *Hub) Send(userID uuid.UUID, event WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.feeds[userID]
	if !ok {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("WS send marshal error: %v", err)
		return
	}

	for c := range conns {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("WS write error: %v", err)
		}
	}
}

// WebSocketUpgrade is the middleware that checks the upgrade request and validates JWT
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Authenticate via query param: ?token=<jwt>
		tokenString := c.Query("token")
		if tokenString == "" {
			// Also check Authorization header for non-browser clients
			authHeader := c.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "your-secret-key-change-in-production"
		}

		token, err := jwt.ParseWithClaims(tokenString, &middleware.Claims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*middleware.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		c.Locals("userId", claims.UserID)
		return c.Next()
	}
}

// HandleWebSocket handles a user's activity-feed connection
func HandleWebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}

	conn := &connection{conn: c, userID: userID}
	WS.register(conn)
	defer WS.unregister(conn)

	// Keep connection alive, read messages (client sends pings/keepalives)
	for {
		_, _, err := c.ReadMessage()
		if err != nil {
			break
		}
	}
}
