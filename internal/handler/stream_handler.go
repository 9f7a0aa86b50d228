package handler

import (
	"os"
	"time"

	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/internal/service"
	internalWS "compliance-screening-be/internal/websocket"
	"compliance-screening-be/pkg/events"
	pktNats "compliance-screening-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StreamHandler exposes the live re-screening feed: a websocket per
// organization plus a debug endpoint to inject profile-update events.
type StreamHandler struct {
	streamService service.IStreamService
	publisher     *pktNats.Publisher
	hub           *internalWS.Hub
	logger        logger.ILogger
}

func NewStreamHandler(streamService service.IStreamService, pub *pktNats.Publisher, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		streamService: streamService,
		publisher:     pub,
		hub:           hub,
		logger:        log,
	}
}

// ServeWs upgrades the connection and attaches it to the hub as a watcher
// of one organization's screening results.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	// Token source: query param for browsers, Authorization header for tooling
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("StreamHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	orgID, err := uuid.Parse(c.Params("orgId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid organization ID"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting WebSocket session", map[string]interface{}{"organization_id": orgID})
			internalWS.ServeWs(h.hub, conn, orgID)
			h.logger.Info("StreamHandler", "WebSocket session ended", map[string]interface{}{"organization_id": orgID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// DebugTriggerProfileUpdate injects an ORGANIZATION_PROFILE_UPDATED event
// so the push pipeline can be exercised without a real profile edit.
func (h *StreamHandler) DebugTriggerProfileUpdate(c *fiber.Ctx) error {
	type Request struct {
		OrganizationId uuid.UUID `json:"organization_id"`
		ChangedFields  []string  `json:"changed_fields"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.OrganizationId == uuid.Nil || len(req.ChangedFields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "organization_id and changed_fields are required"})
	}

	if h.publisher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Event publisher not configured"})
	}

	evt := events.BaseEvent{
		Type: "ORGANIZATION_PROFILE_UPDATED",
		Data: map[string]interface{}{
			"organization_id": req.OrganizationId,
			"changed_fields":  req.ChangedFields,
		},
		OccurredAt: time.Now(),
	}

	if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "Event Published", "event": evt})
}

// RegisterRoutes registers the stream routes.
func (h *StreamHandler) RegisterRoutes(router fiber.Router) {
	debug := router.Group("/debug")
	debug.Post("/trigger-profile-update", h.DebugTriggerProfileUpdate)

	// WebSocket
	router.Get("/ws/screening/:orgId", h.ServeWs)
}
