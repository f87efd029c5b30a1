package handler

import (
	"context"
	"encoding/json"
	"os"

	"github.com/eneaslivv/livvos/internal/dto"
	"github.com/eneaslivv/livvos/internal/pkg/logger"
	"github.com/eneaslivv/livvos/internal/service"
	internalWS "github.com/eneaslivv/livvos/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VoiceHandler owns the realtime voice channel: one websocket per open
// conversation, utterance frames in, spoken replies out.
type VoiceHandler struct {
	assistantService service.IAssistantService
	hub              *internalWS.Hub
	logger           logger.ILogger
}

func NewVoiceHandler(assistantService service.IAssistantService, hub *internalWS.Hub, log logger.ILogger) *VoiceHandler {
	h := &VoiceHandler{
		assistantService: assistantService,
		hub:              hub,
		logger:           log,
	}
	hub.OnInbound(h.handleFrame)
	return h
}

// ServeWs upgrades the connection after validating the JWT. Browsers
// cannot set headers on websocket handshakes, so the token also rides
// in the query string.
func (h *VoiceHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse JWT
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Ensure Signing Method is HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("VoiceHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. Extract UserID from Claim
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	// 4. Parse the conversation this channel is bound to
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("VoiceHandler", "Starting voice session", map[string]interface{}{"user_id": userID, "session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, userID, sessionID)
			h.logger.Info("VoiceHandler", "Voice session ended", map[string]interface{}{"user_id": userID, "session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// handleFrame runs one dialogue turn for an utterance frame and pushes
// the reply back down the same channel.
func (h *VoiceHandler) handleFrame(client *internalWS.Client, payload []byte) {
	var frame struct {
		Utterance string `json:"utterance"`
	}
	if err := json.Unmarshal(payload, &frame); err != nil {
		h.logger.Warn("VoiceHandler", "Dropping malformed frame", map[string]interface{}{"user_id": client.UserID, "error": err})
		return
	}

	res, err := h.assistantService.ProcessTurn(context.Background(), client.UserID, &dto.ProcessTurnRequest{
		SessionId: client.SessionID,
		Utterance: frame.Utterance,
	})
	if err != nil {
		h.logger.Error("VoiceHandler", "Turn failed", map[string]interface{}{"user_id": client.UserID, "error": err})
		data, _ := json.Marshal(map[string]interface{}{
			"type": "turn_error",
			"data": map[string]string{"message": err.Error()},
		})
		client.Send <- data
		return
	}

	data, _ := json.Marshal(map[string]interface{}{
		"type": "turn_result",
		"data": res,
	})
	client.Send <- data
}

// RegisterRoutes registers the voice channel route.
func (h *VoiceHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/voice/v1/:sessionId", h.ServeWs)
}
