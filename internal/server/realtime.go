package server

import (
	"log/slog"

	"storyhub/internal/middleware"
	"storyhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// requireUpgrade rejects plain HTTP requests to websocket routes.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(models.ErrorResponse{
			Error: "Websocket upgrade required",
			Code:  models.CodeValidation,
		})
	}
	return c.Next()
}

// FeedHandler streams activity events to one subscriber. Authentication is
// optional; anonymous subscribers see the same public feed.
func (s *Server) FeedHandler(conn *websocket.Conn) {
	userID, _ := conn.Locals("userID").(uint)

	client, err := s.feed.Hub().Register(userID, conn)
	if err != nil {
		middleware.Logger.Warn("feed connection rejected",
			slog.Uint64("user_id", uint64(userID)), slog.String("error", err.Error()))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}
