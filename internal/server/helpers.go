package server

import (
	"context"
	"errors"
	"log/slog"

	"storyhub/internal/middleware"
	"storyhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive id.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the request body into out, writing a 400 on failure.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// respondError logs internal failures with the request context and writes
// the standard error body.
func respondError(c *fiber.Ctx, err error) error {
	if appErr, ok := models.AsAppError(err); !ok || appErr.Code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", slog.String("error", err.Error()))
	}
	return models.RespondWithError(c, err)
}

// currentUserID returns the caller set by RequireAuth.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := middleware.UserID(c)
	return id
}

// eventContext keeps request-scoped log values but outlives the request.
func eventContext(c *fiber.Ctx) context.Context {
	return context.WithoutCancel(c.UserContext())
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return models.CodeUnauthenticated
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusConflict:
		return models.CodeConflict
	default:
		return models.CodeValidation
	}
}
