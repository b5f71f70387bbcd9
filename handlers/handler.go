package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/snap-studio/apperr"
	"github.com/krishkalaria12/snap-studio/auth"
	"github.com/krishkalaria12/snap-studio/gallery"
	"github.com/krishkalaria12/snap-studio/generation"
)

// CookieOptions controls the JWT cookie set on register and login.
type CookieOptions struct {
	Secure   bool
	Duration time.Duration
}

type Handler struct {
	auth        *auth.Service
	generations *generation.Service
	gallery     *gallery.Service
	cookie      CookieOptions
}

func New(authService *auth.Service, generations *generation.Service, galleryService *gallery.Service, cookie CookieOptions) *Handler {
	if cookie.Duration <= 0 {
		cookie.Duration = 24 * time.Hour
	}
	return &Handler{
		auth:        authService,
		generations: generations,
		gallery:     galleryService,
		cookie:      cookie,
	}
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// ErrorHandler turns every error returned by a handler into the standard
// error envelope. Only app errors expose their message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if appErr, ok := apperr.As(err); ok {
		status = statusFor(appErr.Code)
		message = appErr.Message
	} else if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation:
		return fiber.StatusBadRequest
	case apperr.CodeAuthentication:
		return fiber.StatusUnauthorized
	case apperr.CodeAccessDenied:
		return fiber.StatusForbidden
	case apperr.CodeNotFound:
		return fiber.StatusNotFound
	case apperr.CodeConflict:
		return fiber.StatusConflict
	case apperr.CodeInvalidState:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return n, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}
