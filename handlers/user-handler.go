package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/snap-studio/middleware"
)

func (h *Handler) GetMe(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	user, err := h.auth.Profile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "User found", user)
}
