package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/snap-studio/auth"
	"github.com/krishkalaria12/snap-studio/middleware"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	res, err := h.auth.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, res.Token)
	return success(c, fiber.StatusCreated, "User registered successfully", res)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var input LoginData
	if err := parseBody(c, &input); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, res.Token)
	return success(c, fiber.StatusOK, "Login successful", res)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.JWTCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: "Lax",
	})

	return success(c, fiber.StatusOK, "Logout successful", nil)
}

func (h *Handler) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.JWTCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cookie.Duration),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: "Lax",
	})
}
