package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/krishkalaria12/snap-studio/auth"
	handler "github.com/krishkalaria12/snap-studio/handlers"
	"github.com/krishkalaria12/snap-studio/middleware"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, tokens *auth.TokenService) {
	api := app.Group("/api", logger.New())
	api.Get("/health", handler.Healthcheck)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/logout", h.Logout)

	protected := api.Group("", middleware.AuthMiddleware(tokens))

	// User
	protected.Get("/user/me", h.GetMe)

	// Generations
	protected.Post("/generations", h.GenerateImage)
	protected.Get("/generations", h.GetUserImageGenerations)
	protected.Get("/generations/:id/download", h.DownloadImage)

	// Gallery
	protected.Post("/gallery", h.SaveToGallery)
	protected.Get("/gallery", h.GetUserGallery)
	protected.Patch("/gallery/:id", h.UpdateGalleryImage)
	protected.Delete("/gallery/:id", h.DeleteGalleryImage)
	protected.Post("/gallery/:id/share", h.ShareImage)
}
