package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/snap-studio/generation"
	"github.com/krishkalaria12/snap-studio/middleware"
	"github.com/krishkalaria12/snap-studio/models"
)

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) GenerateImage(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	var req GenerateImageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	gen, err := h.generations.GenerateImage(c.UserContext(), userID, req.Prompt)
	if err != nil {
		return err
	}

	message := "Successfully generated image"
	if gen.Status == models.StatusFailed {
		message = "Image generation failed"
	}
	return success(c, fiber.StatusOK, message, gen)
}

func (h *Handler) GetUserImageGenerations(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	generations, err := h.generations.ListUserGenerations(c.UserContext(), userID, generation.ListInput{
		Status: models.GenerationStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Image generations found", generations)
}

func (h *Handler) DownloadImage(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	dl, err := h.generations.DownloadImage(c.UserContext(), id, userID)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Download ready", fiber.Map{
		"downloadUrl": dl.URL,
		"filename":    dl.Filename,
	})
}
