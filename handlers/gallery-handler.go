package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/snap-studio/gallery"
	"github.com/krishkalaria12/snap-studio/middleware"
)

func (h *Handler) SaveToGallery(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	var input gallery.SaveInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	image, err := h.gallery.SaveToGallery(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, "Image saved to gallery", image)
}

func (h *Handler) GetUserGallery(c *fiber.Ctx) error {
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

	images, err := h.gallery.ListUserGallery(c.UserContext(), userID, limit, offset)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Gallery found", images)
}

func (h *Handler) UpdateGalleryImage(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input gallery.UpdateInput
	if len(c.Body()) > 0 {
		if err := parseBody(c, &input); err != nil {
			return err
		}
	}

	image, err := h.gallery.UpdateGalleryImage(c.UserContext(), id, userID, input)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Gallery image updated", image)
}

func (h *Handler) DeleteGalleryImage(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.gallery.DeleteGalleryImage(c.UserContext(), id, userID); err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Gallery image deleted", fiber.Map{"success": true})
}

func (h *Handler) ShareImage(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return err
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	link, err := h.gallery.ShareImage(c.UserContext(), id, userID)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Share link created", link)
}
