package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	settingsInfo, err := h.s.GetSettingsInfo(c.Context(), sessionID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(settingsInfo)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	var settings transfer.SettingsUpdate
	err := c.BodyParser(&settings)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	updated, err := h.s.UpdateSettings(c.Context(), sessionID, settings.PostingTime, settings.Category)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(updated)
}
