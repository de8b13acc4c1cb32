package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type GenerateHandler struct {
	s service.GenerateService
}

func NewGenerateHandler(service service.GenerateService) *GenerateHandler {
	return &GenerateHandler{s: service}
}

// Generate drafts post content. A failing model is not an API error: the caller
// gets empty text plus a message and can keep editing by hand.
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	var req transfer.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	text, err := h.s.Generate(c.Context(), req.Prompt)
	if errors.Is(err, service.ErrRemoteService) {
		return c.Status(fiber.StatusOK).JSON(transfer.GenerateResponse{
			Text:  "",
			Error: "Content generation is unavailable: " + err.Error(),
		})
	}
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(transfer.GenerateResponse{Text: text})
}
