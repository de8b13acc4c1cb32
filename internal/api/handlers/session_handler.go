package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/service"
)

type SessionHandler struct {
	s   service.SessionService
	cfg config.Config
}

func NewSessionHandler(cfg config.Config, service service.SessionService) *SessionHandler {
	return &SessionHandler{s: service, cfg: cfg}
}

// EndSession discards the session and every post it holds.
func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	if err := h.s.End(c.Context(), sessionID); err != nil {
		return errorResponse(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1, // Delete cookie
	})

	return c.SendStatus(fiber.StatusNoContent)
}
