package middleware

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/api/handlers"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

type SessionMiddleware struct {
	s   service.SessionService
	cfg config.Config
}

func NewSessionMiddleware(cfg config.Config, service service.SessionService) *SessionMiddleware {
	return &SessionMiddleware{s: service, cfg: cfg}
}

// SessionMiddleware resolves the session named by the cookie, starting a fresh
// one when the cookie is missing, invalid, or names a discarded session.
func (m *SessionMiddleware) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := c.Cookies(m.cfg.CookieName); tokenString != "" {
			st, refreshed, err := m.s.Resolve(c.Context(), tokenString)
			if err == nil {
				if refreshed != "" {
					m.setCookie(c, refreshed)
				}
				c.Locals(handlers.SessionIDKey, st.Session.ID)
				return c.Next()
			}
			log.Printf("Session resolution failed: %v", err)
		}

		st, token, err := m.s.Create(c.Context())
		if errors.Is(err, repository.ErrSessionLimit) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Too many active sessions, try again later",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unable to start session",
			})
		}

		m.setCookie(c, token)
		c.Locals(handlers.SessionIDKey, st.Session.ID)
		return c.Next()
	}
}

func (m *SessionMiddleware) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.cfg.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
