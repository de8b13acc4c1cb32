package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postcal/internal/calendar"
	"github.com/maheshrc27/postcal/internal/postcsv"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

// SessionIDKey is the fiber Locals key the session middleware stores the session id under.
const SessionIDKey = "session_id"

func GetSessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(SessionIDKey).(string)
	return sessionID
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, calendar.ErrInvalidWeekday):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrIndexOutOfRange):
		return fiber.StatusNotFound
	case errors.Is(err, postcsv.ErrParse):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}

	var perr *postcsv.ParseError
	if errors.As(err, &perr) {
		body["line"] = perr.Line
		body["column"] = perr.Column
	}

	return c.Status(errorStatus(err)).JSON(body)
}
