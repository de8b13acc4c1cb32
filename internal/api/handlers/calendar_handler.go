package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postcal/internal/calendar"
	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

const (
	minYear = 1
	maxYear = 9999
)

type CalendarHandler struct {
	ps  service.PostService
	now func() time.Time
}

func NewCalendarHandler(ps service.PostService) *CalendarHandler {
	return &CalendarHandler{ps: ps, now: time.Now}
}

func (h *CalendarHandler) YearGrid(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year < minYear || year > maxYear {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	return c.JSON(fiber.Map{
		"year":   year,
		"months": calendar.YearGrid(year),
	})
}

func (h *CalendarHandler) MonthGrid(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year < minYear || year > maxYear {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}
	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid month",
		})
	}

	weeks, err := calendar.MonthGrid(year, time.Month(month))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(calendar.Month{
		Year:  year,
		Month: time.Month(month),
		Name:  time.Month(month).String(),
		Weeks: weeks,
	})
}

// NextWeekday answers ?weekday=N (0=Monday) or ?weekday=Name with the next such
// date after today, or after ?from=YYYY-MM-DD.
func (h *CalendarHandler) NextWeekday(c *fiber.Ctx) error {
	raw := c.Query("weekday")
	weekday, err := strconv.Atoi(raw)
	if err != nil {
		weekday, err = calendar.ParseWeekday(raw)
		if err != nil {
			return errorResponse(c, err)
		}
	}

	y, m, d := h.now().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if s := c.Query("from"); s != "" {
		from, err = time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid from date, want YYYY-MM-DD",
			})
		}
	}

	next, err := calendar.NextWeekday(from, weekday)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"from":    from.Format("2006-01-02"),
		"weekday": calendar.WeekdayNames[weekday],
		"date":    next.Format("2006-01-02"),
	})
}

func (h *CalendarHandler) SelectDate(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	var sd transfer.SelectDate
	if err := c.BodyParser(&sd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	view, err := h.ps.SelectDate(c.Context(), sessionID, sd.Date)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(view)
}
