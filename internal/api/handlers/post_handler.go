package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postcal/internal/queue"
	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	ics         service.ICSService
	AsynqClient *asynq.Client
}

// NewPostHandler wires the post routes. asynqClient may be nil, in which case no
// reminders are scheduled.
func NewPostHandler(service service.PostService, ics service.ICSService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, ics: ics, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse post",
		})
	}

	index, view, err := h.s.AddPost(c.Context(), sessionID, &pc)
	if err != nil {
		return errorResponse(c, err)
	}

	h.scheduleReminder(c, sessionID, index)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"index": index,
		"view":  view,
	})
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post index",
		})
	}

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse post",
		})
	}

	view, err := h.s.UpdatePost(c.Context(), sessionID, index, &pc)
	if err != nil {
		return errorResponse(c, err)
	}

	h.scheduleReminder(c, sessionID, index)

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *PostHandler) CreateRecurring(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	var rc transfer.RecurringCreation
	if err := c.BodyParser(&rc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse post",
		})
	}

	indices, view, err := h.s.AddRecurring(c.Context(), sessionID, &rc)
	if err != nil {
		return errorResponse(c, err)
	}

	for _, index := range indices {
		h.scheduleReminder(c, sessionID, index)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"indices": indices,
		"view":    view,
	})
}

// ListPosts shows the selected date's posts, or those of ?date=YYYY-MM-DD, or all
// of them with ?date=all.
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	view, err := h.s.ListPosts(c.Context(), sessionID, c.Query("date"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *PostHandler) ExportCSV(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	export, err := h.s.ExportCSV(c.Context(), sessionID)
	if err != nil {
		return errorResponse(c, err)
	}

	if export.ArchiveURL != "" {
		c.Set("X-Archive-URL", export.ArchiveURL)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(fmt.Sprintf("scheduled_posts_%s.csv", time.Now().Format("20060102")))
	return c.Status(fiber.StatusOK).Send(export.Data)
}

// ImportCSV accepts a multipart "file" field or the raw CSV as the request body.
func (h *PostHandler) ImportCSV(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	data, err := uploadedFile(c)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read uploaded file",
		})
	}
	if len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	result, err := h.s.ImportCSV(c.Context(), sessionID, data)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) ExportICS(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	feed, err := h.ics.Export(c.Context(), sessionID)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Attachment("scheduled_posts.ics")
	return c.Status(fiber.StatusOK).SendString(feed)
}

func uploadedFile(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// not multipart, or no file field
		return c.Body(), nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// scheduleReminder enqueues a reminder for posts that carry a notification email
// and are still in the future.
func (h *PostHandler) scheduleReminder(c *fiber.Ctx, sessionID string, index int) {
	if h.AsynqClient == nil {
		return
	}

	post, err := h.s.GetPost(c.Context(), sessionID, index)
	if err != nil || post.Email == "" {
		return
	}

	processAt := queue.ReminderTime(post.ScheduledAt)
	if processAt.Before(time.Now()) {
		return
	}

	err = queue.EnqueueReminder(h.AsynqClient, queue.NewReminderPayload(sessionID, index, *post), processAt)
	if err != nil {
		slog.Error("Error scheduling reminder", "err", err)
	}
}
