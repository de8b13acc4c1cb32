package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/api/handlers"
	"github.com/maheshrc27/postcal/internal/api/middleware"
	"github.com/maheshrc27/postcal/internal/service"
)

type Services struct {
	Session  service.SessionService
	Post     service.PostService
	Settings service.SettingsService
	Generate service.GenerateService
	ICS      service.ICSService
}

// NewApp builds the fiber app with every route registered. asynqClient may be nil.
func NewApp(cfg config.Config, s Services, asynqClient *asynq.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    10 * 1024 * 1024, // 10 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// calendar lookups hold no state and are served before sessions are attached
	cal := handlers.NewCalendarHandler(s.Post)
	calendar := app.Group("/api/calendar")
	calendar.Get("/next", cal.NextWeekday)
	calendar.Get("/:year<int>", cal.YearGrid)
	calendar.Get("/:year<int>/:month<int>", cal.MonthGrid)

	sessionMiddleware := middleware.NewSessionMiddleware(cfg, s.Session)

	api := app.Group("/api")
	api.Use(sessionMiddleware.SessionMiddleware())

	api.Post("/calendar/select", cal.SelectDate)

	post := handlers.NewPostHandler(s.Post, s.ICS, asynqClient)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts", post.CreatePost)
	api.Post("/posts/recurring", post.CreateRecurring)
	api.Get("/posts/export", post.ExportCSV)
	api.Post("/posts/import", post.ImportCSV)
	api.Get("/posts/calendar.ics", post.ExportICS)
	api.Put("/posts/:index", post.UpdatePost)

	generate := handlers.NewGenerateHandler(s.Generate)
	api.Post("/generate", generate.Generate)

	settings := handlers.NewSettingsHandler(s.Settings)
	api.Get("/settings", settings.GetSettingsInfo)
	api.Post("/settings", settings.UpdateSettings)

	session := handlers.NewSessionHandler(cfg, s.Session)
	api.Delete("/session", session.EndSession)

	return app
}
