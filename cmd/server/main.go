package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/api"
	job "github.com/maheshrc27/postcal/internal/jobs"
	"github.com/maheshrc27/postcal/internal/queue"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
	"github.com/maheshrc27/postcal/pkg/utils"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	if cfg.SecretKey == "" {
		key, err := utils.GenerateRandomKey(32)
		if err != nil {
			log.Fatalf("Failed to generate secret key: %v", err)
		}
		cfg.SecretKey = key
		log.Println("Warning: SECRET_KEY not set, sessions will not survive a restart")
	}

	sessionRepo := repository.NewSessionRepository()

	sessionService := service.NewSessionService(*cfg, sessionRepo)
	r2Service := service.NewR2Service(*cfg)
	postService := service.NewPostService(sessionService, r2Service)
	settingsService := service.NewSettingsService(sessionService)
	generateService := service.NewGenerateService(*cfg)
	icsService := service.NewICSService(sessionService)

	var client *asynq.Client
	var worker *asynq.Server
	if cfg.RedisURI != "" {
		redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
		client = asynq.NewClient(redisConn)
		defer client.Close()

		queueW := queue.NewQueue(sessionRepo)
		worker = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePostReminder, queueW.HandlePostReminderTask)

		go func() {
			log.Println("Starting the Asynq server...")
			if err := worker.Run(mux); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	} else {
		log.Println("REDIS_URI not set, post reminders are disabled")
	}

	app := api.NewApp(*cfg, api.Services{
		Session:  sessionService,
		Post:     postService,
		Settings: settingsService,
		Generate: generateService,
		ICS:      icsService,
	}, client)

	// cron jobs
	sweepJob := job.NewSessionSweepJob(sessionService)

	c := cron.New()
	if err := c.AddFunc(cfg.SessionSweep, sweepJob.SweepSessions); err != nil {
		log.Fatalf("Invalid SESSION_SWEEP schedule %q: %v", cfg.SessionSweep, err)
	}
	c.Start()
	defer c.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, worker)
}

func gracefulShutdown(app *fiber.App, worker *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	if worker != nil {
		worker.Shutdown()
	}
	log.Println("Server shutdown complete.")
}
