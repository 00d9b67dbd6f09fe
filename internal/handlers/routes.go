package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/repositories"
	"coldmail/job-application-helper/internal/services"
)

type RouterConfig struct {
	Sessions     repositories.SessionRepository
	Generator    services.GeneratorService
	Uploads      services.UploadReader
	Extractor    services.DocumentExtractor
	CookieName   string
	SessionTTL   time.Duration
	RateLimitMax int
}

func RegisterRoutes(app *fiber.App, cfg RouterConfig) {
	extractHandler := NewExtractHandler(cfg.Uploads, cfg.Extractor)
	summaryHandler := NewSummaryHandler(cfg.Generator)
	generateHandler := NewGenerateHandler(cfg.Generator, cfg.Sessions, cfg.Uploads, cfg.Extractor)
	historyHandler := NewHistoryHandler()
	sessionHandler := NewSessionHandler(cfg.Sessions, cfg.CookieName)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/options", func(c *fiber.Ctx) error {
		return c.JSON(models.OptionsResponse{
			Tones:                  models.Tones,
			EmailFormats:           models.EmailFormats,
			DefaultCreativity:      models.DefaultCreativity,
			DefaultPersonalization: models.DefaultPersonalization,
			AcceptedUploads:        []string{models.MIMEPDF, models.MIMEDOCX},
		})
	})

	api.Post("/extract", extractHandler.HandleExtract)

	withSession := SessionMiddleware(cfg.Sessions, cfg.CookieName, cfg.SessionTTL)

	// Completion-backed routes are rate limited per client IP
	var limit fiber.Handler = func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimitMax > 0 {
		limit = limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: time.Minute,
		})
	}

	api.Post("/summary", limit, summaryHandler.HandleSummary)
	api.Post("/generate", limit, withSession, generateHandler.HandleGenerate)
	api.Get("/history", withSession, historyHandler.HandleList)
	api.Get("/history/:id/download", withSession, historyHandler.HandleDownload)
	api.Delete("/session", sessionHandler.HandleEnd)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Cold Email Generator API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/options",
				"POST /api/v1/extract",
				"POST /api/v1/summary",
				"POST /api/v1/generate",
				"GET /api/v1/history",
				"GET /api/v1/history/:id/download",
				"DELETE /api/v1/session",
			},
		})
	})
}
