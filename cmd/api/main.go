package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"coldmail/job-application-helper/internal/config"
	"coldmail/job-application-helper/internal/handlers"
	"coldmail/job-application-helper/internal/repositories"
	"coldmail/job-application-helper/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize session store
	sessions, err := newSessionRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize session store: %v", err)
	}
	log.Printf("✅ Session store initialized (%s)\n", cfg.Session.Store)

	// Initialize Gemini AI
	completion, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:        cfg.Gemini.APIKey,
		Model:         cfg.Gemini.Model,
		MaxConcurrent: cfg.Gemini.MaxConcurrent,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized successfully (model: %s)\n", completion.Model())

	// Initialize services
	generator := services.NewGeneratorService(completion)
	uploads := services.NewUploadReader(cfg.Storage.MaxFileSize)
	extractor := services.NewDocumentExtractor()
	log.Println("✅ Services initialized successfully")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Cold Email Generator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	handlers.RegisterRoutes(app, handlers.RouterConfig{
		Sessions:     sessions,
		Generator:    generator,
		Uploads:      uploads,
		Extractor:    extractor,
		CookieName:   cfg.Session.CookieName,
		SessionTTL:   cfg.Session.TTL,
		RateLimitMax: cfg.Server.RateLimitMax,
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		cancel()
		if err := sessions.Close(); err != nil {
			log.Printf("⚠️  Failed to close session store: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newSessionRepository(ctx context.Context, cfg *config.Config) (repositories.SessionRepository, error) {
	if cfg.Session.Store == config.SessionStoreValkey {
		return repositories.NewValkeySessionRepository(ctx, cfg.Valkey.Addr, cfg.Valkey.Password, cfg.Session.TTL)
	}

	repo := repositories.NewMemorySessionRepository(cfg.Session.TTL)
	repo.StartSweeper(ctx, time.Minute)
	return repo, nil
}
