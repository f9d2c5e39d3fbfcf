package main

import (
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

	"alfredoptarigan/resume-tailor/internal/config"
	"alfredoptarigan/resume-tailor/internal/handlers"
	"alfredoptarigan/resume-tailor/internal/repositories"
	"alfredoptarigan/resume-tailor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	diffService := services.NewDiffService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize the tailoring pipeline
	tailorService := services.NewTailorService(
		sessionRepo,
		geminiService,
		qdrantService,
		diffService,
	)
	runner := services.NewRunner()
	log.Println("✅ Tailoring pipeline initialized")

	// Initialize Handlers
	tailorHandler := handlers.NewTailorHandler(
		docRepo,
		sessionRepo,
		storageService,
		pdfParser,
		tailorService,
		runner,
		cfg.Storage.MaxFileSize,
	)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, geminiService, qdrantService)
	downloadHandler := handlers.NewDownloadHandler(sessionRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName: "AI Resume Tailor API",
		// Tailoring runs three sequential LLM calls within one request
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/tailor", tailorHandler.HandleTailor)
	api.Get("/sessions/:id", sessionHandler.HandleGetSession)
	api.Get("/sessions/:id/related", sessionHandler.HandleGetRelated)
	api.Get("/sessions/:id/download/resume", downloadHandler.HandleDownloadResume)
	api.Get("/sessions/:id/download/review", downloadHandler.HandleDownloadReview)
	api.Get("/sessions/:id/download/review.json", downloadHandler.HandleDownloadReviewJSON)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Tailor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/tailor",
				"GET /api/v1/sessions/:id",
				"GET /api/v1/sessions/:id/related",
				"GET /api/v1/sessions/:id/download/resume",
				"GET /api/v1/sessions/:id/download/review",
				"GET /api/v1/sessions/:id/download/review.json",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
