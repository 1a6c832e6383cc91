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

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/handlers"
	"cvmentor/interview-api/internal/middleware"
	"cvmentor/interview-api/internal/repositories"
	"cvmentor/interview-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	cvRepo := repositories.NewCVRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	tokenService := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(userRepo, tokenService)
	log.Println("✅ Services initialized successfully")

	// Initialize analysis client
	analyzerService, err := services.NewAnalyzerService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize analyzer: %v", err)
	}
	log.Println("✅ Analyzer initialized successfully")

	// Initialize question generation client
	questionService := services.NewQuestionService(cfg.OpenAI)
	log.Println("✅ Question service initialized successfully")

	// Initialize lifecycle services
	analysisLifecycle := services.NewAnalysisLifecycleService(cvRepo, analysisRepo, analyzerService)
	interviewLifecycle := services.NewInterviewLifecycleService(cvRepo, analysisRepo, interviewRepo, questionService)
	log.Println("✅ Lifecycle services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	cvHandler := handlers.NewCVHandler(
		cvRepo,
		storageService,
		pdfParser,
		analysisLifecycle,
		cfg.Storage.MaxFileSize,
	)
	interviewHandler := handlers.NewInterviewHandler(interviewLifecycle)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	app.Use(middleware.RateLimiter(cfg.Server.RateLimitMax, cfg.Server.RateLimitWindow))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth
	users := api.Group("/users")
	users.Post("/", authHandler.HandleRegister)
	users.Post("/login", authHandler.HandleLogin)

	requireAuth := middleware.RequireAuth(tokenService)

	// CVs and analysis
	cvs := api.Group("/cv/cvs", requireAuth)
	cvs.Post("/", cvHandler.HandleUpload)
	cvs.Get("/", cvHandler.HandleList)
	cvs.Get("/:id", cvHandler.HandleGet)
	cvs.Put("/:id", cvHandler.HandleUpdate)
	cvs.Delete("/:id", cvHandler.HandleDelete)
	cvs.Post("/:id/analyze", cvHandler.HandleAnalyze)
	cvs.Get("/:id/analysis", cvHandler.HandleGetAnalysis)

	// Interviews
	interviews := api.Group("/interviews", requireAuth)
	interviews.Post("/start", interviewHandler.HandleStart)
	interviews.Get("/", interviewHandler.HandleList)
	interviews.Get("/:id", interviewHandler.HandleGet)
	interviews.Delete("/:id", interviewHandler.HandleDelete)
	interviews.Post("/:id/submit-answer", interviewHandler.HandleSubmitAnswer)
	interviews.Post("/:id/save-progress", interviewHandler.HandleSaveProgress)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/users",
				"POST /api/users/login",
				"POST /api/cv/cvs",
				"POST /api/cv/cvs/:id/analyze",
				"GET /api/cv/cvs/:id/analysis",
				"POST /api/interviews/start",
				"POST /api/interviews/:id/submit-answer",
				"POST /api/interviews/:id/save-progress",
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
