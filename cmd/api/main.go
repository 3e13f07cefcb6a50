package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/config"
	"alfredoptarigan/ai-mentorship/internal/handlers"
	"alfredoptarigan/ai-mentorship/internal/logger"
	"alfredoptarigan/ai-mentorship/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zlog.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Initialize Gemini AI. Without a key the API still serves, and every
	// generation request reports the missing credential.
	ctx := context.Background()
	var generator services.TextGenerator
	generator, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature, zlog)
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		zlog.Warn("⚠️ GEMINI_API_KEY is not set, generation requests will fail")
		generator = nil
	case err != nil:
		zlog.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	default:
		zlog.Info("✅ Gemini AI initialized successfully", zap.String("model", cfg.Gemini.Model))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := services.NewMetrics(registry)
	if err != nil {
		zlog.Fatal("❌ Failed to register metrics", zap.Error(err))
	}

	// Initialize services
	assessmentService := services.NewAssessmentService(generator, metrics, zlog, services.AssessmentOptions{
		Timeout:                  cfg.Gemini.Timeout,
		FallbackOnGeneratorError: cfg.Assessment.FallbackOnGeneratorError,
	})
	zlog.Info("✅ Services initialized successfully")

	// Initialize Handlers
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService, zlog)
	reportHandler := handlers.NewReportHandler(time.Now)
	zlog.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Mentorship Assessment API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"time":      time.Now(),
			"generator": generator != nil,
		})
	})

	assessment := api.Group("/assessment")
	if cfg.Auth.JWTSecret != "" {
		assessment.Use(handlers.RequireBearer(cfg.Auth.JWTSecret))
		zlog.Info("🔒 Bearer token required for /api/assessment")
	}
	assessment.Post("/", assessmentHandler.HandleAssessment)
	assessment.Post("/analyze", assessmentHandler.HandleAnalyze)
	assessment.Post("/report", reportHandler.HandleReport)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Mentorship Assessment API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/assessment",
				"POST /api/assessment/analyze",
				"POST /api/assessment/report",
				"GET /api/health",
				"GET /metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
