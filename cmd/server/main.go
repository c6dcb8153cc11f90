package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/call"
	"github.com/shihab-newaz/ai-interview/internal/config"
	"github.com/shihab-newaz/ai-interview/internal/feedback"
	"github.com/shihab-newaz/ai-interview/internal/generator"
	"github.com/shihab-newaz/ai-interview/internal/handlers"
	"github.com/shihab-newaz/ai-interview/internal/jobs"
	"github.com/shihab-newaz/ai-interview/internal/llm"
	_ "github.com/shihab-newaz/ai-interview/internal/llm/gemini"
	"github.com/shihab-newaz/ai-interview/internal/metrics"
	"github.com/shihab-newaz/ai-interview/internal/prompts"
	mongorepo "github.com/shihab-newaz/ai-interview/internal/repositories/mongo"
	"github.com/shihab-newaz/ai-interview/internal/routers"
	"github.com/shihab-newaz/ai-interview/internal/utils"
	"github.com/shihab-newaz/ai-interview/internal/voice"
)

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func main() {
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded", zap.String("provider", cfg.Provider))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// model provider based on configuration
	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize model provider", zap.Error(err))
	}

	// document store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, err := mongorepo.NewClient(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	interviewRepo, err := mongorepo.NewInterviewRepo(mongoClient)
	if err != nil {
		logger.Fatal("Failed to initialize interview repository", zap.Error(err))
	}
	feedbackRepo, err := mongorepo.NewFeedbackRepo(mongoClient)
	if err != nil {
		logger.Fatal("Failed to initialize feedback repository", zap.Error(err))
	}
	userRepo, err := mongorepo.NewUserRepo(mongoClient)
	if err != nil {
		logger.Fatal("Failed to initialize user repository", zap.Error(err))
	}

	// lifecycle events are optional; a missing Redis address disables them
	var publisher *call.Publisher
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, lifecycle events disabled", zap.Error(err))
		} else {
			publisher = call.NewPublisher(rdb)
			logger.Info("Lifecycle event publishing enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	// domain services
	generatorService := generator.NewService(provider, promptManager, interviewRepo, logger)
	synthesizer := feedback.NewSynthesizer(provider, promptManager, feedbackRepo, logger)

	dialer := voice.NewClient(cfg.VoiceURL, logger)
	callManager := call.NewManager(dialer, generatorService, synthesizer, publisher, logger, call.Options{
		GenerateTarget:    cfg.VoiceGenerateRef,
		PracticeTarget:    cfg.VoicePracticeRef,
		RedirectDelay:     cfg.RedirectDelay,
		RedirectFailDelay: cfg.RedirectFailDelay,
	})

	// periodic cleanup of terminal call sessions
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.SessionIdleTimeout / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				callManager.Sweep(cfg.SessionIdleTimeout)
			case <-sweepDone:
				return
			}
		}
	}()

	// nightly feedback export
	exporterConfig := &jobs.ExporterConfig{
		Schedule:      getEnv("FEEDBACK_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:     getEnv("FEEDBACK_EXPORT_DIR", "./exports"),
		ExportEnabled: getEnv("FEEDBACK_EXPORT_ENABLED", "false") == "true",
	}
	exporterJob := jobs.NewFeedbackExporterJob(feedbackRepo, exporterConfig, logger)
	if err := exporterJob.Start(); err != nil {
		logger.Error("Failed to start feedback exporter job", zap.Error(err))
	}

	// handlers
	interviewHandler := handlers.NewInterviewHandler(generatorService, interviewRepo, logger)
	feedbackHandler := handlers.NewFeedbackHandler(synthesizer, feedbackRepo, logger)
	callHandler := handlers.NewCallHandler(callManager, logger)
	userHandler := handlers.NewUserHandler(userRepo, logger)
	healthHandler := handlers.NewHealthHandler(provider, promptManager, cfg)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware("interview"))
	router.Handle("/metrics", metrics.Handler())

	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, cfg.JWTSecret)
	routers.FeedbackRoutes(router, feedbackHandler, cfg.JWTSecret)
	routers.CallRoutes(router, callHandler, cfg.JWTSecret)
	routers.UserRoutes(router, userHandler, cfg.JWTSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	exporterJob.Stop()
	close(sweepDone)

	// graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("failed to close Redis connection", zap.Error(err))
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
