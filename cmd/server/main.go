package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/taskmaster-app/taskmaster-api/internal/config"
	"github.com/taskmaster-app/taskmaster-api/internal/database"
	"github.com/taskmaster-app/taskmaster-api/internal/handlers"
	"github.com/taskmaster-app/taskmaster-api/internal/logger"
	"github.com/taskmaster-app/taskmaster-api/internal/middleware"
	"github.com/taskmaster-app/taskmaster-api/internal/queue"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
	"github.com/taskmaster-app/taskmaster-api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			// Ignore sync errors in production
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "taskmaster-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Connect to database
	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_database")

	// Connect to Redis for rate limiting. Without a configured URL the
	// server runs with rate limiting disabled.
	var redisLimiter *middleware.RedisRateLimiter
	if cfg.RedisURL != "" {
		redisLimiter, err = middleware.NewRedisRateLimiter(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		defer func() {
			if err := redisLimiter.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_redis")
	} else {
		zapLogger.Warn("redis_not_configured_rate_limiting_disabled")
	}

	// Connect to RabbitMQ for the summary job queue. Retry with exponential
	// backoff to handle broker startup delays. Without a configured URL the
	// server runs with background summarization disabled; the chat handler
	// skips enqueueing when the queue is nil.
	var jobQueue queue.JobQueue
	if cfg.RabbitMQURL != "" {
		const maxRetries = 10
		const initialDelay = 2 * time.Second
		var lastErr error

		for attempt := 0; attempt < maxRetries; attempt++ {
			jobQueue, err = queue.NewRabbitMQQueue(cfg.RabbitMQURL, zapLogger)
			if err == nil {
				zapLogger.Info("connected_to_rabbitmq")
				defer func() {
					if err := jobQueue.Close(); err != nil {
						zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
					}
				}()
				break
			}

			lastErr = err
			delay := initialDelay * time.Duration(1<<uint(attempt))
			if delay > 30*time.Second {
				delay = 30 * time.Second
			}
			zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
				zap.Duration("retry_delay", delay),
			)
			time.Sleep(delay)
		}

		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
				zap.Int("max_retries", maxRetries),
				zap.Error(lastErr),
			)
		}
	} else {
		zapLogger.Warn("rabbitmq_not_configured_summary_jobs_disabled")
	}

	// Initialize repositories
	taskRepo := database.NewTaskRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	messageRepo := database.NewMessageRepository(db)
	summaryRepo := database.NewSummaryRepository(db)
	txRunner := database.NewSQLRunner(db)
	materializer := database.NewMaterializer(txRunner, zapLogger)

	// Initialize the AI extraction pipeline. Without an API key every
	// extraction resolves to the deterministic fallback path.
	var provider ai.CompletionProvider = ai.Unconfigured{}
	if cfg.OpenAIKey != "" {
		provider = ai.NewOpenAIInvoker(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, zapLogger, debugMode)
		zapLogger.Info("initialized_ai_provider", zap.String("model", cfg.AIModel))
	} else {
		zapLogger.Warn("openai_key_not_configured_running_fallback_only")
	}
	extractor := ai.NewExtractor(provider, zapLogger, ai.Settings{
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
		Timeout:     time.Duration(cfg.AITimeoutSeconds) * time.Second,
	})

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	importHandler := handlers.NewImportHandler(extractor)
	chatHandler := handlers.NewChatHandler(extractor, messageRepo, summaryRepo, txRunner, materializer, jobQueue, zapLogger)
	healthChecker := handlers.NewHealthChecker(db, jobQueue, extractor)

	// Setup router
	r := mux.NewRouter()

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("taskmaster-api"))
		zapLogger.Info("otel_middleware_enabled")
	}
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	// Public routes
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	// API v1 routes, all behind gateway identity
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.Identity(zapLogger))

	if redisLimiter != nil {
		rateLimitMW, err := middleware.RateLimit(redisLimiter, cfg.RateLimit)
		if err != nil {
			zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
		}
		apiRouter.Use(rateLimitMW)
	}

	tasksRouter := apiRouter.PathPrefix("/tasks").Subrouter()
	taskHandler.RegisterRoutes(tasksRouter)

	categoriesRouter := apiRouter.PathPrefix("/categories").Subrouter()
	categoryHandler.RegisterRoutes(categoriesRouter)

	aiRouter := apiRouter.PathPrefix("/ai").Subrouter()
	importHandler.RegisterRoutes(aiRouter)
	chatHandler.RegisterRoutes(aiRouter)

	// CORS wraps the whole router so preflight requests are answered
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.UserIDHeader},
		AllowCredentials: true,
	}).Handler(r)

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        corsHandler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   90 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}
