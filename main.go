package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"mindscape/be/internal/auth"
	"mindscape/be/internal/chatbot"
	"mindscape/be/internal/config"
	"mindscape/be/internal/conversation"
	"mindscape/be/internal/dashboard"
	HDb "mindscape/be/internal/db"
	"mindscape/be/internal/goal"
	"mindscape/be/internal/inspiration"
	"mindscape/be/internal/journal"
	"mindscape/be/internal/llm"
	"mindscape/be/internal/logger"
	"mindscape/be/internal/monitor"
	"mindscape/be/internal/mood"
	"mindscape/be/internal/session"
	"mindscape/be/internal/stream"
	"mindscape/be/internal/user"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig(envOr("MINDSCAPE_CONFIG", "config/config.yaml"), envOr("MINDSCAPE_ENV_FILE", "config/.env"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := []logger.Option{
		logger.WithLevel(cfg.Log.Level),
		logger.WithJSON(cfg.Log.JSON),
		logger.WithPretty(cfg.Log.Pretty),
	}
	if cfg.Server.Debug {
		opts = append(opts, logger.WithDebug(true))
	}
	log := logger.New(opts...)
	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.JWT.SecretKey == "" {
		return auth.ErrMissingSecret
	}

	// Initialize database
	db, err := HDb.NewHDb("postgres", cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()
	if cfg.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	aiProvider, err := newAIProvider(ctx, cfg)
	if err != nil {
		return err
	}

	guard, closeGuard, err := newGuard(cfg, log)
	if err != nil {
		return err
	}
	defer closeGuard()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     cfg.CORS.AllowHeaders,
		ExposeHeaders:    cfg.CORS.ExposeHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// User management
	userRepository := user.NewRepositoryImpl(db)
	userService := user.NewServiceImpl(userRepository, log)

	// Auth management
	authService := auth.NewServiceImpl(userService, cfg.JWT)
	auth.NewControllerImpl(authService).RegisterRoutes(router)

	protected := router.Group("/", auth.Middleware(authService))
	user.NewControllerImpl(userService).RegisterRoutes(protected)

	// Chat completions
	chatService := chatbot.NewServiceImpl(aiProvider, cfg.Chat.Model, log)
	chatbot.NewControllerImpl(chatService, log).RegisterRoutes(protected)

	// Monitoring
	monitorRepository := monitor.NewRepositoryImpl(db)
	flagger := monitor.NewFlagger(cfg.Monitor.FlaggedWords, monitorRepository, log)
	moodRepository := mood.NewRepositoryImpl(db)
	monitorService := monitor.NewServiceImpl(monitorRepository, moodRepository, userService, log)
	monitor.NewControllerImpl(monitorService).RegisterRoutes(protected)

	// Conversation, consuming the chat completion stream
	chatClient := stream.NewClient(cfg.Chat.Endpoint,
		stream.WithTokenSource(session.ForwardedToken{Fixed: cfg.Chat.APIKey}),
		stream.WithModel(cfg.Chat.Model),
		stream.WithLogger(log),
	)
	conversationService := conversation.NewServiceImpl(conversation.NewRepositoryImpl(db), chatClient, guard, flagger, log)
	conversation.NewControllerImpl(conversationService, log).RegisterRoutes(protected)

	// Wellness data
	mood.NewControllerImpl(mood.NewServiceImpl(moodRepository, log)).RegisterRoutes(protected)
	journalService := journal.NewServiceImpl(journal.NewRepositoryImpl(db), flagger, log)
	journal.NewControllerImpl(journalService).RegisterRoutes(protected)
	goal.NewControllerImpl(goal.NewServiceImpl(goal.NewRepositoryImpl(db), log)).RegisterRoutes(protected)
	inspiration.NewControllerImpl(inspiration.NewServiceImpl(inspiration.NewRepositoryImpl(db), log)).RegisterRoutes(protected)
	dashboard.NewControllerImpl(dashboard.NewServiceImpl(dashboard.NewRepositoryImpl(db)), log).RegisterRoutes(protected)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newAIProvider(ctx context.Context, cfg *config.Config) (llm.AIProvider, error) {
	switch cfg.Chat.Provider {
	case "gemini":
		geminiAIClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAI.APIKey))
		if err != nil {
			return nil, err
		}
		return llm.NewGeminiAIProvider(geminiAIClient, cfg.GeminiAI.Model), nil
	default:
		openAIConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			openAIConfig.BaseURL = cfg.OpenAI.BaseURL
		}
		return llm.NewOpenAIProvider(openai.NewClientWithConfig(openAIConfig), cfg.OpenAI.Model), nil
	}
}

func newGuard(cfg *config.Config, log *slog.Logger) (conversation.Guard, func(), error) {
	if cfg.Redis.URL == "" {
		return conversation.NewMemoryGuard(), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	log.Info("using redis in-flight guard", "addr", opts.Addr)
	return conversation.NewRedisGuard(client, conversation.DefaultLockTTL), func() { _ = client.Close() }, nil
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
