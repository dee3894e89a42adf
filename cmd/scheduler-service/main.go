package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/MADANW/MuhsinAI/internal/config"
	"github.com/MADANW/MuhsinAI/internal/database"
	"github.com/MADANW/MuhsinAI/internal/handlers"
	"github.com/MADANW/MuhsinAI/internal/llm"
	"github.com/MADANW/MuhsinAI/internal/logger"
	"github.com/MADANW/MuhsinAI/internal/ratelimit"
	"github.com/MADANW/MuhsinAI/internal/repository"
	"github.com/MADANW/MuhsinAI/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()
	log.Info().Str("path", cfg.Database.Path).Msg("Database ready")

	users := repository.NewUserRepository(db.DB(), log)
	prefs := repository.NewPreferencesRepository(db.DB(), log)
	chats := repository.NewChatRepository(db.DB(), log)

	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid Redis URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		store = ratelimit.NewRedisStore(client)
		log.Info().Msg("Using Redis rate limit store")
	}
	limiter := ratelimit.NewLimiter(store, log)

	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; chat requests will fail")
	}
	llmClient := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	userSvc := service.NewUserService(users, prefs, chats, log)
	chatSvc := service.NewChatService(llmClient, cfg.OpenAI.Model, log)

	authH := handlers.NewAuthHandler(users, prefs, userSvc, cfg.JWT.Secret, cfg.JWT.Expiration, log)
	chatH := handlers.NewChatHandler(chatSvc, llmClient, chats, log)
	userH := handlers.NewUserHandler(userSvc, log)
	healthH := handlers.NewHealthHandler(cfg.AppName, cfg.AppVersion, db)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(handlers.RequestLogger(log))

	router.GET("/", healthH.Root)
	router.GET("/health", healthH.Health)

	api := router.Group("/api/v1")

	authPublic := api.Group("/auth", handlers.RateLimitMiddleware(limiter, "auth"))
	authPublic.POST("/register", authH.Register)
	authPublic.POST("/login", authH.Login)

	authPrivate := api.Group("/auth", handlers.AuthMiddleware(users, cfg.JWT.Secret))
	authPrivate.GET("/me", authH.Me)
	authPrivate.POST("/refresh", authH.Refresh)
	authPrivate.POST("/logout", authH.Logout)
	authPrivate.DELETE("/account", authH.DeleteAccount)

	chat := api.Group("/chat",
		handlers.RateLimitMiddleware(limiter, "chat"),
		handlers.AuthMiddleware(users, cfg.JWT.Secret),
	)
	chat.POST("", chatH.Create)
	chat.GET("/history", chatH.History)
	chat.DELETE("/history/:id", chatH.Delete)
	chat.GET("/test-openai", chatH.TestOpenAI)

	user := api.Group("/user",
		handlers.RateLimitMiddleware(limiter, "user"),
		handlers.AuthMiddleware(users, cfg.JWT.Secret),
	)
	user.GET("/profile", userH.GetProfile)
	user.PUT("/profile", userH.UpdateProfile)
	user.GET("/preferences", userH.GetPreferences)
	user.PUT("/preferences", userH.UpdatePreferences)
	user.GET("/stats", userH.GetStats)
	user.GET("/activity", userH.GetActivity)
	user.GET("/complete-profile", userH.GetCompleteProfile)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
