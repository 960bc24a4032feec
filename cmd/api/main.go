package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/auth"
	"github.com/harentsoaR/nail-salon-api/internal/config"
	"github.com/harentsoaR/nail-salon-api/internal/handlers"
	"github.com/harentsoaR/nail-salon-api/internal/logging"
	"github.com/harentsoaR/nail-salon-api/internal/middleware"
	"github.com/harentsoaR/nail-salon-api/internal/services"
	"github.com/harentsoaR/nail-salon-api/internal/session"
	"github.com/harentsoaR/nail-salon-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot, _ := zap.NewProduction()
		boot.Fatal("config", zap.Error(err))
	}
	logger, err := logging.New(cfg.Development())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.RequireJWT(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("database", cfg.MongoDatabase),
		zap.Bool("mail_enabled", cfg.MailEnabled()))

	// --- Database Connections ---
	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Close(context.Background())

	adminClient, err := store.ConnectAdmin(ctx, cfg.MongoAdminURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB as admin", zap.Error(err))
	}
	defer adminClient.Close(context.Background())

	directory := store.NewAdminStore(adminClient)
	if err := directory.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	// --- Initialize Services ---
	var mailer services.Sender
	if cfg.MailEnabled() {
		mailer = services.NewEmailClient(cfg.ResendAPIKey)
	}
	notifications := services.NewNotificationService(mailer, cfg.MailFrom, cfg.ContactInbox, logger)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("token issuer", zap.Error(err))
	}

	passwords, err := auth.NewPasswords(cfg.BcryptCost)
	if err != nil {
		logger.Fatal("password hashing", zap.Error(err))
	}

	h := handlers.NewHandler(handlers.Deps{
		Catalog: store.NewPublicStore(client),
		Bookings: func(id session.Identity) (handlers.Bookings, error) {
			us, err := store.NewUserStore(client, id)
			if err != nil {
				return nil, err
			}
			return us, nil
		},
		Directory: directory,
		Notifier:  notifications,
		Mailer:    mailer,
		Tokens:    tokens,
		Passwords: passwords,
		Public:    handlers.PublicConfig{StripePublishableKey: cfg.StripePublishableKey},
		Logger:    logger,
	})

	// --- Gin Router ---
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(5, 10)
	defer limiter.Close()
	h.Mount(r, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	notifications.Wait()
	logger.Info("Server exited")
}
