package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/krishkalaria12/snap-studio/auth"
	"github.com/krishkalaria12/snap-studio/config"
	"github.com/krishkalaria12/snap-studio/database"
	"github.com/krishkalaria12/snap-studio/gallery"
	"github.com/krishkalaria12/snap-studio/generation"
	handler "github.com/krishkalaria12/snap-studio/handlers"
	"github.com/krishkalaria12/snap-studio/logger"
	"github.com/krishkalaria12/snap-studio/provider"
	"github.com/krishkalaria12/snap-studio/router"
	"github.com/krishkalaria12/snap-studio/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	db, err := database.Connect(database.Options{
		Driver: cfg.DBDriver,
		DSN:    cfg.DatabaseURL,
		Debug:  cfg.IsDevelopment(),
	})
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	imageProvider, err := newProvider(context.Background(), cfg)
	if err != nil {
		log.Error("failed to initialize image provider", "provider", cfg.Provider, "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenService(auth.TokenOptions{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.TokenIssuer,
		Duration: cfg.TokenDuration,
	})

	h := handler.New(
		auth.NewService(db, tokens),
		generation.NewService(db, imageProvider, cfg.ProviderTimeout, log),
		gallery.NewService(db, cfg.AppURL),
		handler.CookieOptions{Secure: cfg.SecureCookies, Duration: cfg.TokenDuration},
	)

	app := fiber.New(fiber.Config{
		AppName:      "snap-studio",
		ErrorHandler: handler.ErrorHandler,
	})
	app.Use(recover.New())
	router.SetupRoutes(app, h, tokens)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "provider", cfg.Provider)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", "error", err)
	}
}

func newProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		uploader, err := storage.New(ctx, storage.Options{
			Driver:        cfg.StorageDriver,
			GCSProjectID:  cfg.GCSProjectID,
			GCSBucketName: cfg.GCSBucketName,
			S3Region:      cfg.S3Region,
			S3Bucket:      cfg.S3Bucket,
			S3AccessKey:   cfg.S3AccessKey,
			S3SecretKey:   cfg.S3SecretKey,
			S3Endpoint:    cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return provider.NewGemini(ctx, provider.GeminiOptions{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.GeminiModel,
			MaxWidth:  cfg.MaxImageWidth,
			MaxHeight: cfg.MaxImageHeight,
		}, uploader)
	default:
		slog.Info("using mock image provider", "failure_trigger", cfg.MockFailureTrigger)
		return provider.NewMock(provider.MockOptions{
			BaseURL:        cfg.MockImageBaseURL,
			FailureTrigger: cfg.MockFailureTrigger,
			Delay:          cfg.MockDelay,
		}), nil
	}
}
