// @title        Sajilo Sewa Booking API
// @version      1.0
// @description  Service marketplace booking platform: appointments, providers, categories.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/sajilosewa/booking-system/docs"
	"github.com/sajilosewa/booking-system/internal/api"
	"github.com/sajilosewa/booking-system/internal/infrastructure/config"
	mongodb "github.com/sajilosewa/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sajilosewa/booking-system/internal/infrastructure/db/redis"
	"github.com/sajilosewa/booking-system/internal/infrastructure/notify"
	"github.com/sajilosewa/booking-system/internal/infrastructure/queue"
	"github.com/sajilosewa/booking-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		appointmentRepo.EnsureIndexes,
		categoryRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}
	if err := categoryRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("category seeding failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Notification pipeline ---
	notifier := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	guard := redisdb.NewNotificationGuard(rdb)
	dispatcher := queue.NewDispatcher(cfg.Workers, notifier, guard, cfg.AdminEmail, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Events:    dispatcher,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
