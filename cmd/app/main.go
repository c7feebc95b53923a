package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/transitline/api"
	"github.com/zvrva/transitline/config"
	"github.com/zvrva/transitline/internal/auth"
	"github.com/zvrva/transitline/internal/bootstrap"
	"github.com/zvrva/transitline/internal/cache"
	"github.com/zvrva/transitline/internal/kafka"
	"github.com/zvrva/transitline/internal/repository"
	"github.com/zvrva/transitline/internal/service/accounts"
	"github.com/zvrva/transitline/internal/service/booking"
	"github.com/zvrva/transitline/internal/service/catalog"
	"github.com/zvrva/transitline/internal/service/feedback"
	"github.com/zvrva/transitline/internal/service/trips"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.TripsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	tripRepo := repository.NewTripRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingService := booking.NewBookingService(bookingRepo, userRepo, producer, cfg.Kafka.NotificationsTopic)
	tripService := trips.NewTripService(tripRepo, vehicleRepo, redisCache)
	catalogService := catalog.NewCatalogService(catalogRepo, vehicleRepo)
	feedbackService := feedback.NewFeedbackService(feedbackRepo, analyticsRepo)
	accountsService := accounts.NewAccountsService(userRepo, tokens)

	handlers := bootstrap.Handlers{
		Auth:     api.NewAuthHandler(accountsService),
		Bookings: api.NewBookingHandler(bookingService),
		Trips:    api.NewTripHandler(tripService),
		Catalog:  api.NewCatalogHandler(catalogService),
		Feedback: api.NewFeedbackHandler(feedbackService),
	}

	if err := bootstrap.Run(ctx, cfg, tokens, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
