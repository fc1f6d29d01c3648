package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/config"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/bootstrap"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/cache"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/kafka"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/repository"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/booking"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/payment"
	"github.com/jackc/pgx/v5/pgxpool"
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

	if err := repository.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	vendorRepo := repository.NewVendorRepository(pool)
	if err := vendorRepo.Seed(ctx); err != nil {
		log.Fatalf("seed vendors: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.VendorsCacheTTL)*time.Second,
		time.Duration(cfg.Booking.AvailabilityCacheTTL)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	idempotencyRepo := repository.NewIdempotencyRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		vendorRepo,
		idempotencyRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		time.Duration(cfg.Booking.LeadTimeHours)*time.Hour,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	paymentService := payment.NewPaymentService(
		paymentRepo,
		bookingRepo,
		producer,
		payment.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, bookingService, paymentService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
