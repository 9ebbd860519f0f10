package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geovibes/geovibes/config"
	"github.com/geovibes/geovibes/internal/bootstrap"
	"github.com/geovibes/geovibes/internal/catalog"
	"github.com/geovibes/geovibes/internal/kafka"
	"github.com/geovibes/geovibes/internal/repository"
	"github.com/geovibes/geovibes/internal/service/account"
	"github.com/geovibes/geovibes/internal/service/booking"
	"github.com/geovibes/geovibes/internal/storage"
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	userRepo := repository.NewUserRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	if err := userRepo.Load(ctx); err != nil {
		log.Fatalf("rehydrate users: %v", err)
	}
	if err := bookingRepo.Load(ctx); err != nil {
		log.Fatalf("rehydrate bookings: %v", err)
	}
	if err := sessionRepo.Load(ctx); err != nil {
		log.Fatalf("rehydrate session: %v", err)
	}

	catalogStore := catalog.NewStore()
	src := catalog.NewSource(cfg.Catalog.Source, time.Duration(cfg.Catalog.FetchTimeoutSeconds)*time.Second)
	if err := catalogStore.Load(ctx, src); err != nil {
		// A missing catalog degrades to an empty one; browsing just shows
		// nothing until the source is fixed and the service restarted.
		logger.Error("load catalog failed, starting with an empty catalog",
			"source", cfg.Catalog.Source, "error", err)
	} else {
		logger.Info("catalog loaded", "source", cfg.Catalog.Source, "destinations", len(catalogStore.All()))
	}

	opts := []booking.BookingServiceOption{booking.WithCatalog(catalogStore)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic))
	}

	accountSvc := account.NewAccountService(userRepo, sessionRepo)
	bookingSvc := booking.NewBookingService(bookingRepo, sessionRepo, opts...)

	logger.Info("starting server", "address", cfg.HTTP.Address, "storage", cfg.Storage.Backend)
	if err := bootstrap.Run(ctx, cfg, accountSvc, bookingSvc, catalogStore); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "file":
		return storage.NewFileStore(cfg.Storage.Dir)
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		return storage.NewRedisStore(cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
