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

	"golang.org/x/sync/errgroup"

	"balangay/internal/address"
	"balangay/internal/feed"
	httpapi "balangay/internal/http"
	"balangay/internal/notify"
	"balangay/internal/platform/config"
	"balangay/internal/platform/httpserver"
	"balangay/internal/platform/kafka"
	"balangay/internal/platform/logger"
	platformmetrics "balangay/internal/platform/metrics"
	"balangay/internal/platform/middleware"
	"balangay/internal/platform/postgres"
	platformredis "balangay/internal/platform/redis"
	"balangay/internal/platform/secrets"
	profilehandler "balangay/internal/profile/handler"
	profilemetrics "balangay/internal/profile/metrics"
	profileservice "balangay/internal/profile/service"
	profilestore "balangay/internal/profile/store"
	reviewhandler "balangay/internal/review/handler"
	reviewmetrics "balangay/internal/review/metrics"
	reviewservice "balangay/internal/review/service"
	reviewstore "balangay/internal/review/store"
	"balangay/internal/storage"
	transparencyhandler "balangay/internal/transparency/handler"
	transparencyservice "balangay/internal/transparency/service"
	transparencystore "balangay/internal/transparency/store"
	"balangay/pkg/platform/audit"
	"balangay/pkg/platform/audit/publisher"
	auditmem "balangay/pkg/platform/audit/store/memory"
	auditpg "balangay/pkg/platform/audit/store/postgres"
	auditworker "balangay/pkg/platform/audit/worker"
)

const shutdownGrace = 10 * time.Second

// main wires stores, services, and transport, then runs the server under an
// errgroup so the HTTP listener, the audit relay, and signal handling share
// one lifecycle.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := platformmetrics.New()

	// Storage layer. Without DATABASE_URL everything runs in memory, which
	// keeps local development and demos dependency-free.
	var (
		statusStore  reviewstore.Store
		auditStore   audit.Store
		auditOutbox  *auditpg.Store
		officials    transparencystore.Officials
		footer       transparencystore.Footer
		healthChecks = map[string]func(context.Context) error{}
	)
	profMetrics := profilemetrics.New()
	var (
		profileStore profilestore.Store
		addressStore address.Store
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}

		statusStore = reviewstore.NewPostgres(db)
		profileStore = profilestore.NewPostgres(db, log, profMetrics)
		officials = transparencystore.NewPostgresOfficials(db)
		footer = transparencystore.NewPostgresFooter(db)
		addressStore = address.NewPostgres(db)
		auditOutbox = auditpg.New(db)
		auditStore = auditOutbox
		healthChecks["postgres"] = db.PingContext
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		statusStore = reviewstore.NewInMemory()
		profileStore = profilestore.NewInMemory(log, profMetrics)
		officials = transparencystore.NewInMemoryOfficials()
		footer = transparencystore.NewInMemoryFooter()
		addressStore = address.NewMemory(nil, nil, nil, nil)
		auditStore = auditmem.NewInMemoryStore()
	}

	// Change feed. Redis fans events out across instances; the in-memory
	// feed only reaches subscribers in this process.
	var changeFeed interface {
		feed.Publisher
		feed.Subscriber
	}
	if cfg.Redis.URL != "" {
		redisClient, err := platformredis.New(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		changeFeed = feed.NewRedis(redisClient)
		healthChecks["redis"] = redisClient.Health
	} else {
		changeFeed = feed.NewMemory()
	}

	auditPub := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(256),
		publisher.WithLogger(log),
	)
	defer auditPub.Close()

	var notifier notify.Gateway = notify.Noop{}
	if cfg.NotifyBaseURL != "" {
		notifier = notify.NewHTTPGateway(cfg.NotifyBaseURL, cfg.NotifyTimeout)
	}

	blobs, err := storage.NewDisk(cfg.StorageDir)
	if err != nil {
		return err
	}
	signer := storage.NewSigner([]byte(cfg.JWTSigningKey), cfg.SignedURLTTL, "/files")

	adminTokenHash := cfg.AdminTokenHash
	if adminTokenHash == "" {
		adminTokenHash, err = secrets.Hash(cfg.AdminToken)
		if err != nil {
			return err
		}
	}

	reviewSvc := reviewservice.NewService(statusStore, notifier,
		reviewservice.WithFeed(changeFeed),
		reviewservice.WithAudit(auditPub),
		reviewservice.WithMetrics(reviewmetrics.New()),
		reviewservice.WithLogger(log),
	)
	profileSvc := profileservice.NewService(profileStore, reviewSvc,
		profileservice.WithBlobChecker(blobs),
		profileservice.WithFeed(changeFeed),
		profileservice.WithAudit(auditPub),
		profileservice.WithMetrics(profMetrics),
		profileservice.WithLogger(log),
	)
	transparencySvc := transparencyservice.NewService(officials, footer,
		transparencyservice.WithSigner(signer),
		transparencyservice.WithAudit(auditPub),
		transparencyservice.WithLogger(log),
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        metrics,
		Profile:        profilehandler.New(profileSvc, log),
		Review:         reviewhandler.New(reviewSvc, log),
		Transparency:   transparencyhandler.New(transparencySvc, log),
		Storage:        storage.NewHandler(blobs, signer, log),
		Addresses:      address.NewHandler(addressStore),
		Stream:         feed.NewSSEHandler(changeFeed, log),
		JWTValidator:   middleware.NewHMACValidator(cfg.JWTSigningKey),
		AdminTokenHash: adminTokenHash,
		HealthChecks:   healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Relay audit outbox rows to kafka when both sides are configured.
	if auditOutbox != nil && len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(ctx, cfg.Kafka)
		if err != nil {
			return err
		}
		defer producer.Close()

		relay := auditworker.New(auditOutbox, producer, log, 5*time.Second)
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
