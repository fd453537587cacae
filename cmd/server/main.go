package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"daybound/internal/audit"
	"daybound/internal/filter"
	filterhandler "daybound/internal/filter/handler"
	filtermetrics "daybound/internal/filter/metrics"
	"daybound/internal/platform/config"
	"daybound/internal/platform/httpserver"
	"daybound/internal/platform/logger"
	"daybound/internal/platform/metrics"
	"daybound/internal/platform/postgres"
	"daybound/internal/platform/redis"
	"daybound/internal/session"
	"daybound/internal/tenant"
	"daybound/internal/tenant/cache"
	tenantmetrics "daybound/internal/tenant/metrics"
	"daybound/internal/tenant/service"
	"daybound/internal/tenant/store"
	httptransport "daybound/internal/transport/http"
)

// tenantStore is what main needs from either store implementation: the
// service-facing operations plus the cache-facing timezone lookup.
type tenantStore interface {
	service.TenantStore
	cache.TimezoneStore
}

// main wires dependencies and keeps the process lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var health []httptransport.HealthCheck

	// Tenant storage: postgres when configured, in-memory otherwise.
	var tenants tenantStore = store.NewInMemory()
	pool, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		pg := store.NewPostgres(pool.Pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("tenant schema setup failed", "error", err)
			os.Exit(1)
		}
		tenants = pg
		health = append(health, httptransport.HealthCheck{Name: "postgres", Check: pool.Health})
	}

	// Audit pipeline: events fan out to every configured sink.
	auditPublisher := audit.NewPublisher(256, log)
	var sinks []audit.Sink
	if cfg.DatabaseURL != "" {
		auditDB, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("audit database connection failed", "error", err)
			os.Exit(1)
		}
		defer auditDB.Close()
		pgSink := audit.NewPostgresSink(auditDB)
		if err := pgSink.EnsureSchema(ctx); err != nil {
			log.Error("audit schema setup failed", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, pgSink)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			log.Error("audit kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	if len(sinks) == 0 {
		sinks = append(sinks, audit.NewMemorySink())
	}
	auditWorker := audit.NewWorker(auditPublisher, log, sinks...)

	// Timezone reads go through the redis cache when redis is configured.
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	// The wrapper is nil when redis is unconfigured, so unwrap guardedly;
	// the cache treats a nil client as a passthrough.
	var redisConn *goredis.Client
	if redisClient != nil {
		defer redisClient.Close()
		redisConn = redisClient.Client
		health = append(health, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	tenantMetrics := tenantmetrics.New()
	timezones := cache.NewTimezone(redisConn, tenants, config.TimezoneCacheTTL, log, tenantMetrics)

	sessions := session.NewManager(cfg.SessionKey)

	tenantSvc := tenant.NewService(tenants,
		service.WithLogger(log),
		service.WithMetrics(tenantMetrics),
		service.WithAuditPublisher(auditPublisher),
		service.WithTimezoneInvalidator(timezones),
	)
	filterSvc := filter.New(timezones,
		filter.WithLogger(log),
		filter.WithMetrics(filtermetrics.New()),
		filter.WithAuditPublisher(auditPublisher),
	)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:        log,
		Metrics:       metrics.New(),
		Sessions:      sessions,
		AdminToken:    cfg.AdminToken,
		TenantHandler: tenant.NewHandler(tenantSvc, log),
		FilterHandler: filterhandler.New(filterSvc, log),
		HealthChecks:  health,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting daybound", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return auditWorker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("daybound stopped")
}
