package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"consumer_reviews/internal/adapters/auth"
	server "consumer_reviews/internal/adapters/http_server"
	"consumer_reviews/internal/adapters/observability"
	redisad "consumer_reviews/internal/adapters/redis"
	"consumer_reviews/internal/app"
	"consumer_reviews/internal/domain"
	"consumer_reviews/internal/shared"
	"consumer_reviews/internal/storage/memory"
	mysqlrepo "consumer_reviews/internal/storage/mysql"
)

func main() {
	cfg, cfgErr := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if cfgErr != nil {
		log.Fatal().Err(cfgErr).Msg("invalid configuration")
	}
	if cfg.DevJWTSecret {
		log.Warn().Msg("JWT_SECRET is empty; using the development secret")
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// store
	var repo domain.ReviewRepository
	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on exit")
		repo = memory.New()
	default:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	}

	// cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CachePrefix)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			// reads fall through to the store on every cache error
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		cache = rc
	}

	// deps
	companies := app.NewCompanyService(repo, cache, cfg.CacheTTL)
	reviews := app.NewReviewService(repo, companies)

	// http
	srv := server.New(server.Options{TrustProxy: cfg.TrustProxy, RequestTimeout: cfg.RequestTimeout})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Reviews:   reviews,
		Companies: companies,
		Verifier:  auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Throttle:  server.NewThrottle(cfg.CreatePerMin, cfg.CreateBurst),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return observability.Serve(gctx, &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}, "api")
	})
	if ms := observability.NewMetricsServer(cfg.MetricsAddr, reg); ms != nil {
		g.Go(func() error { return observability.Serve(gctx, ms, "metrics") })
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("bye")
}
