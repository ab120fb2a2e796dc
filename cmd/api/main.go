package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"asili_experiences/internal/adapters/events"
	server "asili_experiences/internal/adapters/http_server"
	"asili_experiences/internal/adapters/observability"
	redisad "asili_experiences/internal/adapters/redis"
	"asili_experiences/internal/app"
	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
	"asili_experiences/internal/shared"
	mysqlrepo "asili_experiences/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	cache := redisad.NewWithClient(rdb)
	store := redisad.NewSelectionStore(rdb, cfg.HandoffTTL)

	var publisher domain.EventPublisher
	if cfg.AMQPURL != "" {
		pub, err := events.New(cfg.AMQPURL)
		if err != nil {
			log.Warn().Err(err).Msg("AMQP unavailable; booking events disabled")
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	handoff := app.NewHandoffService(store)
	bookings := app.NewBookingService(repo, repo, handoff, publisher)
	assistant := app.NewAssistant(repo, booking.NewFormatter(cfg.Locale, cfg.Currency), nil)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, B: bookings, H: handoff, A: assistant})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
