package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"asili_experiences/internal/adapters/catalog"
	"asili_experiences/internal/adapters/observability"
	redisad "asili_experiences/internal/adapters/redis"
	"asili_experiences/internal/app"
	"asili_experiences/internal/shared"
	mysqlrepo "asili_experiences/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "ingestor")

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.Workers).
		Int("ids", len(cfg.IngestIDs)).
		Msg("ingestor starting")

	if len(cfg.IngestIDs) == 0 {
		log.Fatal().Msg("INGEST_EXPERIENCE_IDS is empty; nothing to ingest")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	cache := redisad.NewWithClient(rdb)
	ing := app.NewIngestionService(client, repo, cache)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range cfg.IngestIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(experienceID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestExperience(ctx, experienceID); err != nil {
				log.Warn().Int64("id", experienceID).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Int64("id", experienceID).Msg("ingest ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
