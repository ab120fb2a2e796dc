package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CatalogBase string
	CatalogKey  string
	AMQPURL     string // empty disables booking events
	Workers     int
	IngestIDs   []int64
	CacheTTL    time.Duration
	HandoffTTL  time.Duration
	Locale      string
	Currency    string
}

func Load() Config {
	// .env is a dev convenience; in prod everything comes from the real env.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/asili?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CatalogBase: env("CATALOG_BASE_URL", "https://catalog.asili.example/v1"),
		CatalogKey:  env("CATALOG_API_KEY", ""),
		AMQPURL:     env("AMQP_URL", ""),
		Workers:     atoi("INGEST_WORKERS", 8),
		IngestIDs:   parseIDs(os.Getenv("INGEST_EXPERIENCE_IDS")),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		HandoffTTL:  time.Duration(atoi("HANDOFF_TTL_SECONDS", 1800)) * time.Second,
		Locale:      env("DEFAULT_LOCALE", "en"),
		Currency:    env("DEFAULT_CURRENCY", "KES"),
	}
	if c.CatalogKey == "" {
		log.Warn().Msg("CATALOG_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// parseIDs reads a comma-separated id list; bad entries are logged and skipped.
func parseIDs(s string) []int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Warn().Str("id", p).Msg("skipping bad experience id")
			continue
		}
		out = append(out, n)
	}
	return out
}
