package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"consumer_reviews/internal/adapters/observability"
	redisad "consumer_reviews/internal/adapters/redis"
	"consumer_reviews/internal/app"
	"consumer_reviews/internal/domain"
	"consumer_reviews/internal/shared"
	mysqlrepo "consumer_reviews/internal/storage/mysql"
)

// companies.json is either ["Acme", ...] or [{"name": "Acme"}, ...].
func readNames(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(b, &names); err == nil {
		return names, nil
	}
	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &objs); err != nil {
		return nil, err
	}
	for _, o := range objs {
		names = append(names, o.Name)
	}
	return names, nil
}

func main() {
	cfg, cfgErr := shared.Load()
	file := flag.String("file", cfg.SeedFile, "JSON file with company names")
	flag.Parse()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if cfgErr != nil {
		log.Fatal().Err(cfgErr).Msg("invalid configuration")
	}
	ctx := context.Background()

	names, err := readNames(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CachePrefix)
		defer rc.Close()
		cache = rc
	}

	seeded, err := app.NewSeedService(mysqlrepo.New(db), cache).SeedCompanies(ctx, names)
	for _, c := range seeded {
		log.Info().Int64("id", c.ID).Str("name", c.Name).Msg("company inserted")
	}
	if err != nil {
		log.Fatal().Err(err).Int("inserted", len(seeded)).Msg("seeding stopped")
	}
	log.Info().Int("inserted", len(seeded)).Msg("seeding completed")
}
