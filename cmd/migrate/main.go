package main

import (
	"database/sql"
	"flag"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"consumer_reviews/internal/adapters/observability"
	"consumer_reviews/internal/shared"
	mysqlrepo "consumer_reviews/internal/storage/mysql"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	cfg, cfgErr := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if cfgErr != nil {
		log.Fatal().Err(cfgErr).Msg("invalid configuration")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	if *down {
		err = mysqlrepo.MigrateDown(db)
	} else {
		err = mysqlrepo.MigrateUp(db)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
