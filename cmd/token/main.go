// Command token mints a development access token for the given identity.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"consumer_reviews/internal/adapters/auth"
	"consumer_reviews/internal/adapters/observability"
	"consumer_reviews/internal/domain"
	"consumer_reviews/internal/shared"
)

func main() {
	cfg, cfgErr := shared.Load()
	// stdout carries only the token
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel).Output(os.Stderr)
	if cfgErr != nil {
		log.Fatal().Err(cfgErr).Msg("invalid configuration")
	}
	if cfg.DevJWTSecret {
		log.Warn().Msg("JWT_SECRET is empty; using the development secret")
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var id domain.Identity
	flag.Int64Var(&id.UserID, "user", 0, "user id (required)")
	flag.StringVar(&id.Username, "username", "", "username")
	flag.StringVar(&id.Email, "email", "", "email")
	flag.StringVar(&id.FirstName, "first", "", "first name")
	flag.StringVar(&id.LastName, "last", "", "last name")
	ttl := flag.Duration("ttl", cfg.JWTTTL, "token lifetime")
	flag.Parse()

	if id.UserID <= 0 {
		log.Fatal().Msg("-user is required")
	}
	tok, exp, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, *ttl).Issue(id)
	if err != nil {
		log.Fatal().Err(err).Msg("issue token failed")
	}
	log.Info().Int64("user", id.UserID).Time("expires", exp).Msg("token issued")
	fmt.Println(tok)
}
