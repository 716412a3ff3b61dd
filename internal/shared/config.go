package shared

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	StoreDriver    string // mysql | memory
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CachePrefix    string
	CacheTTL       time.Duration
	JWTSecret      string
	JWTIssuer      string
	JWTTTL         time.Duration
	CreatePerMin   int
	CreateBurst    int
	TrustProxy     bool
	RequestTimeout time.Duration
	SeedFile       string

	// DevJWTSecret is set when JWTSecret fell back to the development secret.
	DevJWTSecret bool
}

var ErrNoJWTSecret = errors.New("JWT_SECRET is required outside development")

const devJWTSecret = "dev-only-secret-change-me"

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
// Load does not log: the returned Config is complete enough to build the
// logger even when err is not nil.
func Load() (Config, error) {
	_ = godotenv.Load()

	var errs []error
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s=%q: not an integer", k, v))
				return def
			}
			return n
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		StoreDriver:    strings.ToLower(env("STORE_DRIVER", "mysql")),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CachePrefix:    env("CACHE_PREFIX", "reviews:"),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		JWTSecret:      env("JWT_SECRET", ""),
		JWTIssuer:      env("JWT_ISSUER", ""),
		JWTTTL:         time.Duration(atoi("JWT_TTL_MINUTES", 60)) * time.Minute,
		CreatePerMin:   atoi("CREATE_RATE_PER_MINUTE", 0),
		CreateBurst:    atoi("CREATE_BURST", 10),
		TrustProxy:     envBool("TRUST_PROXY_HEADERS", false),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		SeedFile:       env("SEED_COMPANIES_FILE", "companies.json"),
	}
	if c.JWTSecret == "" && c.IsDev() {
		c.JWTSecret = devJWTSecret
		c.DevJWTSecret = true
	}
	return c, errors.Join(errs...)
}

// RequireJWTSecret reports ErrNoJWTSecret for commands that sign or verify
// tokens.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	return nil
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
