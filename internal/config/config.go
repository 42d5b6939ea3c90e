package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App      string `env:"APP" envDefault:"dev"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ScoringBaseURL string        `env:"SCORING_BASE_URL" envDefault:"http://localhost:5001"`
	ScoringTimeout time.Duration `env:"SCORING_TIMEOUT" envDefault:"0s"`

	PostgresDSN           string        `env:"POSTGRES_DSN"`
	PostgresMigrationsDir string        `env:"POSTGRES_MIGRATIONS_DIR"`
	DBPath                string        `env:"DB_PATH"`
	DBMigrationsDir       string        `env:"DB_MIGRATIONS_DIR"`
	RedisAddr             string        `env:"REDIS_ADDR"`
	RedisPassword         string        `env:"REDIS_PASSWORD"`
	RedisDB               int           `env:"REDIS_DB" envDefault:"0"`
	QueryTTL              time.Duration `env:"QUERY_TTL" envDefault:"24h"`

	ViewTTL            time.Duration `env:"VIEW_TTL" envDefault:"30m"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	LambdaFunctionName string `env:"AWS_LAMBDA_FUNCTION_NAME"`
}

// Load reads .env files when running outside Lambda and parses the
// environment into a Config.
func Load() (Config, error) {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	return Parse(env.Options{})
}

// Parse parses a Config with the given env options. Tests pass
// Options.Environment to avoid touching the process environment.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.ScoringBaseURL = strings.TrimRight(strings.TrimSpace(cfg.ScoringBaseURL), "/")
	if cfg.ScoringBaseURL == "" {
		return Config{}, errors.New("SCORING_BASE_URL is required")
	}
	return cfg, nil
}

func (c Config) IsLambda() bool {
	return c.LambdaFunctionName != ""
}

func (c Config) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.App), "dev")
}
