package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{}})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.ScoringBaseURL != "http://localhost:5001" {
		t.Fatalf("ScoringBaseURL = %q", cfg.ScoringBaseURL)
	}
	if cfg.ScoringTimeout != 0 {
		t.Fatalf("ScoringTimeout = %v, want 0", cfg.ScoringTimeout)
	}
	if cfg.QueryTTL != 24*time.Hour || cfg.ViewTTL != 30*time.Minute {
		t.Fatalf("TTLs = %v/%v", cfg.QueryTTL, cfg.ViewTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.IsDev() || cfg.IsLambda() {
		t.Fatalf("IsDev/IsLambda = %t/%t", cfg.IsDev(), cfg.IsLambda())
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{
		"APP":                      "prod",
		"SCORING_BASE_URL":         " https://scores.example.com/ ",
		"SCORING_TIMEOUT":          "7s",
		"CORS_ALLOWED_ORIGINS":     "https://a.example.com,https://b.example.com",
		"REDIS_DB":                 "3",
		"AWS_LAMBDA_FUNCTION_NAME": "mvp-board",
	}})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ScoringBaseURL != "https://scores.example.com" {
		t.Fatalf("ScoringBaseURL = %q", cfg.ScoringBaseURL)
	}
	if cfg.ScoringTimeout != 7*time.Second {
		t.Fatalf("ScoringTimeout = %v", cfg.ScoringTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("RedisDB = %d", cfg.RedisDB)
	}
	if cfg.IsDev() || !cfg.IsLambda() {
		t.Fatalf("IsDev/IsLambda = %t/%t", cfg.IsDev(), cfg.IsLambda())
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	if _, err := Parse(env.Options{Environment: map[string]string{"VIEW_TTL": "soon"}}); err == nil {
		t.Fatal("Parse() accepted an invalid duration")
	}
}
