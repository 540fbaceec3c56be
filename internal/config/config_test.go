package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CRM_CALENDAR_ID", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.CRMCalendarID != "" {
		t.Fatalf("expected default calendar id empty, got %s", cfg.CRMCalendarID)
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("expected default language en, got %s", cfg.DefaultLanguage)
	}
	if cfg.ScoringInterval != 30*time.Minute {
		t.Fatalf("expected default scoring interval, got %s", cfg.ScoringInterval)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.OpportunityValue != 500 {
		t.Fatalf("expected default opportunity value, got %f", cfg.OpportunityValue)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no default cors origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerSecond != 10 {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerSecond)
	}
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://avila.law, https://www.avila.law ,")
	cfg := Load()
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://www.avila.law" {
		t.Fatalf("expected trimmed origin, got %q", cfg.CORSAllowedOrigins[1])
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("CRM_LOCATION_ID", "loc-123")
	t.Setenv("DEFAULT_LANGUAGE", " ES ")
	t.Setenv("SCORING_INTERVAL", "45m")
	t.Setenv("FIRM_PHONE", "(555) 010-0200")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.CRMLocationID != "loc-123" {
		t.Fatalf("expected location override, got %s", cfg.CRMLocationID)
	}
	if cfg.DefaultLanguage != "es" {
		t.Fatalf("expected normalized language, got %s", cfg.DefaultLanguage)
	}
	if cfg.ScoringInterval != 45*time.Minute {
		t.Fatalf("expected scoring interval override, got %s", cfg.ScoringInterval)
	}
	if cfg.FirmPhone != "(555) 010-0200" {
		t.Fatalf("expected firm phone override, got %s", cfg.FirmPhone)
	}
}
