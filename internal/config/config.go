package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// CRM (GoHighLevel) Configuration
	CRMAPIKey     string
	CRMBaseURL    string
	CRMLocationID string
	CRMCalendarID string
	CRMPipelineID string
	CRMStageID    string

	// OpenAI Configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// Firm Configuration
	FirmName        string
	FirmPhone       string
	FirmTimezone    string
	DefaultLanguage string

	// Lead Scoring Configuration
	ScoringInterval time.Duration

	SessionTTL time.Duration

	OpportunityValue   float64
	CORSAllowedOrigins []string
	RateLimitPerSecond int
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		// CRM (GoHighLevel) Configuration
		CRMAPIKey:     getEnv("CRM_API_KEY", ""),
		CRMBaseURL:    getEnv("CRM_BASE_URL", "https://services.leadconnectorhq.com"),
		CRMLocationID: getEnv("CRM_LOCATION_ID", ""),
		CRMCalendarID: getEnv("CRM_CALENDAR_ID", ""),
		CRMPipelineID: getEnv("CRM_PIPELINE_ID", ""),
		CRMStageID:    getEnv("CRM_STAGE_ID", ""),

		// OpenAI Configuration
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		// Firm Configuration
		FirmName:        getEnv("FIRM_NAME", "Avila Law"),
		FirmPhone:       getEnv("FIRM_PHONE", "(919) 555-0155"),
		FirmTimezone:    getEnv("FIRM_TIMEZONE", "America/New_York"),
		DefaultLanguage: strings.ToLower(strings.TrimSpace(getEnv("DEFAULT_LANGUAGE", "en"))),

		// Lead Scoring Configuration
		ScoringInterval: getEnvAsDuration("SCORING_INTERVAL", 30*time.Minute),

		SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		OpportunityValue:   getEnvAsFloat("OPPORTUNITY_VALUE", 500),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		RateLimitPerSecond: getEnvAsInt("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
