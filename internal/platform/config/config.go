package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Exchange-rate sources selectable with FX_SOURCE.
const (
	FXSourceDB     = "db"
	FXSourceHTTP   = "http"
	FXSourceStatic = "static"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	CORSAllowedOrigins []string
	RateLimit          string // ulule format, e.g. "100-M"
	PosthogAPIKey      string
	PosthogEndpoint    string

	// Currency Converter
	FXSource          string
	FXHTTPURL         string
	FXRefreshInterval time.Duration
	FXRetryInterval   time.Duration
	FXMaxStaleness    time.Duration

	// Yearly reporting
	ReportingHolidayCountry string
	DefaultBaseCurrency     string

	// Report lifecycle events
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "activity-tracker")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("FX_SOURCE", FXSourceDB)
	viper.SetDefault("FX_HTTP_URL", "https://open.er-api.com/v6/latest/USD")
	viper.SetDefault("FX_REFRESH_INTERVAL", "6h")
	viper.SetDefault("FX_RETRY_INTERVAL", "2m")
	viper.SetDefault("FX_MAX_STALENESS", "72h")
	viper.SetDefault("REPORTING_HOLIDAY_COUNTRY", "FR")
	viper.SetDefault("DEFAULT_BASE_CURRENCY", "EUR")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "activity_tracker.events")
	viper.SetDefault("AMQP_ROUTING_KEY", "report.lifecycle")

	// This allows overriding defaults with .env file values, which can then be overridden by actual environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory storage.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.FXSource = strings.ToLower(viper.GetString("FX_SOURCE"))
	switch cfg.FXSource {
	case FXSourceDB, FXSourceHTTP, FXSourceStatic:
	default:
		log.Printf("Warning: Invalid value for FX_SOURCE ('%s'). Defaulting to %s.\n", cfg.FXSource, FXSourceDB)
		cfg.FXSource = FXSourceDB
	}
	cfg.FXHTTPURL = viper.GetString("FX_HTTP_URL")
	cfg.FXRefreshInterval = durationOrDefault("FX_REFRESH_INTERVAL", 6*time.Hour)
	cfg.FXRetryInterval = durationOrDefault("FX_RETRY_INTERVAL", 2*time.Minute)
	cfg.FXMaxStaleness = durationOrDefault("FX_MAX_STALENESS", 72*time.Hour)

	cfg.ReportingHolidayCountry = strings.ToUpper(viper.GetString("REPORTING_HOLIDAY_COUNTRY"))
	cfg.DefaultBaseCurrency = strings.ToUpper(viper.GetString("DEFAULT_BASE_CURRENCY"))

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.AMQPRoutingKey = viper.GetString("AMQP_ROUTING_KEY")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
