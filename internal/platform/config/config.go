package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultDBPath         = "./data/ledger.db"
	defaultPort           = "8080"
	defaultJWTIssuer      = "shop-ledger"
	defaultJWTExpiry      = time.Hour
	defaultRateLimit      = "100-M"
	defaultDocSyncTimeout = 5 * time.Second
)

// Config holds application configuration.
type Config struct {
	DBPath       string
	Port         string
	IsProduction bool
	LogLevel     string

	// An empty JWTSecret disables bearer authentication on /api/v1.
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	RateLimit string

	// An empty DocSyncURL disables remote shop document sync.
	DocSyncURL     string
	DocSyncTimeout time.Duration

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("DOC_SYNC_URL", "")
	v.SetDefault("DOC_SYNC_TIMEOUT", defaultDocSyncTimeout.String())
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		DBPath:       strings.TrimSpace(v.GetString("DB_PATH")),
		Port:         v.GetString("PORT"),
		IsProduction: v.GetBool("IS_PRODUCTION"),
		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTIssuer:    v.GetString("JWT_ISSUER"),
		RateLimit:    v.GetString("RATE_LIMIT"),
		DocSyncURL:   strings.TrimRight(v.GetString("DOC_SYNC_URL"), "/"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
		log.Printf("Warning: DB_PATH is empty. Defaulting to %s\n", cfg.DBPath)
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API authentication is disabled.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", defaultJWTExpiry)
	cfg.DocSyncTimeout = durationOrDefault(v, "DOC_SYNC_TIMEOUT", defaultDocSyncTimeout)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
