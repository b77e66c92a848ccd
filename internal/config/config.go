package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	LogLevel          string
	DBDSN             string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Khalti payment processor.
	KhaltiSecretKey string
	KhaltiBaseURL   string
	KhaltiTimeout   time.Duration

	// SMTP for outgoing notification mail.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Hostel/room image uploads.
	UploadDir string

	// TTLs for Redis-backed one-time tokens.
	OTPTTL        time.Duration
	ResetTokenTTL time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Redis holds OTPs and password reset tokens
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	var err error
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Khalti: secret key is required, base URL is overridable for sandboxing
	cfg.KhaltiSecretKey = os.Getenv("KHALTI_SECRET_KEY")
	if cfg.KhaltiSecretKey == "" {
		return nil, fmt.Errorf("KHALTI_SECRET_KEY is required")
	}
	cfg.KhaltiBaseURL = getEnv("KHALTI_BASE_URL", "https://khalti.com/api/v2")
	cfg.KhaltiTimeout, err = getEnvAsDuration("KHALTI_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid KHALTI_TIMEOUT: %w", err)
	}

	// SMTP (optional: when host is empty the mailer runs in log-only mode)
	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort, err = getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "noreply@sajilofinder.com")

	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")

	cfg.OTPTTL, err = getEnvAsDuration("OTP_TTL", "10m")
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}
	cfg.ResetTokenTTL, err = getEnvAsDuration("RESET_TOKEN_TTL", "30m")
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_TOKEN_TTL: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration,
// falling back to the provided default when unset.
func getEnvAsDuration(key, defaultValue string) (time.Duration, error) {
	valStr := getEnv(key, defaultValue)
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return d, nil
}
