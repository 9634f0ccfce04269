package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Firebase FirebaseConfig
	Payment  PaymentConfig
	Gate     GateConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	AI       AIConfig
	Archive  ArchiveConfig
	Worker   WorkerConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	// AppBaseURL is the externally reachable origin used to build callback URLs.
	AppBaseURL  string
	Environment string
	StaticDir   string
	RateLimit   float64
	RateBurst   int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains request authentication configuration
type AuthConfig struct {
	// DevBypass swaps the identity provider for the local dev resolver.
	DevBypass   bool
	DevEmail    string
	DevName     string
	DevSecret   string
	LoginPath   string
	BillingPath string
}

// FirebaseConfig contains the identity provider service account
type FirebaseConfig struct {
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
}

// PaymentConfig contains payment provider configuration
type PaymentConfig struct {
	SecretKey        string
	BaseURL          string
	Currency         string
	SubscriptionDays int
	SuccessPath      string
	Timeout          time.Duration
}

// GateConfig lists the route prefixes guarded by the request gate
type GateConfig struct {
	SubscriptionPrefixes []string
	AuthOnlyPrefixes     []string
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	EventTTL time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// AIConfig selects the report writer backend
type AIConfig struct {
	Provider     string // openai or gemini
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// ArchiveConfig selects the object store used for report exports
type ArchiveConfig struct {
	Backend string // s3, gcs or empty
	Bucket  string
	Prefix  string
	Region  string
	// Endpoint overrides the S3 endpoint for S3-compatible stores.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// CredentialsFile is a GCP service account file for the gcs backend.
	CredentialsFile string
}

// WorkerConfig contains background job configuration
type WorkerConfig struct {
	SweepSchedule string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			AppBaseURL:      strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			StaticDir:       getEnv("STATIC_DIR", ""),
			RateLimit:       getEnvAsFloat("RATE_LIMIT_RPS", 100),
			RateBurst:       getEnvAsInt("RATE_LIMIT_BURST", 200),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "proftrack"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./proftrack.db"),
		},
		Auth: AuthConfig{
			DevBypass:   getEnvAsBool("AUTH_DEV_BYPASS", false),
			DevEmail:    getEnv("AUTH_DEV_EMAIL", "dev@proftrack.local"),
			DevName:     getEnv("AUTH_DEV_NAME", "Dev User"),
			DevSecret:   getEnv("AUTH_DEV_SECRET", ""),
			LoginPath:   getEnv("AUTH_LOGIN_PATH", "/login"),
			BillingPath: getEnv("AUTH_BILLING_PATH", "/billing"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			ClientEmail:     getEnv("FIREBASE_CLIENT_EMAIL", ""),
			PrivateKey:      strings.ReplaceAll(getEnv("FIREBASE_PRIVATE_KEY", ""), `\n`, "\n"),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		},
		Payment: PaymentConfig{
			SecretKey:        getEnv("PAYSTACK_SECRET_KEY", ""),
			BaseURL:          getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			Currency:         getEnv("PAYSTACK_CURRENCY", "NGN"),
			SubscriptionDays: getEnvAsInt("SUBSCRIPTION_DAYS", 30),
			SuccessPath:      getEnv("PAYMENT_SUCCESS_PATH", "/dashboard"),
			Timeout:          getEnvAsDuration("PAYSTACK_TIMEOUT", 15*time.Second),
		},
		Gate: GateConfig{
			SubscriptionPrefixes: getEnvAsList("GATE_SUBSCRIPTION_PREFIXES", []string{
				"/dashboard", "/projects", "/referees", "/reports",
				"/api/projects", "/api/referees", "/api/reports",
			}),
			AuthOnlyPrefixes: getEnvAsList("GATE_AUTH_ONLY_PREFIXES", []string{
				"/billing", "/profile",
				"/api/payments/initialize", "/api/profile", "/api/billing",
			}),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			EventTTL: getEnvAsDuration("REDIS_EVENT_TTL", 30*24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		AI: AIConfig{
			Provider:     getEnv("AI_PROVIDER", "openai"),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Archive: ArchiveConfig{
			Backend:         getEnv("ARCHIVE_BACKEND", ""),
			Bucket:          getEnv("ARCHIVE_BUCKET", ""),
			Prefix:          getEnv("ARCHIVE_PREFIX", "reports"),
			Region:          getEnv("ARCHIVE_REGION", "us-east-1"),
			Endpoint:        getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKeyID:     getEnv("ARCHIVE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
			CredentialsFile: getEnv("ARCHIVE_CREDENTIALS_FILE", ""),
		},
		Worker: WorkerConfig{
			SweepSchedule: getEnv("WORKER_SWEEP_SCHEDULE", "@every 1h"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Auth.DevBypass && c.IsProduction() {
		return fmt.Errorf("AUTH_DEV_BYPASS cannot be enabled in production")
	}

	if c.Payment.SubscriptionDays < 1 {
		return fmt.Errorf("SUBSCRIPTION_DAYS must be positive, got %d", c.Payment.SubscriptionDays)
	}

	for _, sub := range c.Gate.SubscriptionPrefixes {
		for _, auth := range c.Gate.AuthOnlyPrefixes {
			if sub == auth {
				return fmt.Errorf("route prefix %q is listed as both subscription and auth-only", sub)
			}
		}
	}

	switch c.Archive.Backend {
	case "":
	case "s3", "gcs":
		if c.Archive.Bucket == "" {
			return fmt.Errorf("ARCHIVE_BUCKET is required for the %s archive backend", c.Archive.Backend)
		}
	default:
		return fmt.Errorf("unsupported archive backend: %s", c.Archive.Backend)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
