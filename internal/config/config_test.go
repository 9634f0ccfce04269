package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, Environment: "development"},
		Database: DatabaseConfig{Driver: "sqlite"},
		Payment:  PaymentConfig{SubscriptionDays: 30},
		Gate: GateConfig{
			SubscriptionPrefixes: []string{"/dashboard"},
			AuthOnlyPrefixes:     []string{"/billing"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: true,
		},
		{
			name: "dev bypass in production",
			mutate: func(c *Config) {
				c.Auth.DevBypass = true
				c.Server.Environment = "production"
			},
			wantErr: true,
		},
		{
			name:    "dev bypass in development",
			mutate:  func(c *Config) { c.Auth.DevBypass = true },
			wantErr: false,
		},
		{
			name:    "zero subscription days",
			mutate:  func(c *Config) { c.Payment.SubscriptionDays = 0 },
			wantErr: true,
		},
		{
			name:    "prefix in both lists",
			mutate:  func(c *Config) { c.Gate.AuthOnlyPrefixes = append(c.Gate.AuthOnlyPrefixes, "/dashboard") },
			wantErr: true,
		},
		{
			name:    "s3 archive without bucket",
			mutate:  func(c *Config) { c.Archive.Backend = "s3" },
			wantErr: true,
		},
		{
			name: "gcs archive with bucket",
			mutate: func(c *Config) {
				c.Archive.Backend = "gcs"
				c.Archive.Bucket = "reports"
			},
			wantErr: false,
		},
		{
			name:    "unknown archive backend",
			mutate:  func(c *Config) { c.Archive.Backend = "ftp" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SUBSCRIPTION_DAYS", "45")
	t.Setenv("APP_BASE_URL", "https://app.example.com/")
	t.Setenv("GATE_SUBSCRIPTION_PREFIXES", " /dashboard , /api/projects ,")
	t.Setenv("REDIS_EVENT_TTL", "2h")
	t.Setenv("FIREBASE_PRIVATE_KEY", `line1\nline2`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Payment.SubscriptionDays != 45 {
		t.Errorf("SubscriptionDays = %d, want 45", cfg.Payment.SubscriptionDays)
	}
	if cfg.Server.AppBaseURL != "https://app.example.com" {
		t.Errorf("AppBaseURL = %q, want trailing slash trimmed", cfg.Server.AppBaseURL)
	}
	if got := cfg.Gate.SubscriptionPrefixes; len(got) != 2 || got[0] != "/dashboard" || got[1] != "/api/projects" {
		t.Errorf("SubscriptionPrefixes = %v", got)
	}
	if cfg.Redis.EventTTL != 2*time.Hour {
		t.Errorf("EventTTL = %v, want 2h", cfg.Redis.EventTTL)
	}
	if cfg.Firebase.PrivateKey != "line1\nline2" {
		t.Errorf("PrivateKey newlines not expanded: %q", cfg.Firebase.PrivateKey)
	}
	if cfg.Auth.DevBypass {
		t.Error("DevBypass should default to false")
	}
}

func TestLoad_RejectsBypassInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_DEV_BYPASS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected Load() to refuse dev bypass in production")
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("BAD_INT", "abc")
	t.Setenv("BAD_BOOL", "maybe")
	t.Setenv("BAD_DURATION", "soon")

	if got := getEnvAsInt("BAD_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt fallback = %d", got)
	}
	if got := getEnvAsBool("BAD_BOOL", true); !got {
		t.Error("getEnvAsBool fallback should be true")
	}
	if got := getEnvAsDuration("BAD_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getEnvAsDuration fallback = %v", got)
	}
	if got := getEnvAsList("UNSET_LIST_KEY", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Errorf("getEnvAsList fallback = %v", got)
	}
}
