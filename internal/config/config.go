package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Booking   BookingConfig   `yaml:"booking"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects and configures the realtime store backend
type StoreConfig struct {
	Type            string `yaml:"type"`             // "memory" or "firebase"
	DatabaseURL     string `yaml:"database_url"`     // Realtime Database URL
	CredentialsFile string `yaml:"credentials_file"` // Service account JSON; empty uses ADC
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains bearer token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// BookingConfig contains the fee schedule applied on top of the nightly
// subtotal. ServiceFeePercent applies to the nightly subtotal only, never
// to the cleaning fee.
type BookingConfig struct {
	CleaningFeeCents  int32 `yaml:"cleaning_fee_cents"`
	ServiceFeePercent int32 `yaml:"service_fee_percent"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkNoShows           string `yaml:"mark_no_shows"`
	ReconcileAvailability string `yaml:"reconcile_availability"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Store
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Store.Type = val
	}
	if val := os.Getenv("FIREBASE_DATABASE_URL"); val != "" {
		c.Store.DatabaseURL = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Store.CredentialsFile = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Store validation
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Store.Type != "memory" && c.Store.Type != "firebase" {
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}
	if c.Store.Type == "firebase" && c.Store.DatabaseURL == "" {
		return fmt.Errorf("firebase store requires a database URL")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Booking fee defaults
	if c.Booking.ServiceFeePercent == 0 {
		c.Booking.ServiceFeePercent = 10
	}
	if c.Booking.ServiceFeePercent < 0 || c.Booking.ServiceFeePercent > 100 {
		return fmt.Errorf("invalid service fee percent: %d", c.Booking.ServiceFeePercent)
	}
	if c.Booking.CleaningFeeCents < 0 {
		return fmt.Errorf("cleaning fee must not be negative")
	}

	// Scheduler defaults
	if c.Scheduler.MarkNoShows == "" {
		c.Scheduler.MarkNoShows = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ReconcileAvailability == "" {
		c.Scheduler.ReconcileAvailability = "0 30 3 * * *" // 3:30 AM UTC
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
