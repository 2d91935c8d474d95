// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Filename string `yaml:"filename"`
}

type StripeConfig struct {
	// SecretKey comes from the environment only. Empty means payments are
	// not configured and the checkout endpoint answers 503.
	SecretKey  string `yaml:"-"`
	SuccessURL string `yaml:"success_url"`
	CancelURL  string `yaml:"cancel_url"`
	// ProductName labels the single line item on the hosted payment page.
	ProductName string `yaml:"product_name"`
}

type EmailConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type DigestConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Schedule  string `yaml:"schedule"` // cron expression
	Recipient string `yaml:"recipient"`
}

type BookingConfig struct {
	RatePerHour float64 `yaml:"rate_per_hour"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		StaticDir   string `yaml:"static_dir"`
		// AdminTokenHash is the bcrypt hash guarding the operational
		// bookings listing. Loaded from environment.
		AdminTokenHash string `yaml:"-"`
		// AllowedOrigins configures CORS for the JSON API.
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Email    EmailConfig    `yaml:"email"`
	Digest   DigestConfig   `yaml:"digest"`
	Booking  BookingConfig  `yaml:"booking"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.App.AdminTokenHash = os.Getenv("ADMIN_TOKEN_HASH")
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	if v := os.Getenv("STRIPE_SUCCESS_URL"); v != "" {
		cfg.Stripe.SuccessURL = v
	}
	if v := os.Getenv("STRIPE_CANCEL_URL"); v != "" {
		cfg.Stripe.CancelURL = v
	}
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if cfg.Booking.RatePerHour == 0 {
		cfg.Booking.RatePerHour = 35
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required")
	}
	if c.Booking.RatePerHour <= 0 {
		return fmt.Errorf("booking rate must be greater than 0")
	}
	if c.Email.Enabled {
		if c.Email.Region == "" || c.Email.Sender == "" {
			return fmt.Errorf("email region and sender are required when email is enabled")
		}
	}
	if c.Digest.Enabled {
		if c.Digest.Schedule == "" {
			return fmt.Errorf("digest schedule is required when the digest is enabled")
		}
		if c.Digest.Recipient == "" {
			return fmt.Errorf("digest recipient is required when the digest is enabled")
		}
	}
	return nil
}
