package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers
const (
	DriverSurrealDB = "surrealdb"
	DriverSQLite    = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Mail     MailConfig
	Site     SiteConfig
	Waitlist WaitlistConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
	TrustProxy     bool
}

// DatabaseConfig holds storage settings. SurrealDB is the production store;
// SQLite is an embedded store for local development and single-node deploys.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Namespace  string
	Database   string
	User       string
	Password   string
	SQLitePath string
}

// JWTConfig holds admin token signing settings
type JWTConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	ExpirationMins int
	Issuer         string
}

// AdminConfig holds the single dashboard operator account
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// Enabled reports whether admin login is configured
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.PasswordHash != ""
}

// MailConfig holds transactional email settings
type MailConfig struct {
	MailjetPublicKey  string
	MailjetPrivateKey string
	SenderEmail       string
	SenderName        string
	WelcomeEnabled    bool
	WelcomeSchedule   string
	WelcomeBatchSize  int
}

// UsesMailjet reports whether Mailjet credentials are present
func (m MailConfig) UsesMailjet() bool {
	return m.MailjetPublicKey != "" && m.MailjetPrivateKey != ""
}

// SiteConfig holds public site settings
type SiteConfig struct {
	BaseURL      string
	AssetOrigin  string
	ContactEmail string
	AnalyticsID  string
}

// WaitlistConfig holds waitlist campaign settings
type WaitlistConfig struct {
	FoundingSpots int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			RateLimit:      getIntEnv("RATE_LIMIT", 30),
			RateWindow:     getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			TrustProxy:     getBoolEnv("TRUST_PROXY", false),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverSurrealDB),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "8000"),
			Namespace:  getEnv("DB_NAMESPACE", "guild"),
			Database:   getEnv("DB_DATABASE", "main"),
			User:       getEnv("DB_USER", "root"),
			Password:   getEnv("DB_PASSWORD", "root"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/guild.db"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./keys/private.pem"),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./keys/public.pem"),
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 60),
			Issuer:         getEnv("JWT_ISSUER", "joinguild.app"),
		},
		Admin: AdminConfig{
			Email:        strings.ToLower(getEnv("ADMIN_EMAIL", "")),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Mail: MailConfig{
			MailjetPublicKey:  getEnv("MAILJET_PUBLIC_KEY", ""),
			MailjetPrivateKey: getEnv("MAILJET_PRIVATE_KEY", ""),
			SenderEmail:       getEnv("MAIL_SENDER_EMAIL", "hello@joinguild.app"),
			SenderName:        getEnv("MAIL_SENDER_NAME", "Guild"),
			WelcomeEnabled:    getBoolEnv("WELCOME_MAIL_ENABLED", true),
			WelcomeSchedule:   getEnv("WELCOME_MAIL_SCHEDULE", "@every 5m"),
			WelcomeBatchSize:  getIntEnv("WELCOME_MAIL_BATCH_SIZE", 50),
		},
		Site: SiteConfig{
			BaseURL:      strings.TrimRight(getEnv("SITE_BASE_URL", "https://joinguild.app"), "/"),
			AssetOrigin:  getEnv("SITE_ASSET_ORIGIN", "https://tdhxydzsguacwuwtledk.supabase.co"),
			ContactEmail: getEnv("SITE_CONTACT_EMAIL", "hello@joinguild.app"),
			AnalyticsID:  getEnv("SITE_ANALYTICS_ID", "G-CWPHNGS1WT"),
		},
		Waitlist: WaitlistConfig{
			FoundingSpots: getIntEnv("WAITLIST_FOUNDING_SPOTS", 100),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT must be positive"))
	}

	// Database validation
	switch c.Database.Driver {
	case DriverSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when DB_DRIVER is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be '%s' or '%s', got '%s'", DriverSurrealDB, DriverSQLite, c.Database.Driver))
	}

	// Admin tokens are only needed when the dashboard login is on
	if c.Admin.Enabled() {
		if c.JWT.PrivateKeyPath == "" {
			errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH is required when ADMIN_EMAIL is set"))
		}
		if c.JWT.ExpirationMins <= 0 {
			errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
		}
		if !strings.HasPrefix(c.Admin.PasswordHash, "$2") {
			errs = append(errs, errors.New("ADMIN_PASSWORD_HASH must be a bcrypt hash"))
		}
	}

	// Mail validation
	if c.Mail.WelcomeEnabled {
		if c.Mail.WelcomeSchedule == "" {
			errs = append(errs, errors.New("WELCOME_MAIL_SCHEDULE is required when WELCOME_MAIL_ENABLED is true"))
		}
		if c.Mail.WelcomeBatchSize <= 0 {
			errs = append(errs, errors.New("WELCOME_MAIL_BATCH_SIZE must be positive"))
		}
	}
	if c.Mail.MailjetPublicKey != "" && c.Mail.MailjetPrivateKey == "" ||
		c.Mail.MailjetPublicKey == "" && c.Mail.MailjetPrivateKey != "" {
		errs = append(errs, errors.New("MAILJET_PUBLIC_KEY and MAILJET_PRIVATE_KEY must be set together"))
	}
	if c.IsProduction() && c.Mail.WelcomeEnabled && !c.Mail.UsesMailjet() {
		errs = append(errs, errors.New("Mailjet credentials are required for welcome mail in production"))
	}

	// Site validation
	if u, err := url.Parse(c.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("SITE_BASE_URL must be an absolute URL, got '%s'", c.Site.BaseURL))
	}
	if c.Site.AssetOrigin != "" {
		if u, err := url.Parse(c.Site.AssetOrigin); err != nil || u.Scheme != "https" || u.Host == "" {
			errs = append(errs, fmt.Errorf("SITE_ASSET_ORIGIN must be an https origin, got '%s'", c.Site.AssetOrigin))
		}
	}

	if c.Waitlist.FoundingSpots < 0 {
		errs = append(errs, errors.New("WAITLIST_FOUNDING_SPOTS must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
