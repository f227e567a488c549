// Package config manages application configuration for the Guild API.
//
// Configuration is loaded from environment variables and validated once at
// startup:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, rate limit)
//   - DatabaseConfig: storage driver, SurrealDB connection, SQLite path
//   - JWTConfig / AdminConfig: dashboard login and admin tokens
//   - MailConfig: Mailjet credentials and the welcome mail schedule
//   - SiteConfig: public base URL and the asset origin allowed by the CSP
//   - WaitlistConfig: founding contractor spots
//
// # Environment Variables
//
//	SERVER_PORT              - HTTP server port (default: 8080)
//	DB_DRIVER                - surrealdb or sqlite (default: surrealdb)
//	SQLITE_PATH              - SQLite database file (default: ./data/guild.db)
//	ADMIN_EMAIL              - dashboard operator email (login disabled if empty)
//	ADMIN_PASSWORD_HASH      - bcrypt hash of the operator password
//	MAILJET_PUBLIC_KEY       - Mailjet API key (log-only mailer if empty)
//	WELCOME_MAIL_SCHEDULE    - cron spec for the welcome mailer (default: @every 5m)
//	WAITLIST_FOUNDING_SPOTS  - advertised founding spots (default: 100)
package config
