package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/guild/api/internal/composition"
	"github.com/forgo/guild/api/internal/config"
	"github.com/forgo/guild/api/internal/database"
	"github.com/forgo/guild/api/internal/jobs"
	"github.com/forgo/guild/api/internal/middleware"
	"github.com/forgo/guild/api/internal/repository"
	"github.com/forgo/guild/api/internal/repository/sqlite"
	"github.com/forgo/guild/api/internal/service"
	"github.com/forgo/guild/api/internal/view"
	"github.com/forgo/guild/api/migrations"
	"github.com/forgo/guild/api/pkg/jwt"
)

// loginRateLimit caps admin login attempts per client per window
const loginRateLimit = 10

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize the waitlist store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// Initialize JWT service only when the dashboard login is configured
	var jwtService *jwt.Service
	if cfg.Admin.Enabled() {
		jwtService, err = jwt.NewService(jwt.Config{
			PrivateKeyPath: cfg.JWT.PrivateKeyPath,
			PublicKeyPath:  cfg.JWT.PublicKeyPath,
			Issuer:         cfg.JWT.Issuer,
			ExpirationMins: cfg.JWT.ExpirationMins,
		})
		if err != nil {
			slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		slog.Info("admin dashboard disabled: ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set")
	}

	site := view.Site{
		BaseURL:      cfg.Site.BaseURL,
		AssetOrigin:  cfg.Site.AssetOrigin,
		ContactEmail: cfg.Site.ContactEmail,
		AnalyticsID:  cfg.Site.AnalyticsID,
	}

	// Initialize services
	waitlistService := service.NewWaitlistService(service.WaitlistServiceConfig{
		Repo:          store,
		FoundingSpots: cfg.Waitlist.FoundingSpots,
	})

	adminService := service.NewAdminService(service.AdminServiceConfig{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTService:   jwtService,
	})

	var mailer service.Mailer
	if cfg.Mail.UsesMailjet() {
		mailer = service.NewMailjetMailer(service.MailjetConfig{
			PublicKey:   cfg.Mail.MailjetPublicKey,
			PrivateKey:  cfg.Mail.MailjetPrivateKey,
			SenderEmail: cfg.Mail.SenderEmail,
			SenderName:  cfg.Mail.SenderName,
		})
	} else {
		mailer = service.NewLogMailer(logger)
		slog.Info("mailjet not configured, welcome emails will be logged")
	}

	welcomeService := service.NewWelcomeService(service.WelcomeServiceConfig{
		Repo:      store,
		Mailer:    mailer,
		Site:      site,
		BatchSize: cfg.Mail.WelcomeBatchSize,
	})

	// Start background jobs
	var welcomeMailer *jobs.WelcomeMailer
	if cfg.Mail.WelcomeEnabled {
		welcomeMailer, err = jobs.NewWelcomeMailer(jobs.WelcomeMailerConfig{
			Sender:   welcomeService,
			Schedule: cfg.Mail.WelcomeSchedule,
		})
		if err != nil {
			slog.Error("failed to create welcome mailer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		welcomeMailer.Start()
	}

	siteLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.Server.RateLimit,
		Window: cfg.Server.RateWindow,
		Burst:  -1,
	})
	defer siteLimiter.Stop()

	loginLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   loginRateLimit,
		Window: cfg.Server.RateWindow,
		Burst:  -1,
	})
	defer loginLimiter.Stop()

	deps := routerDeps{
		Waitlist:       waitlistService,
		Admin:          adminService,
		Registry:       composition.Default(),
		Site:           site,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustProxy:     cfg.Server.TrustProxy,
		SiteLimiter:    siteLimiter,
		LoginLimiter:   loginLimiter,
	}
	if jwtService != nil {
		deps.Tokens = jwtService
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("store", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	if welcomeMailer != nil {
		welcomeMailer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

// openStore connects the configured waitlist store and returns its closer
func openStore(ctx context.Context, cfg *config.Config) (service.WaitlistRepository, func(), error) {
	if cfg.Database.Driver == config.DriverSQLite {
		store, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("opened sqlite store", slog.String("path", cfg.Database.SQLitePath))
		return store, func() { _ = store.Close() }, nil
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)
	return repository.NewWaitlistRepository(db), func() { _ = db.Close() }, nil
}
