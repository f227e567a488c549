package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// WelcomeSender sends one batch of pending welcome emails
type WelcomeSender interface {
	SendPending(ctx context.Context) (int, error)
}

// DefaultWelcomeSchedule runs the mailer every five minutes
const DefaultWelcomeSchedule = "@every 5m"

// WelcomeMailer runs the welcome email batch on a cron schedule.
// Overlapping runs are skipped so a slow mail provider never stacks batches.
type WelcomeMailer struct {
	sender   WelcomeSender
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	running  bool
	mu       sync.Mutex
}

// WelcomeMailerConfig holds configuration for the welcome mailer job
type WelcomeMailerConfig struct {
	Sender   WelcomeSender
	Schedule string        // cron spec or descriptor (default @every 5m)
	Timeout  time.Duration // per run (default 2 minutes)
}

// NewWelcomeMailer creates the job and validates its schedule
func NewWelcomeMailer(cfg WelcomeMailerConfig) (*WelcomeMailer, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultWelcomeSchedule
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	m := &WelcomeMailer{
		sender:   cfg.Sender,
		schedule: cfg.Schedule,
		timeout:  cfg.Timeout,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{}),
			cron.SkipIfStillRunning(cronLogger{}),
		)),
	}
	if _, err := m.cron.AddFunc(cfg.Schedule, m.tick); err != nil {
		return nil, fmt.Errorf("invalid welcome schedule %q: %w", cfg.Schedule, err)
	}
	return m, nil
}

// Start begins running on the schedule
func (m *WelcomeMailer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.cron.Start()
	slog.Info("welcome mailer started", slog.String("schedule", m.schedule))
}

// Stop halts the schedule and waits for a run in progress to finish
func (m *WelcomeMailer) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	<-m.cron.Stop().Done()
	slog.Info("welcome mailer stopped")
}

// IsRunning returns whether the schedule is active
func (m *WelcomeMailer) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// RunOnce sends one batch immediately
func (m *WelcomeMailer) RunOnce(ctx context.Context) (int, error) {
	return m.sender.SendPending(ctx)
}

func (m *WelcomeMailer) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if _, err := m.sender.SendPending(ctx); err != nil {
		slog.Error("welcome mailer run failed", slog.String("error", err.Error()))
	}
}

// cronLogger routes cron's own messages through slog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
