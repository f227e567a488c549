package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/view"
)

// WelcomeService emails signups that have not been welcomed yet
type WelcomeService struct {
	repo      WaitlistRepository
	mailer    Mailer
	site      view.Site
	batchSize int
}

// WelcomeServiceConfig holds configuration for the welcome service
type WelcomeServiceConfig struct {
	Repo      WaitlistRepository
	Mailer    Mailer
	Site      view.Site
	BatchSize int
}

// NewWelcomeService creates a new welcome service
func NewWelcomeService(cfg WelcomeServiceConfig) *WelcomeService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = model.DefaultWelcomeBatch
	}
	return &WelcomeService{
		repo:      cfg.Repo,
		mailer:    cfg.Mailer,
		site:      cfg.Site,
		batchSize: cfg.BatchSize,
	}
}

// SendPending sends one batch of welcome emails. Signups with fewer failed
// sends go first, oldest first within that, so a handful of bouncing
// addresses cannot hold the queue. A failed send is counted and retried on a
// later run until model.MaxWelcomeFailures; only store errors abort the batch.
func (s *WelcomeService) SendPending(ctx context.Context) (int, error) {
	pending, err := s.repo.PendingWelcome(ctx, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("load pending welcomes: %w", err)
	}

	sent := 0
	for _, signup := range pending {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		msg, err := s.buildMessage(ctx, signup)
		if err != nil {
			return sent, err
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			slog.WarnContext(ctx, "welcome email failed",
				slog.String("signup_id", signup.ID),
				slog.String("error", err.Error()),
				slog.Int("failures", signup.WelcomeFailures+1),
			)
			if err := s.repo.RecordWelcomeFailure(ctx, signup.ID); err != nil {
				return sent, fmt.Errorf("record welcome failure %s: %w", signup.ID, err)
			}
			continue
		}
		if err := s.repo.MarkWelcomed(ctx, signup.ID); err != nil {
			return sent, fmt.Errorf("mark welcomed %s: %w", signup.ID, err)
		}
		sent++
	}

	if len(pending) > 0 {
		slog.InfoContext(ctx, "welcome batch processed",
			slog.Int("pending", len(pending)),
			slog.Int("sent", sent),
		)
	}
	return sent, nil
}

func (s *WelcomeService) buildMessage(ctx context.Context, signup *model.Signup) (Message, error) {
	email := view.WelcomeEmail{Site: s.site, Role: signup.Role, Token: signup.UnsubscribeToken}

	var html bytes.Buffer
	if err := email.HTML().Render(ctx, &html); err != nil {
		return Message{}, fmt.Errorf("render welcome email: %w", err)
	}

	return Message{
		To:      signup.Email,
		Subject: email.Subject(),
		Text:    email.Text(),
		HTML:    html.String(),
		Headers: map[string]string{
			"List-Unsubscribe": "<" + email.UnsubscribeURL() + ">",
		},
	}, nil
}
