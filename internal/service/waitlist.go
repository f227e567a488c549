package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/guild/api/internal/database"
	"github.com/forgo/guild/api/internal/model"
)

// WaitlistRepository defines the interface for waitlist storage.
// Both the SurrealDB repository and the SQLite store implement it.
type WaitlistRepository interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, signup *model.Signup) error
	Unsubscribe(ctx context.Context, token string) (bool, error)
	List(ctx context.Context, filter model.SignupFilter) (*model.SignupPage, error)
	Stats(ctx context.Context) (*model.WaitlistStats, error)
	CountByRole(ctx context.Context, role model.SignupRole) (int, error)
	PendingWelcome(ctx context.Context, limit int) ([]*model.Signup, error)
	MarkWelcomed(ctx context.Context, id string) error
	RecordWelcomeFailure(ctx context.Context, id string) error
}

// WaitlistService handles waitlist business logic
type WaitlistService struct {
	repo          WaitlistRepository
	foundingSpots int
	newToken      func() string
}

// WaitlistServiceConfig holds configuration for the waitlist service
type WaitlistServiceConfig struct {
	Repo          WaitlistRepository
	FoundingSpots int
	// NewToken generates unsubscribe tokens. Default: random UUIDv4.
	NewToken func() string
}

// NewWaitlistService creates a new waitlist service
func NewWaitlistService(cfg WaitlistServiceConfig) *WaitlistService {
	if cfg.NewToken == nil {
		cfg.NewToken = uuid.NewString
	}
	return &WaitlistService{
		repo:          cfg.Repo,
		foundingSpots: cfg.FoundingSpots,
		newToken:      cfg.NewToken,
	}
}

// Join adds an email to the waitlist. Joining twice with the same email is
// a silent success so the endpoint cannot be used to discover signups.
func (s *WaitlistService) Join(ctx context.Context, req *model.JoinWaitlistRequest) error {
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return model.NewSiteValidationError(errs)
	}

	signup := &model.Signup{
		Email:            req.Email,
		ZipCode:          req.ZipCode,
		Role:             req.Role,
		UnsubscribeToken: s.newToken(),
	}
	if err := s.repo.Create(ctx, signup); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			slog.InfoContext(ctx, "waitlist signup already exists", slog.String("role", string(req.Role)))
			return nil
		}
		return fmt.Errorf("create signup: %w", err)
	}

	slog.InfoContext(ctx, "waitlist signup created",
		slog.String("signup_id", signup.ID),
		slog.String("role", string(signup.Role)),
	)
	return nil
}

// Unsubscribe stops email to whoever holds token. Unknown and
// already-used tokens succeed without changing anything.
func (s *WaitlistService) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if !model.IsUnsubscribeToken(token) {
		return ErrInvalidTokenFormat
	}

	changed, err := s.repo.Unsubscribe(ctx, model.CanonicalToken(token))
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	slog.InfoContext(ctx, "unsubscribe processed", slog.Bool("changed", changed))
	return nil
}

// Spots reports how many founding contractor spots are left. Spots are
// never released, so unsubscribed contractors still count as taken.
func (s *WaitlistService) Spots(ctx context.Context) (*model.SpotsSummary, error) {
	taken, err := s.repo.CountByRole(ctx, model.RoleContractor)
	if err != nil {
		return nil, fmt.Errorf("count contractors: %w", err)
	}
	remaining := s.foundingSpots - taken
	if remaining < 0 {
		remaining = 0
	}
	return &model.SpotsSummary{Total: s.foundingSpots, Taken: taken, Remaining: remaining}, nil
}

// List returns one page of signups for the admin dashboard
func (s *WaitlistService) List(ctx context.Context, filter model.SignupFilter) (*model.SignupPage, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, model.NewValidationError([]model.FieldError{
			{Field: "role", Message: "role must be homeowner or contractor"},
		})
	}
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// Stats returns dashboard totals
func (s *WaitlistService) Stats(ctx context.Context) (*model.WaitlistStats, error) {
	return s.repo.Stats(ctx)
}

// Ping checks the store
func (s *WaitlistService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

var exportHeader = []string{"id", "email", "zip_code", "role", "subscribed", "unsubscribed_at", "welcome_sent_at", "created_on"}

// ExportCSV writes every signup, newest first, as CSV. Pages continue from
// the last row written, so signups arriving mid-export are left out rather
// than pushing already-written rows onto the next page.
func (s *WaitlistService) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	filter := model.SignupFilter{Limit: model.MaxSignupLimit}
	for written := 0; ; {
		page, err := s.repo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("export page after %d rows: %w", written, err)
		}
		for _, signup := range page.Signups {
			if err := cw.Write(exportRecord(signup)); err != nil {
				return err
			}
		}
		written += len(page.Signups)
		if !page.HasMore || len(page.Signups) == 0 {
			break
		}
		filter.Before = model.CursorAfter(page.Signups[len(page.Signups)-1])
	}

	cw.Flush()
	return cw.Error()
}

func exportRecord(s *model.Signup) []string {
	return []string{
		s.ID,
		csvSafe(s.Email),
		csvSafe(s.ZipCode),
		string(s.Role),
		fmt.Sprintf("%t", s.Subscribed()),
		formatOptionalTime(s.UnsubscribedAt),
		formatOptionalTime(s.WelcomeSentAt),
		s.CreatedOn.UTC().Format(time.RFC3339),
	}
}

// csvSafe keeps spreadsheet apps from evaluating user-supplied cells as formulas
func csvSafe(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
