// Package sqlite provides a SQLite-backed waitlist store for local development
// and single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/forgo/guild/api/internal/database"
	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/repository/sqlite/migrations"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Store persists waitlist signups in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := MemoryPath
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %v", database.ErrConnection, err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks the SQLite handle
func (s *Store) Ping(ctx context.Context) error {
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", database.ErrConnection, err)
	}
	return nil
}

// Create inserts a new signup. A taken email returns database.ErrDuplicate.
func (s *Store) Create(ctx context.Context, signup *model.Signup) error {
	id := uuid.NewString()
	created := s.now().UTC()

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO waitlist_signups (id, email, zip_code, role, unsubscribe_token, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, signup.Email, signup.ZipCode, string(signup.Role), signup.UnsubscribeToken, toMillis(created),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already on waitlist", database.ErrDuplicate)
		}
		return fmt.Errorf("%w: insert signup: %v", database.ErrQuery, err)
	}

	signup.ID = id
	signup.CreatedOn = fromMillis(toMillis(created))
	return nil
}

const signupColumns = `id, email, zip_code, role, unsubscribe_token, unsubscribed_at, welcome_sent_at, welcome_failures, created_at`

// GetByEmail retrieves a signup by email, or nil if there is none
func (s *Store) GetByEmail(ctx context.Context, email string) (*model.Signup, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+signupColumns+` FROM waitlist_signups WHERE email = ?`, email)

	signup, err := scanSignup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get signup: %v", database.ErrQuery, err)
	}
	return signup, nil
}

// Unsubscribe marks the signup holding token as unsubscribed and reports whether a row changed
func (s *Store) Unsubscribe(ctx context.Context, token string) (bool, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE waitlist_signups SET unsubscribed_at = ?
		 WHERE unsubscribe_token = ? AND unsubscribed_at IS NULL`,
		toMillis(s.now()), token,
	)
	if err != nil {
		return false, fmt.Errorf("%w: unsubscribe: %v", database.ErrQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: unsubscribe: %v", database.ErrQuery, err)
	}
	return n > 0, nil
}

// List returns one page of signups, newest first
func (s *Store) List(ctx context.Context, filter model.SignupFilter) (*model.SignupPage, error) {
	filter.Normalize()

	var (
		where []string
		args  []any
	)
	if filter.Role != "" {
		where = append(where, `role = ?`)
		args = append(args, string(filter.Role))
	}
	if c := filter.Before; c != nil {
		at := toMillis(c.CreatedOn)
		where = append(where, `(created_at < ? OR (created_at = ? AND id < ?))`)
		args = append(args, at, at, c.ID)
	}

	query := `SELECT ` + signupColumns + ` FROM waitlist_signups`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit+1, filter.Offset)

	signups, err := s.querySignups(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	page := &model.SignupPage{Signups: signups, Limit: filter.Limit, Offset: filter.Offset}
	if len(page.Signups) > filter.Limit {
		page.Signups = page.Signups[:filter.Limit]
		page.HasMore = true
	}
	return page, nil
}

// Stats aggregates the waitlist for the admin dashboard
func (s *Store) Stats(ctx context.Context) (*model.WaitlistStats, error) {
	stats := &model.WaitlistStats{ByRole: make(map[model.SignupRole]int)}
	for _, role := range model.Roles() {
		stats.ByRole[role] = 0
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT role, COUNT(*) FROM waitlist_signups GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("%w: stats: %v", database.ErrQuery, err)
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("%w: stats: %v", database.ErrQuery, err)
		}
		stats.ByRole[model.SignupRole(role)] += n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: stats: %v", database.ErrQuery, err)
	}

	err = s.sqlDB.QueryRowContext(ctx,
		`SELECT
		   COUNT(unsubscribed_at),
		   COUNT(welcome_sent_at)
		 FROM waitlist_signups`,
	).Scan(&stats.Unsubscribed, &stats.Welcomed)
	if err != nil {
		return nil, fmt.Errorf("%w: stats: %v", database.ErrQuery, err)
	}
	return stats, nil
}

// CountByRole counts every signup with role, unsubscribed or not
func (s *Store) CountByRole(ctx context.Context, role model.SignupRole) (int, error) {
	var n int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM waitlist_signups WHERE role = ?`, string(role)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", database.ErrQuery, err)
	}
	return n, nil
}

// PendingWelcome returns subscribed signups still owed a welcome email,
// fewest failed sends first and oldest first within that
func (s *Store) PendingWelcome(ctx context.Context, limit int) ([]*model.Signup, error) {
	return s.querySignups(ctx,
		`SELECT `+signupColumns+` FROM waitlist_signups
		 WHERE welcome_sent_at IS NULL AND unsubscribed_at IS NULL AND welcome_failures < ?
		 ORDER BY welcome_failures ASC, created_at ASC, rowid ASC
		 LIMIT ?`, model.MaxWelcomeFailures, limit)
}

// MarkWelcomed records that the welcome email went out
func (s *Store) MarkWelcomed(ctx context.Context, id string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`UPDATE waitlist_signups SET welcome_sent_at = ? WHERE id = ? AND welcome_sent_at IS NULL`,
		toMillis(s.now()), id)
	if err != nil {
		return fmt.Errorf("%w: mark welcomed: %v", database.ErrQuery, err)
	}
	return nil
}

// RecordWelcomeFailure counts a failed welcome send against the signup
func (s *Store) RecordWelcomeFailure(ctx context.Context, id string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`UPDATE waitlist_signups SET welcome_failures = welcome_failures + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: record welcome failure: %v", database.ErrQuery, err)
	}
	return nil
}

func (s *Store) querySignups(ctx context.Context, query string, args ...any) ([]*model.Signup, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list signups: %v", database.ErrQuery, err)
	}
	defer rows.Close()

	signups := make([]*model.Signup, 0)
	for rows.Next() {
		signup, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan signup: %v", database.ErrQuery, err)
		}
		signups = append(signups, signup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list signups: %v", database.ErrQuery, err)
	}
	return signups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSignup(row rowScanner) (*model.Signup, error) {
	var (
		signup         model.Signup
		role           string
		unsubscribedAt sql.NullInt64
		welcomeSentAt  sql.NullInt64
		createdAt      int64
	)
	if err := row.Scan(
		&signup.ID,
		&signup.Email,
		&signup.ZipCode,
		&role,
		&signup.UnsubscribeToken,
		&unsubscribedAt,
		&welcomeSentAt,
		&signup.WelcomeFailures,
		&createdAt,
	); err != nil {
		return nil, err
	}
	signup.Role = model.SignupRole(role)
	signup.CreatedOn = fromMillis(createdAt)
	if unsubscribedAt.Valid {
		t := fromMillis(unsubscribedAt.Int64)
		signup.UnsubscribedAt = &t
	}
	if welcomeSentAt.Valid {
		t := fromMillis(welcomeSentAt.Int64)
		signup.WelcomeSentAt = &t
	}
	return &signup, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
