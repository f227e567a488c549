package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/guild/api/internal/database"
	"github.com/forgo/guild/api/internal/model"
)

// WaitlistRepository handles waitlist signup data access in SurrealDB
type WaitlistRepository struct {
	db database.Database
}

// NewWaitlistRepository creates a new waitlist repository
func NewWaitlistRepository(db database.Database) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

// Ping checks the underlying database connection
func (r *WaitlistRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Create inserts a new signup. A taken email returns database.ErrDuplicate.
func (r *WaitlistRepository) Create(ctx context.Context, signup *model.Signup) error {
	query := `
		CREATE waitlist_signup CONTENT {
			email: $email,
			zip_code: $zip_code,
			role: $role,
			unsubscribe_token: $token,
			welcome_failures: 0,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email":    signup.Email,
		"zip_code": signup.ZipCode,
		"role":     string(signup.Role),
		"token":    signup.UnsubscribeToken,
	}

	rows, err := r.db.QueryRows(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) || isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already on waitlist", database.ErrDuplicate)
		}
		return err
	}
	if len(rows) == 0 {
		return errors.New("no result returned")
	}

	created := parseSignup(rows[0])
	signup.ID = created.ID
	signup.CreatedOn = created.CreatedOn
	return nil
}

// GetByEmail retrieves a signup by email, or nil if there is none
func (r *WaitlistRepository) GetByEmail(ctx context.Context, email string) (*model.Signup, error) {
	query := `SELECT * FROM waitlist_signup WHERE email = $email LIMIT 1`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"email": email})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseSignup(data), nil
}

// Unsubscribe marks the signup holding token as unsubscribed. It reports
// whether a row changed; unknown and already-unsubscribed tokens change nothing.
func (r *WaitlistRepository) Unsubscribe(ctx context.Context, token string) (bool, error) {
	query := `
		UPDATE waitlist_signup
		SET unsubscribed_at = time::now()
		WHERE unsubscribe_token = $token AND unsubscribed_at = NONE
		RETURN AFTER
	`
	rows, err := r.db.QueryRows(ctx, query, map[string]interface{}{"token": token})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// List returns one page of signups, newest first
func (r *WaitlistRepository) List(ctx context.Context, filter model.SignupFilter) (*model.SignupPage, error) {
	filter.Normalize()

	vars := map[string]interface{}{
		// one extra row tells us whether another page exists
		"limit":  filter.Limit + 1,
		"offset": filter.Offset,
	}
	var where []string
	if filter.Role != "" {
		where = append(where, `role = $role`)
		vars["role"] = string(filter.Role)
	}
	if c := filter.Before; c != nil {
		where = append(where, `(created_on < $before_at OR (created_on = $before_at AND id < type::record($before_id)))`)
		vars["before_at"] = c.CreatedOn.UTC()
		vars["before_id"] = c.ID
	}

	query := `SELECT * FROM waitlist_signup`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_on DESC, id DESC LIMIT $limit START $offset`

	rows, err := r.db.QueryRows(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	page := &model.SignupPage{Limit: filter.Limit, Offset: filter.Offset, Signups: make([]*model.Signup, 0, len(rows))}
	for _, row := range rows {
		page.Signups = append(page.Signups, parseSignup(row))
	}
	if len(page.Signups) > filter.Limit {
		page.Signups = page.Signups[:filter.Limit]
		page.HasMore = true
	}
	return page, nil
}

// Stats aggregates the waitlist for the admin dashboard
func (r *WaitlistRepository) Stats(ctx context.Context) (*model.WaitlistStats, error) {
	query := `
		SELECT role, count() AS count FROM waitlist_signup GROUP BY role;
		SELECT count() AS count FROM waitlist_signup WHERE unsubscribed_at != NONE GROUP ALL;
		SELECT count() AS count FROM waitlist_signup WHERE welcome_sent_at != NONE GROUP ALL;
	`
	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	stats := &model.WaitlistStats{ByRole: make(map[model.SignupRole]int)}
	for _, role := range model.Roles() {
		stats.ByRole[role] = 0
	}
	for _, row := range statementRows(results, 0) {
		n := extractCount(row)
		stats.ByRole[model.SignupRole(getString(row, "role"))] += n
		stats.Total += n
	}
	if rows := statementRows(results, 1); len(rows) > 0 {
		stats.Unsubscribed = extractCount(rows[0])
	}
	if rows := statementRows(results, 2); len(rows) > 0 {
		stats.Welcomed = extractCount(rows[0])
	}
	return stats, nil
}

// CountByRole counts every signup with role, unsubscribed or not
func (r *WaitlistRepository) CountByRole(ctx context.Context, role model.SignupRole) (int, error) {
	query := `SELECT count() AS count FROM waitlist_signup WHERE role = $role GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"role": string(role)})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return extractCount(result), nil
}

// PendingWelcome returns subscribed signups still owed a welcome email,
// fewest failed sends first and oldest first within that
func (r *WaitlistRepository) PendingWelcome(ctx context.Context, limit int) ([]*model.Signup, error) {
	query := `
		SELECT * FROM waitlist_signup
		WHERE welcome_sent_at = NONE AND unsubscribed_at = NONE AND welcome_failures < $max_failures
		ORDER BY welcome_failures ASC, created_on ASC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"limit":        limit,
		"max_failures": model.MaxWelcomeFailures,
	}
	rows, err := r.db.QueryRows(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	signups := make([]*model.Signup, 0, len(rows))
	for _, row := range rows {
		signups = append(signups, parseSignup(row))
	}
	return signups, nil
}

// MarkWelcomed records that the welcome email went out
func (r *WaitlistRepository) MarkWelcomed(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET welcome_sent_at = time::now() WHERE welcome_sent_at = NONE`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// RecordWelcomeFailure counts a failed welcome send against the signup
func (r *WaitlistRepository) RecordWelcomeFailure(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET welcome_failures += 1`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func parseSignup(data map[string]interface{}) *model.Signup {
	signup := &model.Signup{
		Email:            getString(data, "email"),
		ZipCode:          getString(data, "zip_code"),
		Role:             model.SignupRole(getString(data, "role")),
		UnsubscribeToken: getString(data, "unsubscribe_token"),
		UnsubscribedAt:   getTime(data, "unsubscribed_at"),
		WelcomeSentAt:    getTime(data, "welcome_sent_at"),
		WelcomeFailures:  getInt(data, "welcome_failures"),
	}
	if id, ok := data["id"]; ok {
		signup.ID = convertSurrealID(id)
	}
	if created := getTime(data, "created_on"); created != nil {
		signup.CreatedOn = *created
	}
	return signup
}
