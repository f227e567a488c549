// Package fixtures provides test data factories for integration testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	signup := f.CreateSignup(t, fixtures.AsContractor())
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/guild/api/internal/database"
	"github.com/forgo/guild/api/internal/model"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ============================================================================
// Signup Fixtures
// ============================================================================

// SignupOpts customizes signup creation
type SignupOpts struct {
	Email        string
	ZipCode      string
	Role         model.SignupRole
	Unsubscribed bool
	Welcomed     bool
}

// AsContractor makes the signup a contractor
func AsContractor() func(*SignupOpts) {
	return func(o *SignupOpts) { o.Role = model.RoleContractor }
}

// WithEmail sets the signup email
func WithEmail(email string) func(*SignupOpts) {
	return func(o *SignupOpts) { o.Email = email }
}

// Unsubscribed creates the signup already unsubscribed
func Unsubscribed() func(*SignupOpts) {
	return func(o *SignupOpts) { o.Unsubscribed = true }
}

// Welcomed creates the signup with its welcome email already sent
func Welcomed() func(*SignupOpts) {
	return func(o *SignupOpts) { o.Welcomed = true }
}

// CreateSignup inserts a waitlist signup with optional customizations
func (f *Factory) CreateSignup(t *testing.T, opts ...func(*SignupOpts)) *model.Signup {
	t.Helper()

	o := &SignupOpts{
		Email:   fmt.Sprintf("signup_%s@test.local", randomID()),
		ZipCode: "97201",
		Role:    model.RoleHomeowner,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE waitlist_signup CONTENT {
			email: $email,
			zip_code: $zip_code,
			role: $role,
			unsubscribe_token: $token,
			unsubscribed_at: IF $unsubscribed THEN time::now() ELSE NONE END,
			welcome_sent_at: IF $welcomed THEN time::now() ELSE NONE END,
			created_on: time::now()
		}
	`
	token := uuid.NewString()
	vars := map[string]interface{}{
		"email":        o.Email,
		"zip_code":     o.ZipCode,
		"role":         string(o.Role),
		"token":        token,
		"unsubscribed": o.Unsubscribed,
		"welcomed":     o.Welcomed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := f.db.QueryRows(ctx, query, vars)
	if err != nil {
		t.Fatalf("fixtures: failed to create signup: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("fixtures: create signup returned no rows")
	}

	signup := &model.Signup{
		Email:            o.Email,
		ZipCode:          o.ZipCode,
		Role:             o.Role,
		UnsubscribeToken: token,
	}
	switch id := rows[0]["id"].(type) {
	case models.RecordID:
		signup.ID = id.String()
	case *models.RecordID:
		signup.ID = id.String()
	case string:
		signup.ID = id
	}
	now := time.Now()
	if o.Unsubscribed {
		signup.UnsubscribedAt = &now
	}
	if o.Welcomed {
		signup.WelcomeSentAt = &now
	}
	return signup
}

// ============================================================================
// Admin Fixtures
// ============================================================================

// HashPassword returns a cheap bcrypt hash for admin login tests
func HashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	return string(hash)
}
