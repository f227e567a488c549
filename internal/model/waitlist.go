package model

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// SignupRole is who a waitlist signup is registering as
type SignupRole string

const (
	RoleHomeowner  SignupRole = "homeowner"
	RoleContractor SignupRole = "contractor"
)

// IsValid returns true if the role is known
func (r SignupRole) IsValid() bool {
	switch r {
	case RoleHomeowner, RoleContractor:
		return true
	default:
		return false
	}
}

// Roles lists every signup role in display order
func Roles() []SignupRole {
	return []SignupRole{RoleHomeowner, RoleContractor}
}

// Signup is a prospective user's registration on the waitlist
type Signup struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	ZipCode          string     `json:"zip_code"`
	Role             SignupRole `json:"role"`
	UnsubscribeToken string     `json:"unsubscribe_token"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"`
	WelcomeSentAt    *time.Time `json:"welcome_sent_at,omitempty"`
	WelcomeFailures  int        `json:"welcome_failures,omitempty"`
	CreatedOn        time.Time  `json:"created_on"`
}

// Subscribed reports whether the signup still accepts email
func (s *Signup) Subscribed() bool {
	return s.UnsubscribedAt == nil
}

// JoinWaitlistRequest represents a request to join the waitlist
type JoinWaitlistRequest struct {
	Email   string     `json:"email"`
	ZipCode string     `json:"zip_code"`
	Role    SignupRole `json:"role"`
}

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Normalize trims whitespace and lowercases the email
func (r *JoinWaitlistRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	r.Role = SignupRole(strings.ToLower(strings.TrimSpace(string(r.Role))))
}

// Validate validates the join request. Call Normalize first.
func (r *JoinWaitlistRequest) Validate() []FieldError {
	var errors []FieldError

	switch {
	case r.Email == "":
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	case len(r.Email) > MaxEmailLength:
		errors = append(errors, FieldError{Field: "email", Message: "email exceeds maximum length"})
	case !isPlainAddress(r.Email):
		errors = append(errors, FieldError{Field: "email", Message: "email is not a valid address"})
	}

	if !zipCodePattern.MatchString(r.ZipCode) {
		errors = append(errors, FieldError{
			Field:   "zip_code",
			Message: "zip code must be 5 digits or ZIP+4",
		})
	}

	if !r.Role.IsValid() {
		errors = append(errors, FieldError{
			Field:   "role",
			Message: "role must be homeowner or contractor",
		})
	}

	return errors
}

// isPlainAddress accepts a bare address with a dotted domain, rejecting
// display-name forms like "Name <a@b.c>" that net/mail would parse.
func isPlainAddress(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// UnsubscribeRequest is the body of POST /api/unsubscribe
type UnsubscribeRequest struct {
	Token interface{} `json:"token"`
}

// unsubscribeTokenPattern is the canonical hyphenated UUID shape.
var unsubscribeTokenPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUnsubscribeToken reports whether token has the shape of an unsubscribe token
func IsUnsubscribeToken(token string) bool {
	return unsubscribeTokenPattern.MatchString(token)
}

// CanonicalToken returns the stored form of an unsubscribe token. Tokens are
// UUIDs, so case does not distinguish them.
func CanonicalToken(token string) string {
	return strings.ToLower(token)
}

// SignupFilter narrows admin signup listings
type SignupFilter struct {
	Role   SignupRole
	Limit  int
	Offset int
	// Before restricts the listing to signups strictly older than the
	// cursor. Exports page with it so concurrent signups cannot shift rows.
	Before *SignupCursor
}

// SignupCursor is a position in the newest-first signup order
type SignupCursor struct {
	CreatedOn time.Time
	ID        string
}

// CursorAfter returns the cursor that continues a listing after s
func CursorAfter(s *Signup) *SignupCursor {
	return &SignupCursor{CreatedOn: s.CreatedOn, ID: s.ID}
}

// Normalize applies the default and maximum page size
func (f *SignupFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultSignupLimit
	}
	if f.Limit > MaxSignupLimit {
		f.Limit = MaxSignupLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SignupPage is one page of an admin listing, newest first
type SignupPage struct {
	Signups []*Signup `json:"signups"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
	HasMore bool      `json:"has_more"`
}

// WaitlistStats summarizes the waitlist for the dashboard
type WaitlistStats struct {
	Total        int                `json:"total"`
	ByRole       map[SignupRole]int `json:"by_role"`
	Unsubscribed int                `json:"unsubscribed"`
	Welcomed     int                `json:"welcomed"`
}

// SpotsSummary is the public founding-spot counter
type SpotsSummary struct {
	Total     int `json:"total"`
	Taken     int `json:"taken"`
	Remaining int `json:"remaining"`
}

// Business constraints for the waitlist
const (
	MaxEmailLength      = 254
	DefaultSignupLimit  = 50
	MaxSignupLimit      = 500
	DefaultWelcomeBatch = 50
	// MaxWelcomeFailures is how many failed sends a signup gets before the
	// welcome job stops retrying it
	MaxWelcomeFailures = 5
)
