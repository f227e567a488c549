package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Waitlist Errors =====
var (
	ErrMissingToken       = errors.New("missing unsubscribe token")
	ErrInvalidTokenFormat = errors.New("invalid token format")
)

// ===== Admin Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminDisabled      = errors.New("admin login is not configured")
)

// ===== Mail Errors =====
var (
	ErrMailRejected = errors.New("mail provider rejected message")
)
