// Package service implements the business logic layer for the Guild API.
//
// Services sit between HTTP handlers and storage: they validate input,
// apply waitlist rules (silent duplicate joins, set-once unsubscribe,
// founding spot counting) and orchestrate repository and mail calls.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces. WaitlistRepository is
// satisfied by both the SurrealDB repository and the SQLite store, and by
// the func-field mocks in this package's tests.
//
// # Mail
//
// Mailer abstracts delivery. MailjetMailer talks to the Mailjet send API;
// LogMailer only logs and is used when no credentials are configured.
//
// # Example Usage
//
//	waitlist := NewWaitlistService(WaitlistServiceConfig{
//	    Repo:          store,
//	    FoundingSpots: cfg.Waitlist.FoundingSpots,
//	})
//	if err := waitlist.Unsubscribe(ctx, token); err != nil {
//	    return err
//	}
package service
