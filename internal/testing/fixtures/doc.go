// # Customization
//
// Use option functions for customization:
//
//	f.CreateSignup(t, fixtures.WithEmail("pat@example.com"), fixtures.AsContractor())
//	f.CreateSignup(t, fixtures.Unsubscribed())
//
// # Random Data
//
// Emails are generated from random hex ids so fixtures never collide on
// the unique email index.
package fixtures
