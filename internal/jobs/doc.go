// Package jobs implements background jobs for the Guild waitlist site.
//
// Jobs run on a robfig/cron schedule independently of HTTP request
// handling. Each job has Start and Stop for the server lifecycle and
// RunOnce for manual triggers and tests.
//
//   - WelcomeMailer: sends welcome emails to new signups in batches
//
// Jobs log failures through slog and retry on the next tick; they never
// crash the server.
package jobs
