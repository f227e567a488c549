// Package middleware provides HTTP middleware for the Guild waitlist site.
//
// # Available Middleware
//
//   - SecurityHeaders: frame, sniffing, referrer and CSP headers on every response
//   - RequestID, Logger, Recovery: request tracing and panic safety
//   - CORS, Compress: browser access and gzip
//   - RateLimit, SiteRateLimit: per client IP token buckets
//   - AdminAuth: admin JWT gate for the dashboard API
//
// Chain applies middlewares outermost first:
//
//	h := middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.SecurityHeaders(cfg.Site.AssetOrigin),
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): unique request identifier
//   - GetClaims(ctx): admin claims set by AdminAuth
package middleware
