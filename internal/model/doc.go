// Package model defines the waitlist entities, request types and error
// bodies shared by every layer of the Guild API.
//
// # Domain Entities
//
//   - Signup: a homeowner or contractor on the waitlist, with the
//     unsubscribe token mailed to them and the timestamps of their
//     unsubscribe and welcome email
//   - WaitlistStats / SpotsSummary: aggregates for the admin dashboard
//     and the public founding-spot counter
//
// # Validation
//
// Requests normalize themselves before validating:
//
//	req.Normalize()
//	if errs := req.Validate(); len(errs) > 0 {
//	    // 400
//	}
//
// # Error Types
//
// Admin and infrastructure endpoints answer with RFC 9457 ProblemDetails.
// The public site endpoints keep the smaller {"error": "..."} body
// represented by SiteError.
package model
