// Package handler provides HTTP request handlers for the Guild waitlist site.
//
// Each handler struct encapsulates the dependencies needed to serve one
// area: the public waitlist API, the server-rendered pages, the admin
// dashboard API and the composition catalog.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts its dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//
// # Error Shapes
//
// The public site endpoints (/api/waitlist, /api/unsubscribe) answer with
// the flat {"error": "..."} body the site script reads. Everything under
// /api/admin and /api/compositions answers with RFC 9457 Problem Details.
//
// # Example Usage
//
//	h := NewWaitlistHandler(waitlistService)
//	mux.HandleFunc("POST /api/unsubscribe", h.Unsubscribe)
package handler
