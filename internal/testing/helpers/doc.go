// Package helpers provides common test utilities for end-to-end tests of
// the site router.
//
// # Request Building
//
//	resp := helpers.NewRequest(t, http.MethodPost, "/api/unsubscribe").
//	    WithBody(map[string]any{"token": token}).
//	    Do(router)
//
// # JWT Helpers
//
//	jh := helpers.NewJWTHelper(t)
//	helpers.NewRequest(t, http.MethodGet, "/api/admin/stats").
//	    WithBearer(jh.AdminToken(t))
//
// # Assertion Helpers
//
//	helpers.AssertSiteError(t, resp, http.StatusBadRequest, model.MsgInvalidTokenFormat)
//	helpers.AssertProblemDetails(t, resp, http.StatusUnauthorized)
//	helpers.AssertSecurityHeaders(t, resp)
package helpers
