package main

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/guild/api/internal/composition"
	"github.com/forgo/guild/api/internal/middleware"
	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/repository/sqlite"
	"github.com/forgo/guild/api/internal/service"
	"github.com/forgo/guild/api/internal/testing/helpers"
	"github.com/forgo/guild/api/internal/view"
)

// ============================================================================
// Test Setup
// ============================================================================

type testServer struct {
	router http.Handler
	store  *sqlite.Store
	jwt    *helpers.JWTHelper
}

func newTestServer(t *testing.T, adminEnabled bool) *testServer {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "guild.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	jh := helpers.NewJWTHelper(t)

	siteLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{Rate: 100, Window: time.Minute, Burst: -1})
	loginLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{Rate: 100, Window: time.Minute, Burst: -1})
	t.Cleanup(siteLimiter.Stop)
	t.Cleanup(loginLimiter.Stop)

	deps := routerDeps{
		Waitlist: service.NewWaitlistService(service.WaitlistServiceConfig{
			Repo:          store,
			FoundingSpots: 100,
		}),
		Admin:          service.NewAdminService(service.AdminServiceConfig{}),
		Registry:       composition.Default(),
		Site:           view.Site{BaseURL: "https://joinguild.app", AssetOrigin: "https://assets.example.com"},
		AllowedOrigins: []string{"https://joinguild.app"},
		SiteLimiter:    siteLimiter,
		LoginLimiter:   loginLimiter,
	}
	if adminEnabled {
		deps.Tokens = jh.Service
	}

	return &testServer{router: newRouter(deps), store: store, jwt: jh}
}

func (s *testServer) join(t *testing.T, email string) *model.Signup {
	t.Helper()

	resp := helpers.NewRequest(t, http.MethodPost, "/api/waitlist").
		WithBody(map[string]any{"email": email, "zip_code": "78701", "role": "contractor"}).
		Do(s.router)
	helpers.AssertSuccess(t, resp)

	signup, err := s.store.GetByEmail(context.Background(), strings.ToLower(strings.TrimSpace(email)))
	require.NoError(t, err)
	return signup
}

// ============================================================================
// Security Headers
// ============================================================================

func TestRouter_SecurityHeadersOnEveryResponse(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	requests := []*helpers.RequestBuilder{
		helpers.NewRequest(t, http.MethodGet, "/"),
		helpers.NewRequest(t, http.MethodGet, "/privacy"),
		helpers.NewRequest(t, http.MethodGet, "/unsubscribe"),
		helpers.NewRequest(t, http.MethodGet, "/robots.txt"),
		helpers.NewRequest(t, http.MethodGet, "/health"),
		helpers.NewRequest(t, http.MethodGet, "/does-not-exist"),
		helpers.NewRequest(t, http.MethodGet, "/api/waitlist/spots"),
		helpers.NewRequest(t, http.MethodGet, "/api/compositions/BossBattle/frames/12"),
		helpers.NewRequest(t, http.MethodPost, "/api/unsubscribe").WithBody(map[string]any{"token": "nope"}),
		helpers.NewRequest(t, http.MethodGet, "/api/admin/stats"),
	}

	for _, rb := range requests {
		resp := rb.Do(s.router)
		helpers.AssertSecurityHeaders(t, resp)
		assert.Contains(t, resp.Header().Get("Content-Security-Policy"), "https://assets.example.com")
	}
}

// ============================================================================
// Unsubscribe
// ============================================================================

func TestRouter_Unsubscribe_Errors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"empty object", `{}`, http.StatusBadRequest, model.MsgMissingToken},
		{"empty token", `{"token":""}`, http.StatusBadRequest, model.MsgMissingToken},
		{"numeric token", `{"token":42}`, http.StatusBadRequest, model.MsgMissingToken},
		{"not a uuid", `{"token":"not-a-uuid"}`, http.StatusBadRequest, model.MsgInvalidTokenFormat},
		{"malformed json", `{"token":`, http.StatusInternalServerError, model.MsgSomethingWentWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := helpers.NewRequest(t, http.MethodPost, "/api/unsubscribe").
				WithRawBody(tt.body).
				Do(s.router)
			helpers.AssertSiteError(t, resp, tt.wantStatus, tt.wantError)
		})
	}
}

func TestRouter_Unsubscribe_UnknownTokenMaskedAsSuccess(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)
	signup := s.join(t, "keep@example.com")

	resp := helpers.NewRequest(t, http.MethodPost, "/api/unsubscribe").
		WithBody(map[string]any{"token": "123e4567-e89b-12d3-a456-426614174000"}).
		Do(s.router)
	helpers.AssertSuccess(t, resp)

	after, err := s.store.GetByEmail(context.Background(), signup.Email)
	require.NoError(t, err)
	assert.Nil(t, after.UnsubscribedAt)
}

func TestRouter_JoinThenUnsubscribe(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)
	signup := s.join(t, "leaving@example.com")
	require.True(t, model.IsUnsubscribeToken(signup.UnsubscribeToken))

	// the page links to itself with the token and starts in the loading state
	page := helpers.NewRequest(t, http.MethodGet, "/unsubscribe?token="+signup.UnsubscribeToken).Do(s.router)
	helpers.AssertStatus(t, page, http.StatusOK)
	assert.Contains(t, page.Body.String(), signup.UnsubscribeToken)

	resp := helpers.NewRequest(t, http.MethodPost, "/api/unsubscribe").
		WithBody(map[string]any{"token": signup.UnsubscribeToken}).
		Do(s.router)
	helpers.AssertSuccess(t, resp)

	first, err := s.store.GetByEmail(context.Background(), signup.Email)
	require.NoError(t, err)
	require.NotNil(t, first.UnsubscribedAt)

	resp = helpers.NewRequest(t, http.MethodPost, "/api/unsubscribe").
		WithBody(map[string]any{"token": signup.UnsubscribeToken}).
		Do(s.router)
	helpers.AssertSuccess(t, resp)

	second, err := s.store.GetByEmail(context.Background(), signup.Email)
	require.NoError(t, err)
	assert.True(t, first.UnsubscribedAt.Equal(*second.UnsubscribedAt), "second unsubscribe must not move the timestamp")
}

// ============================================================================
// Waitlist
// ============================================================================

func TestRouter_Join_DuplicateIsSilent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)
	first := s.join(t, "twice@example.com")
	second := s.join(t, "TWICE@example.com ")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.UnsubscribeToken, second.UnsubscribeToken)

	resp := helpers.NewRequest(t, http.MethodGet, "/api/waitlist/spots").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var spots model.SpotsSummary
	helpers.DecodeResponse(t, resp, &spots)
	assert.Equal(t, model.SpotsSummary{Total: 100, Taken: 1, Remaining: 99}, spots)
}

func TestRouter_Join_ValidationError(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	resp := helpers.NewRequest(t, http.MethodPost, "/api/waitlist").
		WithBody(map[string]any{"email": "", "zip_code": "78701", "role": "contractor"}).
		Do(s.router)
	helpers.AssertSiteError(t, resp, http.StatusBadRequest, "email is required")
}

// ============================================================================
// Admin
// ============================================================================

func TestRouter_AdminAuth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	tests := []struct {
		name       string
		token      func(t *testing.T) string
		wantStatus int
	}{
		{"no token", func(*testing.T) string { return "" }, http.StatusUnauthorized},
		{"garbage token", func(*testing.T) string { return "not.a.jwt" }, http.StatusUnauthorized},
		{"expired token", s.jwt.ExpiredAdminToken, http.StatusUnauthorized},
		{"non-admin role", func(t *testing.T) string { return s.jwt.TokenWithRole(t, "member") }, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := helpers.NewRequest(t, http.MethodGet, "/api/admin/stats")
			if token := tt.token(t); token != "" {
				rb.WithBearer(token)
			}
			helpers.AssertProblemDetails(t, rb.Do(s.router), tt.wantStatus)
		})
	}
}

func TestRouter_AdminStats(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)
	s.join(t, "one@example.com")

	resp := helpers.NewRequest(t, http.MethodGet, "/api/admin/stats").
		WithBearer(s.jwt.AdminToken(t)).
		Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)

	data := helpers.GetDataFromResponse(t, resp)
	assert.Equal(t, float64(1), data["total"])
}

func TestRouter_AdminExport(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)
	s.join(t, "csv@example.com")

	resp := helpers.NewRequest(t, http.MethodGet, "/api/admin/signups/export").
		WithBearer(s.jwt.AdminToken(t)).
		WithHeader("Accept-Encoding", "gzip").
		Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Empty(t, resp.Header().Get("Content-Encoding"), "exports are streamed uncompressed")
	assert.Contains(t, resp.Body.String(), "csv@example.com")
}

func TestRouter_AdminDisabled(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	resp := helpers.NewRequest(t, http.MethodGet, "/api/admin/signups").
		WithBearer(s.jwt.AdminToken(t)).
		Do(s.router)
	helpers.AssertProblemDetails(t, resp, http.StatusNotFound)

	resp = helpers.NewRequest(t, http.MethodPost, "/api/admin/login").
		WithBody(map[string]any{"email": "admin@joinguild.app", "password": "x"}).
		Do(s.router)
	helpers.AssertProblemDetails(t, resp, http.StatusNotFound)
}

// ============================================================================
// Pages and Compositions
// ============================================================================

func TestRouter_NotFoundPage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	resp := helpers.NewRequest(t, http.MethodGet, "/nowhere").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "Page not found")
}

func TestRouter_StaticAssets(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	resp := helpers.NewRequest(t, http.MethodGet, "/static/site.css").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/css")

	resp = helpers.NewRequest(t, http.MethodGet, "/static/join.js").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "/api/waitlist")

	resp = helpers.NewRequest(t, http.MethodGet, "/static/missing.js").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusNotFound)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	resp := helpers.NewRequest(t, http.MethodGet, "/health").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
}

func TestRouter_CompositionFrame(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	resp := helpers.NewRequest(t, http.MethodGet, "/api/compositions/RedFlags/frames/30").Do(s.router)
	helpers.AssertStatus(t, resp, http.StatusOK)

	data := helpers.GetDataFromResponse(t, resp)
	assert.Equal(t, float64(30), data["frame"])

	resp = helpers.NewRequest(t, http.MethodGet, "/api/compositions/RedFlags/frames/600").Do(s.router)
	helpers.AssertProblemDetails(t, resp, http.StatusUnprocessableEntity)
}
