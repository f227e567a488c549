package helpers

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/pkg/jwt"
)

// ============================================================================
// JWT Helpers
// ============================================================================

// JWTHelper issues tokens from an in-memory RSA key
type JWTHelper struct {
	privateKey *rsa.PrivateKey
	issuer     string
	Service    *jwt.Service
}

// NewJWTHelper creates a new JWT helper with an in-memory key
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("helpers: failed to generate RSA key: %v", err)
	}

	return &JWTHelper{
		privateKey: privateKey,
		issuer:     "guild-test",
		Service:    jwt.NewTestService(privateKey, "guild-test", 15*time.Minute),
	}
}

// AdminToken returns a valid admin token
func (h *JWTHelper) AdminToken(t *testing.T) string {
	t.Helper()
	return h.sign(t, h.Service, jwt.RoleAdmin)
}

// TokenWithRole returns a valid token carrying role
func (h *JWTHelper) TokenWithRole(t *testing.T, role string) string {
	t.Helper()
	return h.sign(t, h.Service, role)
}

// ExpiredAdminToken returns an admin token that expired a minute ago
func (h *JWTHelper) ExpiredAdminToken(t *testing.T) string {
	t.Helper()
	expired := jwt.NewTestService(h.privateKey, h.issuer, -time.Minute)
	return h.sign(t, expired, jwt.RoleAdmin)
}

func (h *JWTHelper) sign(t *testing.T, svc *jwt.Service, role string) string {
	t.Helper()

	token, err := svc.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "admin@joinguild.app"},
		Email:            "admin@joinguild.app",
		Role:             role,
	})
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	rawBody *string
	headers map[string]string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithRawBody sends body as-is, for malformed JSON cases
func (rb *RequestBuilder) WithRawBody(body string) *RequestBuilder {
	rb.rawBody = &body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithBearer adds an Authorization: Bearer header
func (rb *RequestBuilder) WithBearer(token string) *RequestBuilder {
	return rb.WithHeader("Authorization", "Bearer "+token)
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	switch {
	case rb.rawBody != nil:
		bodyReader = strings.NewReader(*rb.rawBody)
	case rb.body != nil:
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do builds the request and serves it through h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, rb.Build())
	return rec
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %q", ct)
	}

	var problem model.ProblemDetails
	DecodeResponse(t, resp, &problem)
	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
}

// AssertSiteError validates a public site error body: {"error": message}
func AssertSiteError(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, message string) {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var body model.SiteError
	DecodeResponse(t, resp, &body)
	if body.Message != message {
		t.Errorf("expected error %q, got %q", message, body.Message)
	}
}

// AssertSuccess validates the public site success body: {"success": true}
func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()

	AssertStatus(t, resp, http.StatusOK)

	var body map[string]interface{}
	DecodeResponse(t, resp, &body)
	if len(body) != 1 || body["success"] != true {
		t.Errorf(`expected {"success":true}, got %v`, body)
	}
}

// AssertSecurityHeaders checks the headers every response must carry
func AssertSecurityHeaders(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()

	want := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := resp.Header().Get(header); got != value {
			t.Errorf("%s: expected %q, got %q", header, value, got)
		}
	}
	if resp.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy header missing")
	}
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// GetDataFromResponse extracts the "data" field from a standard response
func GetDataFromResponse(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response struct {
		Data map[string]interface{} `json:"data"`
	}
	DecodeResponse(t, resp, &response)
	return response.Data
}
