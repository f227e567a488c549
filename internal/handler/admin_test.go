package handler

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/repository/sqlite"
	"github.com/forgo/guild/api/internal/service"
	"github.com/forgo/guild/api/pkg/jwt"
)

func newAdminHandler(t *testing.T, email string) (*AdminHandler, *sqlite.Store) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	store := openStore(t)
	return NewAdminHandler(AdminHandlerConfig{
		AdminService: service.NewAdminService(service.AdminServiceConfig{
			Email:        email,
			PasswordHash: string(hash),
			JWTService:   jwt.NewTestService(key, "joinguild.app", time.Hour),
		}),
		WaitlistService: newWaitlistService(store),
	}), store
}

// ============================================================================
// Login
// ============================================================================

func TestAdminHandler_Login(t *testing.T) {
	t.Parallel()

	h, _ := newAdminHandler(t, "admin@joinguild.app")

	rec := postJSON(h.Login, "/api/admin/login", `{"email":"admin@joinguild.app","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data service.AdminToken `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.AccessToken)
	assert.Equal(t, "Bearer", body.Data.TokenType)
	assert.Equal(t, 3600, body.Data.ExpiresIn)
}

func TestAdminHandler_Login_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		adminEmail string
		body       string
		wantStatus int
	}{
		{"wrong password", "admin@joinguild.app", `{"email":"admin@joinguild.app","password":"nope"}`, http.StatusUnauthorized},
		{"wrong email", "admin@joinguild.app", `{"email":"someone@joinguild.app","password":"correct horse"}`, http.StatusUnauthorized},
		{"malformed body", "admin@joinguild.app", `{"email":`, http.StatusBadRequest},
		{"login disabled", "", `{"email":"admin@joinguild.app","password":"correct horse"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newAdminHandler(t, tt.adminEmail)
			rec := postJSON(h.Login, "/api/admin/login", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			assert.NotContains(t, rec.Body.String(), "access_token")
		})
	}
}

// ============================================================================
// Signups
// ============================================================================

func TestAdminHandler_ListSignups(t *testing.T) {
	t.Parallel()

	h, store := newAdminHandler(t, "admin@joinguild.app")
	seedSignup(t, store, "one@example.com", model.RoleContractor, "aaaaaaaa-0000-4000-8000-000000000001")
	seedSignup(t, store, "two@example.com", model.RoleHomeowner, "aaaaaaaa-0000-4000-8000-000000000002")
	seedSignup(t, store, "three@example.com", model.RoleContractor, "aaaaaaaa-0000-4000-8000-000000000003")

	rec := get(h.ListSignups, "/api/admin/signups?role=contractor&limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data       []model.Signup    `json:"data"`
		Pagination PaginationInfo    `json:"pagination"`
		Links      map[string]string `json:"_links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, model.RoleContractor, body.Data[0].Role)
	assert.Equal(t, PaginationInfo{Limit: 1, Offset: 0, HasMore: true}, body.Pagination)
	assert.Equal(t, "/api/admin/signups/export", body.Links["export"])
}

func TestAdminHandler_ListSignups_BadQuery(t *testing.T) {
	t.Parallel()

	h, _ := newAdminHandler(t, "admin@joinguild.app")

	for _, target := range []string{
		"/api/admin/signups?limit=ten",
		"/api/admin/signups?offset=-x",
		"/api/admin/signups?role=landlord",
	} {
		rec := get(h.ListSignups, target)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, target)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	t.Parallel()

	h, store := newAdminHandler(t, "admin@joinguild.app")
	seedSignup(t, store, "one@example.com", model.RoleContractor, "aaaaaaaa-0000-4000-8000-000000000001")
	seedSignup(t, store, "two@example.com", model.RoleHomeowner, "aaaaaaaa-0000-4000-8000-000000000002")

	rec := get(h.Stats, "/api/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.WaitlistStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Total)
	assert.Equal(t, 1, body.Data.ByRole[model.RoleContractor])
	assert.Equal(t, 1, body.Data.ByRole[model.RoleHomeowner])
}

func TestAdminHandler_ExportCSV(t *testing.T) {
	t.Parallel()

	h, store := newAdminHandler(t, "admin@joinguild.app")
	seedSignup(t, store, "=cmd@example.com", model.RoleContractor, "aaaaaaaa-0000-4000-8000-000000000001")
	seedSignup(t, store, "two@example.com", model.RoleHomeowner, "aaaaaaaa-0000-4000-8000-000000000002")

	rec := get(h.ExportCSV, "/api/admin/signups/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="guild-waitlist-`))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "email", rows[0][1])

	emails := []string{rows[1][1], rows[2][1]}
	assert.ElementsMatch(t, []string{"'=cmd@example.com", "two@example.com"}, emails)
}

func TestAdminHandler_ExportCSV_StoreFailure(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(AdminHandlerConfig{WaitlistService: newWaitlistService(failingRepo{})})

	rec := httptest.NewRecorder()
	h.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/api/admin/signups/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}
