package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestService(t *testing.T) *Service {
	t.Helper()
	return newTestServiceWithExpiration(t, 15*time.Minute)
}

func newTestServiceWithExpiration(t *testing.T, expiration time.Duration) *Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return NewTestService(privateKey, "test-issuer", expiration)
}

func adminClaims() Claims {
	return Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "admin@joinguild.app"},
		Email:            "admin@joinguild.app",
		Role:             RoleAdmin,
	}
}

// ============================================================================
// Claims Tests
// ============================================================================

func TestClaims_IsAdmin(t *testing.T) {
	t.Parallel()

	admin := adminClaims()
	if !admin.IsAdmin() {
		t.Error("expected admin role to be admin")
	}

	other := Claims{Role: "viewer"}
	if other.IsAdmin() {
		t.Error("expected viewer role not to be admin")
	}
}

// ============================================================================
// Sign Tests
// ============================================================================

func TestSign_ValidClaims_ReturnsToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(adminClaims())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("expected 3 token segments, got %d", len(parts))
	}
}

func TestSign_NilPrivateKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{issuer: "test", now: time.Now}

	_, err := svc.Sign(adminClaims())

	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestSign_SetsRegisteredClaims(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %q", claims.Issuer)
	}
	if claims.IssuedAt == nil || claims.NotBefore == nil {
		t.Error("expected iat and nbf to be set")
	}
	if claims.ID == "" {
		t.Error("expected token id to be set")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected exp to be set")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 14*time.Minute || ttl > 16*time.Minute {
		t.Errorf("expected ~15m expiration, got %v", ttl)
	}
}

func TestSign_PreservesCustomExpiration(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	custom := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	c := adminClaims()
	c.ExpiresAt = gojwt.NewNumericDate(custom)
	token, err := svc.Sign(c)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if !claims.ExpiresAt.Time.Equal(custom) {
		t.Errorf("expected exp %v, got %v", custom, claims.ExpiresAt.Time)
	}
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestSignAndValidate_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.Validate("Bearer " + token)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "admin@joinguild.app" || !claims.IsAdmin() {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.Subject != "admin@joinguild.app" {
		t.Errorf("expected subject to round trip, got %q", claims.Subject)
	}
}

func TestValidate_NilPublicKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{issuer: "test", now: time.Now}

	_, err := svc.Validate("a.b.c")

	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestValidate_Malformed_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.@@@.###"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestValidate_DifferentKey_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	signer := newTestService(t)
	verifier := newTestService(t)

	token, err := signer.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_TamperedClaims_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	other, err := svc.Sign(Claims{Email: "intruder@example.com", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	if _, err := svc.Validate(tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_ExpiredToken_ReturnsErrTokenExpired(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	c := adminClaims()
	c.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Hour))
	token, err := svc.Sign(c)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_TokenNotYetValid_ReturnsErrTokenNotYetValid(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	token, err := svc.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	svc.now = time.Now

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenNotYetValid) {
		t.Errorf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestValidate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	signer := NewTestService(privateKey, "someone-else", time.Minute)
	verifier := NewTestService(privateKey, "joinguild.app", time.Minute)

	token, err := signer.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_HMACToken_Rejected(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	forged, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Issuer: "test-issuer"},
		Role:             RoleAdmin,
	}).SignedString([]byte("guessable"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Validate(forged); err == nil {
		t.Error("expected HS256 token to be rejected")
	}
}

func TestGetExpiration_ReturnsConfiguredDuration(t *testing.T) {
	t.Parallel()
	svc := newTestServiceWithExpiration(t, 42*time.Minute)

	if got := svc.GetExpiration(); got != 42*time.Minute {
		t.Errorf("expected 42m, got %v", got)
	}
}

// ============================================================================
// NewService / Key Loading Tests
// ============================================================================

func TestNewService_NoKeys_ReturnsService(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Issuer: "test", ExpirationMins: 15})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Sign(adminClaims()); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected signing without keys to fail with ErrInvalidKey, got %v", err)
	}
}

func TestGenerateKeyPair_CreatesValidKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	privPath, pubPath := dir+"/private.pem", dir+"/public.pem"

	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signer, err := NewService(Config{PrivateKeyPath: privPath, Issuer: "test", ExpirationMins: 15})
	if err != nil {
		t.Fatalf("failed to load private key: %v", err)
	}
	verifier, err := NewService(Config{PublicKeyPath: pubPath, Issuer: "test", ExpirationMins: 15})
	if err != nil {
		t.Fatalf("failed to load public key: %v", err)
	}

	token, err := signer.Sign(adminClaims())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.Validate(token); err != nil {
		t.Fatalf("public-key-only service failed to validate: %v", err)
	}
	if _, err := verifier.Sign(adminClaims()); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("public-key-only service should not sign, got %v", err)
	}
}

func TestGenerateKeyPair_InvalidPath_ReturnsError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if err := GenerateKeyPair("/nonexistent/dir/private.pem", dir+"/public.pem"); err == nil {
		t.Error("expected error for invalid private key path")
	}
	if err := GenerateKeyPair(dir+"/private.pem", "/nonexistent/dir/public.pem"); err == nil {
		t.Error("expected error for invalid public key path")
	}
}

func TestNewService_KeyErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	garbage := dir + "/garbage.pem"
	if err := os.WriteFile(garbage, []byte("not a pem file"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate ec key: %v", err)
	}
	ecBytes, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal ec key: %v", err)
	}
	ecPath := dir + "/ec.pem"
	if err := os.WriteFile(ecPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: ecBytes}), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"private key missing", Config{PrivateKeyPath: dir + "/missing.pem"}},
		{"public key missing", Config{PublicKeyPath: dir + "/missing.pem"}},
		{"private key garbage", Config{PrivateKeyPath: garbage}},
		{"public key garbage", Config{PublicKeyPath: garbage}},
		{"public key not rsa", Config{PublicKeyPath: ecPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewService(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
