package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// RoleAdmin is the only role the waitlist dashboard issues
const RoleAdmin = "admin"

// Claims represents admin token claims
type Claims struct {
	gojwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// IsAdmin returns true if the claims indicate admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Service handles JWT operations
type Service struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// Config holds JWT service configuration
type Config struct {
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	ExpirationMins int
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	var privateKey *rsa.PrivateKey
	var publicKey *rsa.PublicKey
	var err error

	if cfg.PrivateKeyPath != "" {
		privateKey, err = loadPrivateKey(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		publicKey = &privateKey.PublicKey
	}

	// Validation-only deployments ship just the public key
	if cfg.PublicKeyPath != "" && publicKey == nil {
		publicKey, err = loadPublicKey(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key: %w", err)
		}
	}

	return &Service{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     cfg.Issuer,
		expiration: time.Duration(cfg.ExpirationMins) * time.Minute,
		now:        time.Now,
	}, nil
}

// GenerateKeyPair generates a new RSA key pair and saves to files
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(privateKeyPath, privateKeyPEM, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	publicKeyBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	publicKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicKeyBytes,
	})
	if err := os.WriteFile(publicKeyPath, publicKeyPEM, 0644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	return nil
}

// Sign creates a signed RS256 token. Issuer, issued-at, not-before and a
// token id are always set; an explicit ExpiresAt is preserved.
func (s *Service) Sign(claims Claims) (string, error) {
	if s.privateKey == nil {
		return "", ErrInvalidKey
	}

	now := s.now()
	claims.Issuer = s.issuer
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.NotBefore = gojwt.NewNumericDate(now)
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(s.expiration))
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}
	return token, nil
}

// Validate validates a token and returns its claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if s.publicKey == nil {
		return nil, ErrInvalidKey
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	var claims Claims
	_, err := gojwt.ParseWithClaims(tokenString, &claims, func(*gojwt.Token) (any, error) {
		return s.publicKey, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodRS256.Alg()}),
		gojwt.WithIssuer(s.issuer),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, mapParseError(err)
	}
	return &claims, nil
}

// GetExpiration returns the token expiration duration
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}

// NewTestService creates a JWT service with in-memory keys for testing
func NewTestService(privateKey *rsa.PrivateKey, issuer string, expiration time.Duration) *Service {
	return &Service{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}
}

// mapParseError folds library errors into the package sentinels
func mapParseError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, gojwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gojwt.ParseRSAPrivateKeyFromPEM(data)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gojwt.ParseRSAPublicKeyFromPEM(data)
}
