package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/guild/api/pkg/jwt"
)

// AdminService authenticates the single dashboard operator
type AdminService struct {
	email        string
	passwordHash []byte
	jwtService   *jwt.Service
}

// AdminServiceConfig holds configuration for the admin service
type AdminServiceConfig struct {
	Email        string
	PasswordHash string
	JWTService   *jwt.Service
}

// NewAdminService creates a new admin service
func NewAdminService(cfg AdminServiceConfig) *AdminService {
	return &AdminService{
		email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		passwordHash: []byte(cfg.PasswordHash),
		jwtService:   cfg.JWTService,
	}
}

// AdminToken is returned by a successful login
type AdminToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// LoginRequest is the body of POST /api/admin/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the admin credentials and issues a token
func (s *AdminService) Login(ctx context.Context, req LoginRequest) (*AdminToken, error) {
	if s.email == "" || len(s.passwordHash) == 0 || s.jwtService == nil {
		return nil, ErrAdminDisabled
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	// the hash is always compared so a wrong email costs the same as a wrong password
	passwordOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)) == nil
	if !emailOK || !passwordOK {
		slog.WarnContext(ctx, "admin login failed")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: s.email},
		Email:            s.email,
		Role:             jwt.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "admin login succeeded")
	return &AdminToken{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtService.GetExpiration().Seconds()),
	}, nil
}
