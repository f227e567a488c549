package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/pkg/jwt"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// AdminAuth returns a middleware that only lets admin tokens through
func AdminAuth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				model.NewUnauthorizedError("missing or malformed authorization header").WriteJSON(w)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			if !claims.IsAdmin() {
				slog.WarnContext(r.Context(), "non-admin token rejected",
					slog.String("request_id", GetRequestID(r.Context())),
				)
				model.NewForbiddenError("admin access required").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
