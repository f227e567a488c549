// Package jwt issues and validates the RS256 admin tokens used by the
// waitlist dashboard.
//
// Signing and parsing are delegated to github.com/golang-jwt/jwt/v5; this
// package pins the algorithm, the issuer and the expiration policy, and maps
// library errors onto a small set of sentinels.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "joinguild.app",
//	    ExpirationMins: 60,
//	})
//	token, err := svc.Sign(jwt.Claims{Email: email, Role: jwt.RoleAdmin})
//
// # Token Validation
//
//	claims, err := svc.Validate(header)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the admin to log in again
//	}
//
// A service built from only a public key can validate but not sign.
package jwt
