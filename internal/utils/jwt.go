package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidTokenParams is returned by [GenerateScopeToken] for missing arguments.
	ErrInvalidTokenParams = errors.New("invalid params for generating scope token")
	// ErrEmptyScopeClaim is returned for a token without a scope.
	ErrEmptyScopeClaim = errors.New("token has no scope claim")
	// ErrInvalidAuthorizationHeader is returned for a malformed bearer header.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// ScopeClaims are the claims of a scope-bound bearer token. The subject
// and the scope claim both carry the shop scope.
type ScopeClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// GenerateScopeToken creates a signed HMAC-SHA256 JWT granting access to scope.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the scope
//   - Scope   (scope): the scope
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Example usage:
//
//	token, err := utils.GenerateScopeToken("go-ledger-sync", "shop-1", time.Hour, "secret")
func GenerateScopeToken(issuer, scope string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || scope == "" || tokenDuration == 0 || signKey == "" {
		return "", ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &ScopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   scope,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing scope token: %w", err)
	}

	return signed, nil
}

// ValidateScopeToken verifies the signature, issuer and expiry of
// tokenString and returns its claims.
func ValidateScopeToken(tokenString, signKey, issuer string) (ScopeClaims, error) {
	var claims ScopeClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ScopeClaims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}
	if claims.Scope == "" {
		return ScopeClaims{}, ErrEmptyScopeClaim
	}

	return claims, nil
}

// ScopeFromToken reads the scope claim without verifying the signature.
// The client uses it to pick its default scope from its own token.
func ScopeFromToken(tokenString string) (string, error) {
	var claims ScopeClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return "", err
	}
	if claims.Scope == "" {
		return "", ErrEmptyScopeClaim
	}
	return claims.Scope, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return strings.TrimSpace(token), nil
}
