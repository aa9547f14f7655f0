package cognito

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSubject is returned when a verified token carries no subject
	ErrMissingSubject = errors.New("missing subject claim")

	// ErrInvalidTokenUse is returned when token_use is neither "id" nor "access"
	ErrInvalidTokenUse = errors.New("invalid token_use")
)

// Claims represents the claims carried by a user pool token
type Claims struct {
	jwt.RegisteredClaims
	Email           string   `json:"email"`
	EmailVerified   bool     `json:"email_verified"`
	TokenUse        string   `json:"token_use"`
	AuthTime        int64    `json:"auth_time"`
	CognitoUsername string   `json:"cognito:username"`
	Groups          []string `json:"cognito:groups"`
	// Username is the access token's name for cognito:username
	Username string `json:"username"`
	// ClientID is only present on access tokens, which carry no aud claim
	ClientID string `json:"client_id"`
}

// ParsedClaims represents verified claims reduced to what the services consume
type ParsedClaims struct {
	Sub           string
	Email         string
	EmailVerified bool
	Username      string
	Groups        []string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// ExtractClaimsFromValidatedToken extracts claims from an already validated jwt.Token
func ExtractClaimsFromValidatedToken(token *jwt.Token) (*ParsedClaims, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}

	return parseClaims(claims)
}

// parseClaims converts Claims to ParsedClaims, rejecting tokens without a subject
func parseClaims(claims *Claims) (*ParsedClaims, error) {
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	if claims.TokenUse != "id" && claims.TokenUse != "access" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTokenUse, claims.TokenUse)
	}

	parsed := &ParsedClaims{
		Sub:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Username:      claims.CognitoUsername,
		Groups:        claims.Groups,
	}
	if parsed.Username == "" {
		parsed.Username = claims.Username
	}
	if claims.IssuedAt != nil {
		parsed.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		parsed.ExpiresAt = claims.ExpiresAt.Time
	}

	return parsed, nil
}
