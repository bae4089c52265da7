package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// ErrInvalidIdentityToken is returned when an OAuth ID token fails verification.
var ErrInvalidIdentityToken = errors.New("invalid identity token")

// IdentityClaims is the normalized identity produced by verifying an
// externally-issued ID token.
type IdentityClaims struct {
	ProviderID    string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// IdentityVerifier validates an opaque identity token against an external
// identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

// GoogleVerifier verifies Google-issued ID tokens against a configured audience.
type GoogleVerifier struct {
	audience string
}

// NewGoogleVerifier creates a GoogleVerifier for the given OAuth client id.
func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience}
}

// Verify validates the ID token and extracts the normalized identity claims.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*IdentityClaims, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}

	claims := &IdentityClaims{
		ProviderID:    payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		Name:          stringClaim(payload.Claims, "name"),
		Picture:       stringClaim(payload.Claims, "picture"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email claim", ErrInvalidIdentityToken)
	}

	return claims, nil
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func boolClaim(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
