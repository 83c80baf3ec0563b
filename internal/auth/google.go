package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier resolves a Google Sign-In ID token to a verified email
// address. The indirection exists so tests can stand in for Google.
type GoogleVerifier interface {
	VerifiedEmail(ctx context.Context, idToken string) (string, error)
}

// Google is the verifier used by GoogleLoginHandler.
var Google GoogleVerifier = googleIDTokenVerifier{}

type googleIDTokenVerifier struct{}

func (googleIDTokenVerifier) VerifiedEmail(ctx context.Context, rawToken string) (string, error) {
	audience := os.Getenv("GOOGLE_CLIENT_ID")
	payload, err := idtoken.Validate(ctx, rawToken, audience)
	if err != nil {
		return "", fmt.Errorf("verifying ID token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", errors.New("ID token carries no email claim")
	}
	return email, nil
}
