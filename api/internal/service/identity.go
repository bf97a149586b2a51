package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"sharkpay/api/internal/domain"

	"firebase.google.com/go/v4/auth"
)

type Identity struct {
	UID   string
	Email string
}

// IdentityProvider verifies sign-in tokens and issues session cookies.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error)
}

type FirebaseIdentity struct {
	client *auth.Client
}

func NewFirebaseIdentity(client *auth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return identityFromToken(token), nil
}

func (f *FirebaseIdentity) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	return f.client.SessionCookie(ctx, idToken, expiresIn)
}

// revoked sessions are rejected
func (f *FirebaseIdentity) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	token, err := f.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return identityFromToken(token), nil
}

func identityFromToken(token *auth.Token) *Identity {
	email, _ := token.Claims["email"].(string)
	return &Identity{UID: token.UID, Email: email}
}

// TestingIdentity accepts "dev:<uid>:<email>" tokens, used when testing mode is on.
type TestingIdentity struct{}

const (
	testingTokenPrefix   = "dev:"
	testingSessionPrefix = "devsession:"
)

var errBadTestingToken = errors.New("malformed testing token")

func (TestingIdentity) VerifyIDToken(_ context.Context, idToken string) (*Identity, error) {
	rest, ok := strings.CutPrefix(idToken, testingTokenPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, errBadTestingToken)
	}

	uid, email, _ := strings.Cut(rest, ":")
	if uid == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, errBadTestingToken)
	}
	return &Identity{UID: uid, Email: email}, nil
}

func (t TestingIdentity) SessionCookie(ctx context.Context, idToken string, _ time.Duration) (string, error) {
	if _, err := t.VerifyIDToken(ctx, idToken); err != nil {
		return "", err
	}
	return testingSessionPrefix + base64.RawURLEncoding.EncodeToString([]byte(idToken)), nil
}

func (t TestingIdentity) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	encoded, ok := strings.CutPrefix(cookie, testingSessionPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, errBadTestingToken)
	}

	idToken, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return t.VerifyIDToken(ctx, string(idToken))
}
