package service

import (
	"context"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/repository"

	"gorm.io/gorm"
)

const (
	RedirectOnboarding = "/onboarding"
	RedirectDashboard  = "/dashboard"
	RedirectFrozen     = "/login?error=frozen"
	RedirectLogin      = "/login"
)

type SessionResult struct {
	Cookie      string
	MaxAge      time.Duration
	Redirect    string
	ClearCookie bool
}

type SessionsService struct {
	merchants repository.Merchants
	identity  IdentityProvider
	db        *gorm.DB
	config    *config.Config
}

func NewSessionsService(db *gorm.DB, merchants repository.Merchants, identity IdentityProvider, config *config.Config) *SessionsService {
	return &SessionsService{merchants: merchants, identity: identity, db: db, config: config}
}

// Start exchanges an ID token for a session cookie and picks the next page.
func (s *SessionsService) Start(ctx context.Context, idToken string) (*SessionResult, error) {
	ident, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	merchant, err := s.merchants.FindByID(s.db, ident.UID)
	if err != nil && !postgres.IsNotFound(err) {
		return nil, err
	}
	onboarded := err == nil
	if onboarded && merchant.IsFrozen {
		return &SessionResult{Redirect: RedirectFrozen, ClearCookie: true}, nil
	}

	cookie, err := s.identity.SessionCookie(ctx, idToken, s.config.Session.MaxAge)
	if err != nil {
		return nil, err
	}

	result := &SessionResult{Cookie: cookie, MaxAge: s.config.Session.MaxAge, Redirect: RedirectDashboard}
	if !onboarded {
		result.Redirect = RedirectOnboarding
	}
	return result, nil
}

// Authenticate resolves the merchant behind a session cookie.
func (s *SessionsService) Authenticate(ctx context.Context, cookie string) (*domain.Merchants, error) {
	if cookie == "" {
		return nil, domain.ErrUnauthorized
	}

	ident, err := s.identity.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return nil, err
	}

	merchant, err := s.merchants.FindByID(s.db, ident.UID)
	if postgres.IsNotFound(err) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if merchant.IsFrozen {
		return nil, domain.ErrMerchantFrozen
	}
	return merchant, nil
}
