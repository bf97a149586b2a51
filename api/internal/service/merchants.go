package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/repository"

	"gorm.io/gorm"
)

type MerchantsService struct {
	repo          repository.Merchants
	notifications repository.Notifications
	identity      IdentityProvider
	wallets       Wallets
	db            *gorm.DB
	config        *config.Config
}

func NewMerchantsService(db *gorm.DB, repo repository.Merchants, notifications repository.Notifications, identity IdentityProvider, wallets Wallets, config *config.Config) *MerchantsService {
	return &MerchantsService{repo: repo, notifications: notifications, identity: identity, wallets: wallets, db: db, config: config}
}

func (s *MerchantsService) FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error) {
	merchant, err := s.repo.FindByID(tx, merchantID)
	if postgres.IsNotFound(err) {
		return nil, domain.ErrMerchantNotFound
	}
	return merchant, err
}

func (s *MerchantsService) Onboard(ctx context.Context, idToken, businessName, sector string) (*domain.Merchants, error) {
	ident, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	businessName = strings.TrimSpace(businessName)
	if businessName == "" {
		return nil, domain.ErrInvalidBusinessName
	}
	if !domain.IsValidSector(sector) {
		return nil, domain.ErrInvalidSector
	}

	_, err = s.repo.FindByID(s.db, ident.UID)
	if err == nil {
		return nil, domain.ErrAlreadyOnboarded
	}
	if !postgres.IsNotFound(err) {
		return nil, err
	}

	merchant := &domain.Merchants{
		MerchantID:   ident.UID,
		Email:        ident.Email,
		BusinessName: businessName,
		Sector:       sector,
		CurrentPlan:  domain.PLAN_FREE,
	}
	if err := s.repo.Create(s.db, merchant); err != nil {
		if postgres.IsDuplicate(err) {
			return nil, domain.ErrAlreadyOnboarded
		}
		return nil, err
	}

	return merchant, nil
}

func (s *MerchantsService) GenerateApiKey(merchantID string) (*domain.Merchants, error) {
	key, err := NewApiKey()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.Update(s.db, merchantID, map[string]any{"api_key": key, "api_key_created_at": now}); err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}

	return s.FindByID(s.db, merchantID)
}

// NewApiKey returns sk_live_ followed by 48 random alphanumerics.
func NewApiKey() (string, error) {
	max := big.NewInt(int64(len(domain.ApiKeyAlphabet)))

	var b strings.Builder
	b.Grow(len(domain.ApiKeyPrefix) + domain.ApiKeyRandLen)
	b.WriteString(domain.ApiKeyPrefix)
	for range domain.ApiKeyRandLen {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(domain.ApiKeyAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func (s *MerchantsService) AuthorizeBillToken(merchantID, token string) error {
	secret := s.config.Billing.SecretKey
	if secret != "" && constantTimeEqual(token, secret) {
		return nil
	}

	merchant, err := s.repo.FindByID(s.db, merchantID)
	if err != nil && !postgres.IsNotFound(err) {
		return err
	}
	if err == nil && merchant.ApiKey != "" {
		if constantTimeEqual(token, merchant.ApiKey) {
			return nil
		}
		return domain.ErrForbidden
	}

	// nothing to compare against
	if secret == "" {
		return domain.ErrServerMisconfigured
	}
	return domain.ErrForbidden
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *MerchantsService) LinkWallet(merchantID, walletUID string) (*domain.Merchants, error) {
	walletUID = strings.TrimSpace(walletUID)
	if err := s.wallets.VerifyAccount(walletUID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(s.db, merchantID, map[string]any{"wallet_uid": walletUID}); err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}
	return s.FindByID(s.db, merchantID)
}

func (s *MerchantsService) SetFrozen(merchantID string, frozen bool) (*domain.Merchants, error) {
	title := "Account unfrozen"
	if frozen {
		title = "Account frozen"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(tx, merchantID, map[string]any{"is_frozen": frozen}); err != nil {
			return err
		}
		return s.notifications.Create(tx, &domain.Notifications{
			MerchantID: merchantID,
			Type:       domain.NOTIFICATION_ACCOUNT,
			Title:      title,
			Body:       "Your merchant account status was changed by an administrator.",
		})
	})
	if postgres.IsNotFound(err) {
		return nil, domain.ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.FindByID(s.db, merchantID)
}
