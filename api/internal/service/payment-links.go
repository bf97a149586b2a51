package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/cache"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/repository"
	"sharkpay/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	linksDefaultLimit = 20
	linksMaxLimit     = 100

	linkCacheTTL = 5 * time.Minute
	billLockTTL  = 10 * time.Second

	// a request that lost the lock waits this long for the winner's row
	billAwaitAttempts = 10
	billAwaitDelay    = 50 * time.Millisecond
)

type BillRequest struct {
	MerchantID  string
	BillID      string
	Amount      decimal.Decimal
	Description string
	RedirectURL string
	WebhookURL  string
}

type BillResult struct {
	CheckoutURL string
	// true when the bill existed before this request
	Existing bool
	Link     *domain.PaymentLinks
}

type PaymentLinksService struct {
	repo      repository.PaymentLinks
	merchants repository.Merchants
	locker    Locker
	cache     *cache.Cache
	db        *gorm.DB
	l         logger.Logger
	config    *config.Config
}

func NewPaymentLinksService(db *gorm.DB, repo repository.PaymentLinks, merchants repository.Merchants, locker Locker, cache *cache.Cache, l logger.Logger, config *config.Config) *PaymentLinksService {
	return &PaymentLinksService{repo: repo, merchants: merchants, locker: locker, cache: cache, db: db, l: l, config: config}
}

// Create makes a dashboard payment link.
func (s *PaymentLinksService) Create(merchantID string, amount decimal.Decimal, description string) (*domain.PaymentLinks, error) {
	if amount.LessThan(decimal.NewFromInt(s.config.Billing.MinLinkAmount)) {
		return nil, domain.ErrAmountTooSmall
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.ErrEmptyDescription
	}

	if _, err := s.activeMerchant(merchantID); err != nil {
		return nil, err
	}

	link := &domain.PaymentLinks{
		LinkID:      uuid.NewString(),
		MerchantID:  merchantID,
		Amount:      amount,
		Description: description,
		Status:      domain.LINK_UNPAID,
	}
	if err := s.repo.Create(s.db, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *PaymentLinksService) List(merchantID string, limit int) ([]domain.PaymentLinks, error) {
	return s.repo.ListByMerchant(s.db, merchantID, utils.Clamp(limit, linksDefaultLimit, linksMaxLimit))
}

// links of other merchants are reported as missing
func (s *PaymentLinksService) FindForMerchant(merchantID, linkID string) (*domain.PaymentLinks, error) {
	link, err := s.findLink(linkID)
	if err != nil {
		return nil, err
	}
	if link.MerchantID != merchantID {
		return nil, domain.ErrLinkNotFound
	}
	return link, nil
}

func (s *PaymentLinksService) CheckoutURL(merchantID, billID string) string {
	return fmt.Sprintf("%s/pay/%s/%s", s.config.Api.PublicURL, merchantID, billID)
}

// CreateBill is idempotent on merchantId_billId: an unpaid bill is returned as is,
// a paid one is refused.
func (s *PaymentLinksService) CreateBill(ctx context.Context, req BillRequest) (*BillResult, error) {
	linkID := domain.BillLinkID(req.MerchantID, req.BillID)
	checkoutURL := s.CheckoutURL(req.MerchantID, req.BillID)

	if result, err := s.existingBill(linkID, checkoutURL); result != nil || err != nil {
		return result, err
	}

	if _, err := s.activeMerchant(req.MerchantID); err != nil {
		return nil, err
	}

	release, ok, err := s.locker.TryLock(ctx, "bill:"+linkID, billLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.awaitBill(linkID, checkoutURL)
	}
	defer release()

	// the previous holder may have created it
	if result, err := s.existingBill(linkID, checkoutURL); result != nil || err != nil {
		return result, err
	}

	link := &domain.PaymentLinks{
		LinkID:      linkID,
		MerchantID:  req.MerchantID,
		BillID:      req.BillID,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		RedirectURL: req.RedirectURL,
		WebhookURL:  req.WebhookURL,
		Status:      domain.LINK_UNPAID,
	}
	if err := s.repo.Create(s.db, link); err != nil {
		if postgres.IsDuplicate(err) {
			return s.awaitBill(linkID, checkoutURL)
		}
		return nil, err
	}

	s.Refresh(link)
	return &BillResult{CheckoutURL: checkoutURL, Link: link}, nil
}

// existingBill returns nil, nil when the bill does not exist yet.
func (s *PaymentLinksService) existingBill(linkID, checkoutURL string) (*BillResult, error) {
	link, err := s.repo.FindByLinkID(s.db, linkID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if link.IsPaid() {
		return nil, domain.ErrBillAlreadyPaid
	}
	return &BillResult{CheckoutURL: checkoutURL, Existing: true, Link: link}, nil
}

func (s *PaymentLinksService) awaitBill(linkID, checkoutURL string) (*BillResult, error) {
	for range billAwaitAttempts {
		if result, err := s.existingBill(linkID, checkoutURL); result != nil || err != nil {
			return result, err
		}
		time.Sleep(billAwaitDelay)
	}
	return nil, domain.ErrBillBusy
}

func (s *PaymentLinksService) activeMerchant(merchantID string) (*domain.Merchants, error) {
	merchant, err := s.merchants.FindByID(s.db, merchantID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}
	if merchant.IsFrozen {
		return nil, domain.ErrMerchantFrozen
	}
	return merchant, nil
}

func (s *PaymentLinksService) FindBill(merchantID, billID string) (*domain.PaymentLinks, error) {
	link, err := s.findLink(domain.BillLinkID(merchantID, billID))
	if err != nil {
		return nil, err
	}
	// merchant ids may contain "_", the stored parts must match too
	if link.MerchantID != merchantID || link.BillID != billID {
		return nil, domain.ErrLinkNotFound
	}
	return link, nil
}

func (s *PaymentLinksService) findLink(linkID string) (*domain.PaymentLinks, error) {
	if link, err := utils.SafeCast[*domain.PaymentLinks](s.cache.Load(linkID)); err == nil {
		return link, nil
	}

	link, err := s.repo.FindByLinkID(s.db, linkID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, err
	}

	s.Refresh(link)
	return link, nil
}

func (s *PaymentLinksService) Refresh(link *domain.PaymentLinks) {
	s.cache.Set(link.LinkID, link, linkCacheTTL)
}
