package service

import (
	"testing"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/cache"
	"sharkpay/api/internal/infra/dbtest"
	"sharkpay/api/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	repos  *repository.Repositories
	config *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.Parse([]byte("[testing]\nenabled = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Billing.SecretKey = ""

	return &testEnv{db: dbtest.New(t), repos: repository.New(), config: cfg}
}

func (e *testEnv) merchant(t *testing.T, frozen bool) *domain.Merchants {
	t.Helper()

	m := &domain.Merchants{
		MerchantID:   gofakeit.UUID(),
		Email:        gofakeit.Email(),
		BusinessName: gofakeit.Company(),
		Sector:       "Retail",
		CurrentPlan:  domain.PLAN_FREE,
		IsFrozen:     frozen,
	}
	if err := e.repos.Merchants.Create(e.db, m); err != nil {
		t.Fatal(err)
	}
	return m
}

func (e *testEnv) links() *PaymentLinksService {
	return NewPaymentLinksService(e.db, e.repos.PaymentLinks, e.repos.Merchants, NewLockerService(cache.InitStorage()), cache.InitStorage(), testLogger(), e.config)
}

func (e *testEnv) payments(links PaymentLinks) *PaymentsService {
	return NewPaymentsService(e.db, e.repos, links, nil, testLogger())
}

func (e *testEnv) invoices() *InvoicesService {
	return NewInvoicesService(e.db, e.repos.Invoices, e.repos.Merchants, e.repos.Notifications, testLogger(), e.config)
}

func (e *testEnv) notificationCount(t *testing.T, merchantID string, typ domain.NotificationType) int {
	t.Helper()

	list, err := e.repos.Notifications.ListByMerchant(e.db, merchantID, 100)
	if err != nil {
		t.Fatal(err)
	}
	var n int
	for _, x := range list {
		if x.Type == typ {
			n++
		}
	}
	return n
}

func vnd(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
