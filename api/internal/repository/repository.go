package repository

import (
	"time"

	"sharkpay/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Merchants interface {
	FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	FindByIDForUpdate(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	Create(tx *gorm.DB, merchant *domain.Merchants) error
	Update(tx *gorm.DB, merchantID string, fields map[string]any) error
	AddBalance(tx *gorm.DB, merchantID string, amount decimal.Decimal) error
}

type PaymentLinks interface {
	Create(tx *gorm.DB, link *domain.PaymentLinks) error
	FindByLinkID(tx *gorm.DB, linkID string) (*domain.PaymentLinks, error)
	ListByMerchant(tx *gorm.DB, merchantID string, limit int) ([]domain.PaymentLinks, error)
	MarkPaid(tx *gorm.DB, linkID string, paidBy string, paidAt time.Time) (bool, error)
}

type Invoices interface {
	Create(tx *gorm.DB, invoice *domain.Invoices) error
	FindByID(tx *gorm.DB, invoiceID string) (*domain.Invoices, error)
	FindOpen(tx *gorm.DB, merchantID string) (*domain.Invoices, error)
	ListByMerchant(tx *gorm.DB, merchantID string) ([]domain.Invoices, error)
	UpdateStatus(tx *gorm.DB, invoiceID string, from, to domain.InvoiceStatus, fields map[string]any) (bool, error)
}

type Transactions interface {
	Create(tx *gorm.DB, transaction *domain.Transactions) error
	FindByTransactionID(tx *gorm.DB, transactionID string) (*domain.Transactions, error)
	FindByID(tx *gorm.DB, id uint) (*domain.Transactions, error)
	ListByReceiver(tx *gorm.DB, receiverID string, limit int, completedOnly bool) ([]domain.Transactions, error)
}

type Notifications interface {
	Create(tx *gorm.DB, notification *domain.Notifications) error
	ListByMerchant(tx *gorm.DB, merchantID string, limit int) ([]domain.Notifications, error)
	MarkRead(tx *gorm.DB, merchantID string, id uint) error
}

type Events interface {
	Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error
	Done(tx *gorm.DB, eventRelationID uint, eventType string) error
	Find(tx *gorm.DB, eventRelationID uint, eventType string) (*domain.Events, error)
	SelectNew(tx *gorm.DB, createdBefore time.Time, limit int) ([]domain.Events, error)
	Attempt(tx *gorm.DB, id uint, final bool) error
}

type Repositories struct {
	Merchants     Merchants
	PaymentLinks  PaymentLinks
	Invoices      Invoices
	Transactions  Transactions
	Notifications Notifications
	Events        Events
}

func New() *Repositories {
	return &Repositories{
		Merchants:     InitMerchantsRepo(),
		PaymentLinks:  InitPaymentLinksRepo(),
		Invoices:      InitInvoicesRepo(),
		Transactions:  InitTransactionsRepo(),
		Notifications: InitNotificationsRepo(),
		Events:        InitEventsRepo(),
	}
}
