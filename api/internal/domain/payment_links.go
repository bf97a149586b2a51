package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentLinks struct {
	Model
	ID           uint            `gorm:"primaryKey"`
	LinkID       string          `gorm:"uniqueIndex;size:300;not null"` // uuid, or merchantId_billId for bills
	MerchantID   string          `gorm:"index;size:128;not null"`
	BillID       string          `gorm:"size:128"` // empty for dashboard links
	Amount       decimal.Decimal `gorm:"type:numeric;not null"`
	Description  string          `gorm:"type:text"`
	RedirectURL  string          `gorm:"type:text"`
	WebhookURL   string          `gorm:"type:text"`
	Status       LinkStatus      `gorm:"type:int8;not null"`
	PaidByUserID *string         `gorm:"size:128"`
	PaidAt       *time.Time
}

type LinkStatus uint8

const (
	LINK_UNPAID LinkStatus = iota
	LINK_PAID
)

var LinkStatuses = [...]string{"UNPAID", "PAID"}

func (s LinkStatus) ToString() string {
	return LinkStatuses[s]
}

func (l *PaymentLinks) IsPaid() bool {
	return l.Status == LINK_PAID
}

func (l *PaymentLinks) IsBill() bool {
	return l.BillID != ""
}

// BillLinkID is the document id of a bill created through the public api.
func BillLinkID(merchantID, billID string) string {
	return merchantID + "_" + billID
}

// DeepLink opens the wallet app on the payment screen.
func DeepLink(linkID string) string {
	return "sharkcredit://pay/" + linkID
}

// QR content kinds read by the wallet app
const (
	QR_SHARK_PAY       = "SHARK_PAY"
	QR_UPGRADE_INVOICE = "UPGRADE_INVOICE"
)

type QrSharkPay struct {
	Type   string          `json:"type"`
	LinkID string          `json:"linkId"`
	Amount decimal.Decimal `json:"amount"`
}

type QrUpgradeInvoice struct {
	Type      string          `json:"type"`
	InvoiceID string          `json:"invoiceId"`
	Amount    decimal.Decimal `json:"amount"`
}
