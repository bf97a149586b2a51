package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoices struct {
	Model
	ID          uint            `gorm:"primaryKey"`
	InvoiceID   string          `gorm:"uniqueIndex;size:36;not null"`
	MerchantID  string          `gorm:"index;size:128;not null"`
	FromPlan    Plan            `gorm:"type:int8;not null"` // plan at request time, restored on refund
	TargetPlan  Plan            `gorm:"type:int8;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	Status      InvoiceStatus   `gorm:"type:int8;not null"`
	PaymentTxID string          `gorm:"size:128"`
	PaidAt      *time.Time
}

type InvoiceStatus uint8

const (
	INVOICE_UNPAID InvoiceStatus = iota
	INVOICE_PAID
	INVOICE_COMPLETED
	INVOICE_CANCELED
	INVOICE_SUSPENDED
	INVOICE_REFUNDED
)

var InvoiceStatuses = [...]string{"UNPAID", "PAID", "COMPLETED", "CANCELED", "SUSPENDED", "REFUNDED"}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	INVOICE_UNPAID:    {INVOICE_PAID, INVOICE_CANCELED, INVOICE_SUSPENDED},
	INVOICE_PAID:      {INVOICE_COMPLETED, INVOICE_CANCELED, INVOICE_SUSPENDED, INVOICE_REFUNDED},
	INVOICE_SUSPENDED: {INVOICE_UNPAID, INVOICE_PAID},
	INVOICE_COMPLETED: {INVOICE_REFUNDED},
}

func (s InvoiceStatus) ToString() string {
	return InvoiceStatuses[s]
}

func StrToInvoiceStatus(s string) (InvoiceStatus, bool) {
	for i, statusName := range InvoiceStatuses {
		if s == statusName {
			return InvoiceStatus(i), true
		}
	}
	return INVOICE_UNPAID, false
}

func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// open invoices block a new upgrade request
func (s InvoiceStatus) IsOpen() bool {
	return s == INVOICE_UNPAID || s == INVOICE_PAID
}

func (s InvoiceStatus) IsPaid() bool {
	return s == INVOICE_PAID || s == INVOICE_COMPLETED
}

type InvoiceAction uint8

const (
	INVOICE_APPROVE InvoiceAction = iota
	INVOICE_CANCEL
	INVOICE_SUSPEND
	INVOICE_RESUME
	INVOICE_REFUND
)

var InvoiceActions = [...]string{"approve", "cancel", "suspend", "resume", "refund"}

func (a InvoiceAction) ToString() string {
	return InvoiceActions[a]
}

func StrToInvoiceAction(s string) (InvoiceAction, bool) {
	for i, name := range InvoiceActions {
		if s == name {
			return InvoiceAction(i), true
		}
	}
	return INVOICE_APPROVE, false
}

// Target returns the status an action moves the invoice to.
func (i *Invoices) Target(action InvoiceAction) InvoiceStatus {
	switch action {
	case INVOICE_APPROVE:
		return INVOICE_COMPLETED
	case INVOICE_CANCEL:
		return INVOICE_CANCELED
	case INVOICE_SUSPEND:
		return INVOICE_SUSPENDED
	case INVOICE_RESUME:
		if i.PaidAt != nil {
			return INVOICE_PAID
		}
		return INVOICE_UNPAID
	default:
		return INVOICE_REFUNDED
	}
}
