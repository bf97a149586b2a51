package natsdomain

import (
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/shopspring/decimal"
)

// nats struct
type Ns struct {
	Nc *nats.Conn
	Js jetstream.JetStream
}

type Error struct {
	IsError   bool
	Message   string
	Timestamp time.Time
}

// PaymentSettled is published by the wallet once money has moved.
type PaymentSettled struct {
	TransactionID string          `json:"transaction_id"`
	Type          PaymentType     `json:"type"`
	LinkID        string          `json:"link_id,omitempty"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	SenderID      string          `json:"sender_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

var (
	ErrEmptyTransactionID = errors.New("empty transaction id")
	ErrUnknownPaymentType = errors.New("unknown payment type")
	ErrMissingTarget      = errors.New("missing link or invoice id")
	ErrInvalidAmounts     = errors.New("amount must be positive, fee not negative and net_amount = amount - fee")
)

func (p *PaymentSettled) Validate() error {
	if p.TransactionID == "" {
		return ErrEmptyTransactionID
	}

	switch p.Type {
	case PaymentSharkPay:
		if p.LinkID == "" {
			return ErrMissingTarget
		}
	case PaymentUpgradeInvoice:
		if p.InvoiceID == "" {
			return ErrMissingTarget
		}
	default:
		return ErrUnknownPaymentType
	}

	if !p.Amount.IsPositive() || p.Fee.IsNegative() || !p.Amount.Sub(p.Fee).Equal(p.NetAmount) {
		return ErrInvalidAmounts
	}
	return nil
}

type ReqVerifyAccount struct {
	WalletUID string
}

type ResVerifyAccount struct {
	Error
	Exists      bool
	Frozen      bool
	DisplayName string
}
