package natsdomain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPaymentSettledValidate(t *testing.T) {
	valid := func() PaymentSettled {
		return PaymentSettled{
			TransactionID: "tx1",
			Type:          PaymentSharkPay,
			LinkID:        "link",
			SenderID:      "user",
			Amount:        decimal.NewFromInt(150000),
			Fee:           decimal.NewFromInt(1500),
			NetAmount:     decimal.NewFromInt(148500),
			Timestamp:     time.Now(),
		}
	}

	tests := []struct {
		name   string
		mutate func(p *PaymentSettled)
		want   error
	}{
		{"valid", func(p *PaymentSettled) {}, nil},
		{"no tx id", func(p *PaymentSettled) { p.TransactionID = "" }, ErrEmptyTransactionID},
		{"unknown type", func(p *PaymentSettled) { p.Type = "REFUND" }, ErrUnknownPaymentType},
		{"no link", func(p *PaymentSettled) { p.LinkID = "" }, ErrMissingTarget},
		{"invoice without id", func(p *PaymentSettled) { p.Type = PaymentUpgradeInvoice }, ErrMissingTarget},
		{"zero amount", func(p *PaymentSettled) { p.Amount = decimal.Zero }, ErrInvalidAmounts},
		{"negative fee", func(p *PaymentSettled) { p.Fee = decimal.NewFromInt(-1) }, ErrInvalidAmounts},
		{"net mismatch", func(p *PaymentSettled) { p.NetAmount = decimal.NewFromInt(150000) }, ErrInvalidAmounts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewMsgId(t *testing.T) {
	if got := NewMsgId("tx1", MsgActionPayment); got != "tx1_payment" {
		t.Fatal(got)
	}
}
