package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/pkg/nats/natsdomain"
	"sharkpay/pkg/utils"

	"github.com/brianvoe/gofakeit/v7"
)

func linkPayment(link *domain.PaymentLinks) *natsdomain.PaymentSettled {
	payment := SimulatedPayment(natsdomain.PaymentSharkPay, link.Amount, vnd(1500))
	payment.LinkID = link.LinkID
	payment.Category = "SHOPPING"
	return payment
}

func TestHandleLinkPayment(t *testing.T) {
	env := newTestEnv(t)
	links := env.links()
	s := env.payments(links)
	m := env.merchant(t, false)

	res, err := links.CreateBill(context.Background(), BillRequest{MerchantID: m.MerchantID, BillID: "42", Amount: vnd(150000), WebhookURL: "https://shop.example.com/hook"})
	if err != nil {
		t.Fatal(err)
	}
	// warm the cache with the unpaid copy
	if _, err := links.FindBill(m.MerchantID, "42"); err != nil {
		t.Fatal(err)
	}

	payment := linkPayment(res.Link)
	if err := s.Handle(payment); err != nil {
		t.Fatal(err)
	}

	merchant, err := env.repos.Merchants.FindByID(env.db, m.MerchantID)
	if err != nil {
		t.Fatal(err)
	}
	if !merchant.Balance.Equal(vnd(148500)) {
		t.Fatalf("expected balance 148500, got %s", merchant.Balance)
	}

	tx, err := env.repos.Transactions.FindByTransactionID(env.db, payment.TransactionID)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Status != domain.TX_COMPLETED || tx.Category != domain.CATEGORY_SHOPPING || !tx.NetAmount.Equal(vnd(148500)) || tx.ReceiverID != m.MerchantID {
		t.Fatalf("unexpected transaction %+v", tx)
	}

	paid, err := links.FindBill(m.MerchantID, "42")
	if err != nil {
		t.Fatal(err)
	}
	if !paid.IsPaid() || paid.PaidByUserID == nil || *paid.PaidByUserID != payment.SenderID {
		t.Fatalf("cached link not refreshed: %+v", paid)
	}

	if n := env.notificationCount(t, m.MerchantID, domain.NOTIFICATION_PAYMENT_RECEIVED); n != 1 {
		t.Fatalf("expected 1 payment notification, got %d", n)
	}

	event, err := env.repos.Events.Find(env.db, tx.ID, domain.EVENT_WEBHOOK)
	if err != nil {
		t.Fatal(err)
	}
	payload, err := utils.Unmarshal[domain.WebhookPayload]([]byte(event.Payload))
	if err != nil {
		t.Fatal(err)
	}
	if payload.Url != res.Link.WebhookURL || payload.Info.BillID != "42" || payload.Info.Status != "PAID" || payload.Info.Event != domain.WebhookEventPaymentSuccess {
		t.Fatalf("unexpected webhook payload %+v", payload)
	}

	// replay is a no-op
	if err := s.Handle(payment); err != nil {
		t.Fatalf("replay: %v", err)
	}
	merchant, _ = env.repos.Merchants.FindByID(env.db, m.MerchantID)
	if !merchant.Balance.Equal(vnd(148500)) {
		t.Fatalf("replay changed the balance to %s", merchant.Balance)
	}

	// a different transaction for the same link
	second := linkPayment(res.Link)
	if err := s.Handle(second); !errors.Is(err, domain.ErrPaymentRejected) {
		t.Fatalf("expected ErrPaymentRejected, got %v", err)
	}
}

func TestHandleLinkPaymentRejected(t *testing.T) {
	env := newTestEnv(t)
	links := env.links()
	s := env.payments(links)
	m := env.merchant(t, false)

	link, err := links.Create(m.MerchantID, vnd(20000), "tea")
	if err != nil {
		t.Fatal(err)
	}

	mismatch := linkPayment(link)
	mismatch.Amount = vnd(19000)
	mismatch.NetAmount = mismatch.Amount.Sub(mismatch.Fee)

	unknown := linkPayment(link)
	unknown.LinkID = gofakeit.UUID()

	broken := linkPayment(link)
	broken.NetAmount = vnd(1)

	for name, payment := range map[string]*natsdomain.PaymentSettled{"mismatch": mismatch, "unknown": unknown, "broken": broken} {
		if err := s.Handle(payment); !errors.Is(err, domain.ErrPaymentRejected) {
			t.Errorf("%s: expected ErrPaymentRejected, got %v", name, err)
		}
	}

	// no webhook url, no event
	ok := linkPayment(link)
	if err := s.Handle(ok); err != nil {
		t.Fatal(err)
	}
	tx, err := env.repos.Transactions.FindByTransactionID(env.db, ok.TransactionID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.repos.Events.Find(env.db, tx.ID, domain.EVENT_WEBHOOK); err == nil {
		t.Fatal("unexpected webhook event")
	}
}

func TestHandleInvoicePayment(t *testing.T) {
	env := newTestEnv(t)
	s := env.payments(env.links())
	m := env.merchant(t, false)

	invoice, err := env.invoices().RequestUpgrade(m.MerchantID, domain.PLAN_PRO)
	if err != nil {
		t.Fatal(err)
	}

	payment := SimulatedPayment(natsdomain.PaymentUpgradeInvoice, invoice.Amount, vnd(0))
	payment.InvoiceID = invoice.InvoiceID
	payment.Timestamp = time.Now().Truncate(time.Second)

	if err := s.Handle(payment); err != nil {
		t.Fatal(err)
	}

	paid, err := env.repos.Invoices.FindByID(env.db, invoice.InvoiceID)
	if err != nil {
		t.Fatal(err)
	}
	if paid.Status != domain.INVOICE_PAID || paid.PaymentTxID != payment.TransactionID || paid.PaidAt == nil {
		t.Fatalf("unexpected invoice %+v", paid)
	}

	// upgrade payments are not merchant revenue
	if _, err := env.repos.Transactions.FindByTransactionID(env.db, payment.TransactionID); err == nil {
		t.Fatal("invoice payment must not be recorded as a transaction")
	}

	if err := s.Handle(payment); err != nil {
		t.Fatalf("replay: %v", err)
	}

	other := SimulatedPayment(natsdomain.PaymentUpgradeInvoice, invoice.Amount, vnd(0))
	other.InvoiceID = invoice.InvoiceID
	if err := s.Handle(other); !errors.Is(err, domain.ErrPaymentRejected) {
		t.Fatalf("expected ErrPaymentRejected, got %v", err)
	}
}

func TestHandleInvoicePaymentNotUnpaid(t *testing.T) {
	tests := []struct {
		name    string
		actions []domain.InvoiceAction
		status  domain.InvoiceStatus
	}{
		{"suspended", []domain.InvoiceAction{domain.INVOICE_SUSPEND}, domain.INVOICE_SUSPENDED},
		{"canceled", []domain.InvoiceAction{domain.INVOICE_CANCEL}, domain.INVOICE_CANCELED},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			s := env.payments(env.links())
			invoices := env.invoices()
			m := env.merchant(t, false)

			invoice, err := invoices.RequestUpgrade(m.MerchantID, domain.PLAN_PRO)
			if err != nil {
				t.Fatal(err)
			}
			for _, action := range tt.actions {
				if _, err := invoices.Transition(invoice.InvoiceID, action); err != nil {
					t.Fatal(err)
				}
			}
			before := env.notificationCount(t, m.MerchantID, domain.NOTIFICATION_INVOICE_STATUS)

			payment := SimulatedPayment(natsdomain.PaymentUpgradeInvoice, invoice.Amount, vnd(0))
			payment.InvoiceID = invoice.InvoiceID
			if err := s.Handle(payment); !errors.Is(err, domain.ErrPaymentRejected) {
				t.Fatalf("expected ErrPaymentRejected, got %v", err)
			}

			got, err := env.repos.Invoices.FindByID(env.db, invoice.InvoiceID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != tt.status || got.PaymentTxID != "" {
				t.Fatalf("rejected payment changed the invoice %+v", got)
			}
			if n := env.notificationCount(t, m.MerchantID, domain.NOTIFICATION_INVOICE_STATUS); n != before+1 {
				t.Fatalf("expected a notification for the rejected payment, got %d new", n-before)
			}
		})
	}
}
