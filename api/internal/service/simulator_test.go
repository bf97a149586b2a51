package service

import (
	"context"
	"errors"
	"testing"

	"sharkpay/pkg/nats/natsdomain"
)

func TestSimulatedPayment(t *testing.T) {
	p := SimulatedPayment(natsdomain.PaymentSharkPay, vnd(100000), vnd(1000))
	p.LinkID = "m_1"

	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if !p.NetAmount.Equal(vnd(99000)) || p.SenderID == "" || p.TransactionID == "" {
		t.Fatalf("unexpected payment %+v", p)
	}
}

func TestSimulatorGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := NewSimulatorService(env.db, env.repos.PaymentLinks, env.repos.Invoices, nil, env.config)
	if _, err := s.PayLink(ctx, "x"); !errors.Is(err, ErrNatsNotConnected) {
		t.Fatalf("expected ErrNatsNotConnected, got %v", err)
	}

	env.config.Testing.Enabled = false
	if _, err := s.PayInvoice(ctx, "x"); !errors.Is(err, ErrSimulatorDisabled) {
		t.Fatalf("expected ErrSimulatorDisabled, got %v", err)
	}
}
