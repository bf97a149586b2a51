package service

import (
	"context"
	"errors"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/nats"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/repository"
	"sharkpay/pkg/nats/natsdomain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSimulatorDisabled = errors.New("payment simulation is only available in testing mode")
	ErrNatsNotConnected  = errors.New("nats is not connected")
)

// wallet fee used for simulated link payments
var simulatedFeeRate = decimal.NewFromFloat(0.01)

// SimulatorService publishes payments the way the wallet would.
type SimulatorService struct {
	links     repository.PaymentLinks
	invoices  repository.Invoices
	natsinfra *nats.NatsInfra
	db        *gorm.DB
	config    *config.Config
}

func NewSimulatorService(db *gorm.DB, links repository.PaymentLinks, invoices repository.Invoices, natsinfra *nats.NatsInfra, config *config.Config) *SimulatorService {
	return &SimulatorService{links: links, invoices: invoices, natsinfra: natsinfra, db: db, config: config}
}

func (s *SimulatorService) PayLink(ctx context.Context, linkID string) (*natsdomain.PaymentSettled, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	link, err := s.links.FindByLinkID(s.db, linkID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, err
	}
	if link.IsPaid() {
		return nil, domain.ErrBillAlreadyPaid
	}

	payment := SimulatedPayment(natsdomain.PaymentSharkPay, link.Amount, link.Amount.Mul(simulatedFeeRate).Round(0))
	payment.LinkID = link.LinkID
	payment.Description = link.Description

	return payment, s.natsinfra.PublishPayment(ctx, payment)
}

func (s *SimulatorService) PayInvoice(ctx context.Context, invoiceID string) (*natsdomain.PaymentSettled, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	invoice, err := s.invoices.FindByID(s.db, invoiceID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	if invoice.Status != domain.INVOICE_UNPAID {
		return nil, domain.ErrInvalidTransition
	}

	payment := SimulatedPayment(natsdomain.PaymentUpgradeInvoice, invoice.Amount, decimal.Zero)
	payment.InvoiceID = invoice.InvoiceID
	payment.Description = "Upgrade to " + invoice.TargetPlan.ToString()

	return payment, s.natsinfra.PublishPayment(ctx, payment)
}

func (s *SimulatorService) check() error {
	if !s.config.Testing.Enabled {
		return ErrSimulatorDisabled
	}
	if s.natsinfra == nil {
		return ErrNatsNotConnected
	}
	return nil
}

// SimulatedPayment fills sender data with fake values.
func SimulatedPayment(paymentType natsdomain.PaymentType, amount, fee decimal.Decimal) *natsdomain.PaymentSettled {
	return &natsdomain.PaymentSettled{
		TransactionID: "sim_" + uuid.NewString(),
		Type:          paymentType,
		SenderID:      gofakeit.UUID(),
		Amount:        amount,
		Fee:           fee,
		NetAmount:     amount.Sub(fee),
		Category:      gofakeit.RandomString(domain.Categories[:]),
		Timestamp:     time.Now(),
	}
}
