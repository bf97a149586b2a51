package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/nats"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/repository"
	"sharkpay/pkg/nats/natsdomain"
	"sharkpay/pkg/utils"

	"github.com/nats-io/nats.go/jetstream"
	"gorm.io/gorm"
)

const (
	paymentMaxDeliveries = 6
	paymentNakDelay      = 10 * time.Second
)

var errAlreadyProcessed = errors.New("payment already processed")

// PaymentsService applies payments settled by the wallet.
type PaymentsService struct {
	links         repository.PaymentLinks
	invoices      repository.Invoices
	merchants     repository.Merchants
	transactions  repository.Transactions
	notifications repository.Notifications
	events        repository.Events
	linksService  PaymentLinks

	db        *gorm.DB
	natsinfra *nats.NatsInfra
	l         logger.Logger
}

func NewPaymentsService(db *gorm.DB, repos *repository.Repositories, linksService PaymentLinks, natsinfra *nats.NatsInfra, l logger.Logger) *PaymentsService {
	return &PaymentsService{
		links:         repos.PaymentLinks,
		invoices:      repos.Invoices,
		merchants:     repos.Merchants,
		transactions:  repos.Transactions,
		notifications: repos.Notifications,
		events:        repos.Events,
		linksService:  linksService,
		db:            db,
		natsinfra:     natsinfra,
		l:             l,
	}
}

func (s *PaymentsService) StartConsume(ctx context.Context) error {
	c, err := s.natsinfra.PaymentsConsumer(ctx)
	if err != nil {
		return fmt.Errorf("payments consumer: %w", err)
	}

	cc, err := c.Consume(s.consume)
	if err != nil {
		s.l.TemplNatsError("consume error", s.natsinfra.Nc.ConnectedUrl(), err)
		return err
	}

	go func() {
		<-ctx.Done()
		cc.Stop()
	}()
	return nil
}

func (s *PaymentsService) consume(msg jetstream.Msg) {
	if m, _ := msg.Metadata(); m != nil && m.NumDelivered > paymentMaxDeliveries {
		s.l.Error("too many deliveries, dropping payment", "payments", false, "num", m.NumDelivered, "data", string(msg.Data()))
		msg.Term()
		return
	}

	payment, err := utils.Unmarshal[natsdomain.PaymentSettled](msg.Data())
	if err != nil {
		s.l.Error("unmarshal payment: "+err.Error(), "payments", false, "data", string(msg.Data()))
		msg.Term()
		return
	}

	err = s.Handle(payment)
	switch {
	case err == nil:
		msg.Ack()
	case errors.Is(err, domain.ErrPaymentRejected):
		s.l.TemplPaymentErr(err.Error(), logger.GenErrorId(), payment.LinkID+payment.InvoiceID, payment.Amount, logger.NA, logger.NA, logger.NA)
		msg.Term()
	default:
		s.l.TemplPaymentErr("handle payment: "+err.Error(), logger.GenErrorId(), payment.LinkID+payment.InvoiceID, payment.Amount, logger.NA, logger.NA, logger.NA)
		msg.NakWithDelay(paymentNakDelay)
	}
}

// Handle is idempotent on the transaction id.
func (s *PaymentsService) Handle(payment *natsdomain.PaymentSettled) error {
	if err := payment.Validate(); err != nil {
		return rejected(err.Error())
	}
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now()
	}

	switch payment.Type {
	case natsdomain.PaymentSharkPay:
		return s.handleLinkPayment(payment)
	default:
		return s.handleInvoicePayment(payment)
	}
}

func rejected(reason string) error {
	return fmt.Errorf("%w: %s", domain.ErrPaymentRejected, reason)
}

func (s *PaymentsService) handleLinkPayment(payment *natsdomain.PaymentSettled) error {
	var paid *domain.PaymentLinks

	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, err := s.transactions.FindByTransactionID(tx, payment.TransactionID)
		if err == nil {
			return errAlreadyProcessed
		}
		if !postgres.IsNotFound(err) {
			return err
		}

		link, err := s.links.FindByLinkID(tx, payment.LinkID)
		if err != nil {
			if postgres.IsNotFound(err) {
				return rejected("link not found: " + payment.LinkID)
			}
			return err
		}
		if !link.Amount.Equal(payment.Amount) {
			return rejected(fmt.Sprintf("amount %s does not match link amount %s", payment.Amount, link.Amount))
		}

		ok, err := s.links.MarkPaid(tx, link.LinkID, payment.SenderID, payment.Timestamp)
		if err != nil {
			return err
		}
		if !ok {
			return rejected("link already paid: " + link.LinkID)
		}

		record := &domain.Transactions{
			TransactionID: payment.TransactionID,
			ReceiverID:    link.MerchantID,
			SenderID:      payment.SenderID,
			LinkID:        link.LinkID,
			Amount:        payment.Amount,
			Fee:           payment.Fee,
			NetAmount:     payment.NetAmount,
			Category:      domain.StrToCategory(payment.Category),
			Description:   firstNonEmpty(payment.Description, link.Description),
			Status:        domain.TX_COMPLETED,
			Timestamp:     payment.Timestamp,
		}
		if err := s.transactions.Create(tx, record); err != nil {
			return err
		}

		if err := s.merchants.AddBalance(tx, link.MerchantID, payment.NetAmount); err != nil {
			return err
		}

		if err := s.notifications.Create(tx, &domain.Notifications{
			MerchantID: link.MerchantID,
			Type:       domain.NOTIFICATION_PAYMENT_RECEIVED,
			Title:      "Payment received",
			Body:       fmt.Sprintf("Received %s VND (fee %s) for %s", payment.Amount, payment.Fee, firstNonEmpty(link.BillID, link.LinkID)),
		}); err != nil {
			return err
		}

		if link.WebhookURL != "" {
			payload := domain.WebhookPayload{
				MerchantID: link.MerchantID,
				LinkID:     link.LinkID,
				Url:        link.WebhookURL,
				Info: domain.WebhookInfo{
					Event:         domain.WebhookEventPaymentSuccess,
					BillID:        link.BillID,
					MerchantID:    link.MerchantID,
					TransactionID: payment.TransactionID,
					Amount:        payment.Amount,
					Fee:           payment.Fee,
					NetAmount:     payment.NetAmount,
					Status:        domain.LINK_PAID.ToString(),
					Timestamp:     payment.Timestamp.UTC().Format(time.RFC3339),
				},
			}
			if err := s.events.Create(tx, domain.EVENT_WEBHOOK, record.ID, string(utils.MustMarshal(payload))); err != nil {
				return err
			}
		}

		link.Status = domain.LINK_PAID
		link.PaidByUserID = &payment.SenderID
		link.PaidAt = &payment.Timestamp
		paid = link
		return nil
	})
	if errors.Is(err, errAlreadyProcessed) {
		return nil
	}
	if err != nil {
		return err
	}

	s.linksService.Refresh(paid)
	s.l.TemplPaymentInfo("link paid", paid.LinkID, payment.Amount, paid.MerchantID, payment.TransactionID)
	return nil
}

// A payment for an invoice that is no longer UNPAID is rejected, and the
// merchant is told so the money can be sorted out with support.
func (s *PaymentsService) handleInvoicePayment(payment *natsdomain.PaymentSettled) error {
	var refused error
	err := s.db.Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoices.FindByID(tx, payment.InvoiceID)
		if err != nil {
			if postgres.IsNotFound(err) {
				return rejected("invoice not found: " + payment.InvoiceID)
			}
			return err
		}

		if invoice.PaymentTxID == payment.TransactionID {
			return nil
		}
		if invoice.Status != domain.INVOICE_UNPAID {
			refused = rejected(fmt.Sprintf("invoice %s is %s", invoice.InvoiceID, invoice.Status.ToString()))
			return s.notifications.Create(tx, &domain.Notifications{
				MerchantID: invoice.MerchantID,
				Type:       domain.NOTIFICATION_INVOICE_STATUS,
				Title:      "Invoice payment not applied",
				Body: fmt.Sprintf("Payment %s of %s VND arrived while the invoice was %s, contact support for a refund",
					payment.TransactionID, payment.Amount, invoice.Status.ToString()),
				InvoiceID: invoice.InvoiceID,
			})
		}
		if !invoice.Amount.Equal(payment.Amount) {
			return rejected(fmt.Sprintf("amount %s does not match invoice amount %s", payment.Amount, invoice.Amount))
		}

		ok, err := s.invoices.UpdateStatus(tx, invoice.InvoiceID, domain.INVOICE_UNPAID, domain.INVOICE_PAID, map[string]any{
			"payment_tx_id": payment.TransactionID,
			"paid_at":       payment.Timestamp,
		})
		if err != nil {
			return err
		}
		if !ok {
			return rejected("invoice changed concurrently: " + invoice.InvoiceID)
		}

		return s.notifications.Create(tx, &domain.Notifications{
			MerchantID: invoice.MerchantID,
			Type:       domain.NOTIFICATION_INVOICE_STATUS,
			Title:      "Invoice paid",
			Body:       fmt.Sprintf("Upgrade to %s paid, waiting for approval", invoice.TargetPlan.ToString()),
			InvoiceID:  invoice.InvoiceID,
		})
	})
	if err != nil {
		return err
	}
	return refused
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
