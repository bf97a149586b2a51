package service

import (
	"errors"
	"fmt"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoicesService struct {
	repo          repository.Invoices
	merchants     repository.Merchants
	notifications repository.Notifications
	db            *gorm.DB
	l             logger.Logger
	config        *config.Config
}

func NewInvoicesService(db *gorm.DB, repo repository.Invoices, merchants repository.Merchants, notifications repository.Notifications, l logger.Logger, config *config.Config) *InvoicesService {
	return &InvoicesService{repo: repo, merchants: merchants, notifications: notifications, db: db, l: l, config: config}
}

// RequestUpgrade opens an UNPAID invoice for a plan above the current one.
func (s *InvoicesService) RequestUpgrade(merchantID string, target domain.Plan) (*domain.Invoices, error) {
	price, ok := s.config.Plans[target.ToString()]
	if !ok || target == domain.PLAN_FREE {
		return nil, domain.ErrInvalidPlan
	}

	var invoice *domain.Invoices
	err := s.db.Transaction(func(tx *gorm.DB) error {
		merchant, err := s.lockNoOpenInvoice(tx, merchantID)
		if err != nil {
			return err
		}
		if merchant.IsFrozen {
			return domain.ErrMerchantFrozen
		}
		if !target.Above(merchant.CurrentPlan) {
			return domain.ErrPlanNotUpgrade
		}

		invoice = &domain.Invoices{
			InvoiceID:  uuid.NewString(),
			MerchantID: merchantID,
			FromPlan:   merchant.CurrentPlan,
			TargetPlan: target,
			Amount:     decimal.NewFromInt(price),
			Status:     domain.INVOICE_UNPAID,
		}
		if err := s.repo.Create(tx, invoice); err != nil {
			return err
		}

		return s.notifications.Create(tx, &domain.Notifications{
			MerchantID: merchantID,
			Type:       domain.NOTIFICATION_UPGRADE_INVOICE,
			Title:      "Upgrade invoice created",
			Body:       fmt.Sprintf("Pay %s VND to upgrade to %s", invoice.Amount, target.ToString()),
			InvoiceID:  invoice.InvoiceID,
		})
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// lockNoOpenInvoice locks the merchant row, then makes sure no UNPAID or PAID
// invoice exists for it. Holders of the lock are serialized per merchant.
func (s *InvoicesService) lockNoOpenInvoice(tx *gorm.DB, merchantID string) (*domain.Merchants, error) {
	merchant, err := s.merchants.FindByIDForUpdate(tx, merchantID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}

	_, err = s.repo.FindOpen(tx, merchantID)
	if err == nil {
		return nil, domain.ErrOpenInvoiceExists
	}
	if !postgres.IsNotFound(err) {
		return nil, err
	}
	return merchant, nil
}

func (s *InvoicesService) List(merchantID string) ([]domain.Invoices, error) {
	return s.repo.ListByMerchant(s.db, merchantID)
}

func (s *InvoicesService) FindForMerchant(merchantID, invoiceID string) (*domain.Invoices, error) {
	invoice, err := s.repo.FindByID(s.db, invoiceID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	if invoice.MerchantID != merchantID {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

// Transition applies an administrative action. Approving upgrades the plan,
// refunding a completed invoice puts the previous plan back.
func (s *InvoicesService) Transition(invoiceID string, action domain.InvoiceAction) (*domain.Invoices, error) {
	var invoice *domain.Invoices

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = s.repo.FindByID(tx, invoiceID)
		if err != nil {
			if postgres.IsNotFound(err) {
				return domain.ErrInvoiceNotFound
			}
			return err
		}

		from := invoice.Status
		to := invoice.Target(action)
		if !from.CanTransitionTo(to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from.ToString(), to.ToString())
		}

		// resuming a suspended invoice must not give the merchant a second open one
		if !from.IsOpen() && to.IsOpen() {
			if _, err := s.lockNoOpenInvoice(tx, invoice.MerchantID); err != nil {
				return err
			}
		}

		ok, err := s.repo.UpdateStatus(tx, invoiceID, from, to, nil)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: invoice changed concurrently", domain.ErrInvalidTransition)
		}
		invoice.Status = to

		switch {
		case to == domain.INVOICE_COMPLETED:
			err = s.merchants.Update(tx, invoice.MerchantID, map[string]any{"current_plan": invoice.TargetPlan})
		case to == domain.INVOICE_REFUNDED && from == domain.INVOICE_COMPLETED:
			err = s.merchants.Update(tx, invoice.MerchantID, map[string]any{"current_plan": invoice.FromPlan})
		}
		if err != nil {
			return err
		}

		return s.notifications.Create(tx, &domain.Notifications{
			MerchantID: invoice.MerchantID,
			Type:       domain.NOTIFICATION_INVOICE_STATUS,
			Title:      "Invoice " + to.ToString(),
			Body:       fmt.Sprintf("Upgrade invoice to %s is now %s", invoice.TargetPlan.ToString(), to.ToString()),
			InvoiceID:  invoice.InvoiceID,
		})
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvoiceNotFound) && !errors.Is(err, domain.ErrInvalidTransition) && !errors.Is(err, domain.ErrOpenInvoiceExists) {
			s.l.TemplPaymentErr("invoice transition: "+err.Error(), logger.GenErrorId(), invoiceID, decimal.Zero, logger.NA, logger.NA, logger.NA)
		}
		return nil, err
	}
	return invoice, nil
}
