package repository

import (
	"sharkpay/api/internal/domain"

	"gorm.io/gorm"
)

type InvoicesRepo struct {
}

func InitInvoicesRepo() *InvoicesRepo {
	return &InvoicesRepo{}
}

func (r *InvoicesRepo) Create(tx *gorm.DB, invoice *domain.Invoices) error {
	return tx.Create(invoice).Error
}

func (r *InvoicesRepo) FindByID(tx *gorm.DB, invoiceID string) (*domain.Invoices, error) {
	var invoice domain.Invoices
	return &invoice, tx.Where("invoice_id = ?", invoiceID).First(&invoice).Error
}

func (r *InvoicesRepo) FindOpen(tx *gorm.DB, merchantID string) (*domain.Invoices, error) {
	var invoice domain.Invoices
	return &invoice, tx.Where("merchant_id = ? AND status IN ?", merchantID, []domain.InvoiceStatus{domain.INVOICE_UNPAID, domain.INVOICE_PAID}).
		Order("created_at desc").First(&invoice).Error
}

func (r *InvoicesRepo) ListByMerchant(tx *gorm.DB, merchantID string) ([]domain.Invoices, error) {
	var invoices []domain.Invoices
	return invoices, tx.Where("merchant_id = ?", merchantID).Order("created_at desc, id desc").Find(&invoices).Error
}

// UpdateStatus moves the invoice only if it is still in the from status.
func (r *InvoicesRepo) UpdateStatus(tx *gorm.DB, invoiceID string, from, to domain.InvoiceStatus, fields map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	res := tx.Model(&domain.Invoices{}).Where("invoice_id = ? AND status = ?", invoiceID, from).Updates(updates)
	return res.RowsAffected == 1, res.Error
}
