package repository

import (
	"time"

	"sharkpay/api/internal/domain"

	"gorm.io/gorm"
)

type PaymentLinksRepo struct {
}

func InitPaymentLinksRepo() *PaymentLinksRepo {
	return &PaymentLinksRepo{}
}

func (r *PaymentLinksRepo) Create(tx *gorm.DB, link *domain.PaymentLinks) error {
	return tx.Create(link).Error
}

func (r *PaymentLinksRepo) FindByLinkID(tx *gorm.DB, linkID string) (*domain.PaymentLinks, error) {
	var link domain.PaymentLinks
	return &link, tx.Where("link_id = ?", linkID).First(&link).Error
}

// newest first
func (r *PaymentLinksRepo) ListByMerchant(tx *gorm.DB, merchantID string, limit int) ([]domain.PaymentLinks, error) {
	var links []domain.PaymentLinks
	return links, tx.Where("merchant_id = ?", merchantID).Order("created_at desc, id desc").Limit(limit).Find(&links).Error
}

// MarkPaid flips an unpaid link to paid. false means the link was already paid.
func (r *PaymentLinksRepo) MarkPaid(tx *gorm.DB, linkID string, paidBy string, paidAt time.Time) (bool, error) {
	res := tx.Model(&domain.PaymentLinks{}).
		Where("link_id = ? AND status = ?", linkID, domain.LINK_UNPAID).
		Updates(map[string]any{"status": domain.LINK_PAID, "paid_by_user_id": paidBy, "paid_at": paidAt})
	return res.RowsAffected == 1, res.Error
}
