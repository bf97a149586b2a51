package repository

import (
	"sharkpay/api/internal/domain"

	"gorm.io/gorm"
)

type NotificationsRepo struct {
}

func InitNotificationsRepo() *NotificationsRepo {
	return &NotificationsRepo{}
}

func (r *NotificationsRepo) Create(tx *gorm.DB, notification *domain.Notifications) error {
	return tx.Create(notification).Error
}

func (r *NotificationsRepo) ListByMerchant(tx *gorm.DB, merchantID string, limit int) ([]domain.Notifications, error) {
	var notifications []domain.Notifications
	return notifications, tx.Where("merchant_id = ?", merchantID).Order("created_at desc, id desc").Limit(limit).Find(&notifications).Error
}

// MarkRead is scoped to the owner, other merchants get gorm.ErrRecordNotFound.
func (r *NotificationsRepo) MarkRead(tx *gorm.DB, merchantID string, id uint) error {
	var notification domain.Notifications
	if err := tx.Where("id = ? AND merchant_id = ?", id, merchantID).First(&notification).Error; err != nil {
		return err
	}
	if notification.Read {
		return nil
	}
	return tx.Model(&notification).Update("read", true).Error
}
