package service

import (
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/postgres"
	"sharkpay/api/internal/repository"

	"gorm.io/gorm"
)

const notificationsLimit = 50

type NotificationsService struct {
	repo repository.Notifications
	db   *gorm.DB
}

func NewNotificationsService(db *gorm.DB, repo repository.Notifications) *NotificationsService {
	return &NotificationsService{repo: repo, db: db}
}

func (s *NotificationsService) List(merchantID string) ([]domain.Notifications, error) {
	return s.repo.ListByMerchant(s.db, merchantID, notificationsLimit)
}

func (s *NotificationsService) MarkRead(merchantID string, id uint) error {
	err := s.repo.MarkRead(s.db, merchantID, id)
	if postgres.IsNotFound(err) {
		return domain.ErrNotificationNotFound
	}
	return err
}
