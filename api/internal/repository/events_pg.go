package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/postgres"

	"gorm.io/gorm"
)

type EventsRepo struct {
}

func InitEventsRepo() *EventsRepo {
	return &EventsRepo{}
}

// Create is a no-op when an event of that type already exists for the relation.
func (r *EventsRepo) Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error {
	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("invalid payload: %s", payload)
	}

	_, err := r.Find(tx, eventRelationID, eventType)
	if err == nil {
		return nil
	}
	if !postgres.IsNotFound(err) {
		return err
	}
	return tx.Create(&domain.Events{Type: eventType, RelationID: eventRelationID, Payload: payload, Status: domain.EVENT_STATUS_NEW}).Error
}

func (r *EventsRepo) Done(tx *gorm.DB, eventRelationID uint, eventType string) error {
	return tx.Model(&domain.Events{}).
		Where("relation_id = ? AND type = ?", eventRelationID, eventType).
		Update("status", domain.EVENT_STATUS_DONE).Error
}

func (r *EventsRepo) Find(tx *gorm.DB, eventRelationID uint, eventType string) (*domain.Events, error) {
	var existsEvent domain.Events
	return &existsEvent, tx.Where("relation_id = ? AND type = ?", eventRelationID, eventType).First(&existsEvent).Error
}

// oldest first
func (r *EventsRepo) SelectNew(tx *gorm.DB, createdBefore time.Time, limit int) ([]domain.Events, error) {
	var events []domain.Events
	return events, tx.Where("status = ? AND created_at <= ?", domain.EVENT_STATUS_NEW, createdBefore).
		Order("id asc").Limit(limit).Find(&events).Error
}

// Attempt counts a failed delivery, final gives up on the event.
func (r *EventsRepo) Attempt(tx *gorm.DB, id uint, final bool) error {
	updates := map[string]any{"attempts": gorm.Expr("attempts + 1")}
	if final {
		updates["status"] = domain.EVENT_STATUS_FAILED
	}
	return tx.Model(&domain.Events{}).Where("id = ?", id).Updates(updates).Error
}
