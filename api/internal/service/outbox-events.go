package service

import (
	"context"
	"errors"
	"time"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/logger"
	"sharkpay/api/internal/repository"
	"sharkpay/pkg/utils"

	"gorm.io/gorm"
)

const (
	outboxInterval    = 10 * time.Second
	outboxBatchSize   = 20
	outboxMinAge      = time.Second
	outboxMaxAttempts = 5
)

type OutboxEventsService struct {
	repo      repository.Events
	merchants repository.Merchants
	webhook   WebhookSender

	db     *gorm.DB
	l      logger.Logger
	config *config.Config

	// events younger than minAge are left for the next tick
	minAge time.Duration
}

func NewOutboxEventsService(db *gorm.DB, repo repository.Events, merchants repository.Merchants, webhook WebhookSender, l logger.Logger, config *config.Config) *OutboxEventsService {
	return &OutboxEventsService{repo: repo, merchants: merchants, webhook: webhook, db: db, l: l, config: config, minAge: outboxMinAge}
}

// checks events table every 10s until ctx is done
func (s *OutboxEventsService) StartProcessEvents(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(outboxInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.ProcessBatch()
			}
		}
	}()
}

// ProcessBatch handles one batch of new events and returns how many were delivered.
func (s *OutboxEventsService) ProcessBatch() int {
	events, err := s.repo.SelectNew(s.db, time.Now().Add(-s.minAge), outboxBatchSize)
	if err != nil {
		s.l.Error("select events: "+err.Error(), "webhooks", false)
		return 0
	}

	var done int
	for _, event := range events {
		switch event.Type {
		case domain.EVENT_WEBHOOK:
			if s.handleWebhookEvent(event) {
				done++
			}
		default:
			s.l.Error("invalid event type: "+event.Type, "webhooks", false, "event_id", event.ID)
			s.attempt(event, true)
		}
	}
	return done
}

func (s *OutboxEventsService) handleWebhookEvent(event domain.Events) bool {
	payload, err := utils.Unmarshal[domain.WebhookPayload]([]byte(event.Payload))
	if err != nil {
		s.l.Error("unmarshal webhook payload: "+err.Error(), "webhooks", false, "event_id", event.ID)
		s.attempt(event, true)
		return false
	}

	err = s.webhook.Send(payload.Url, s.signingKey(payload.MerchantID), payload.Info)
	if err != nil && !errors.Is(err, ErrWebhookAlreadySent) {
		s.attempt(event, event.Attempts+1 >= outboxMaxAttempts)
		return false
	}

	if err := s.repo.Done(s.db, event.RelationID, domain.EVENT_WEBHOOK); err != nil {
		s.l.Error("mark event done: "+err.Error(), "webhooks", false, "event_id", event.ID)
		return false
	}
	return true
}

// merchant api key, platform secret when the merchant has none
func (s *OutboxEventsService) signingKey(merchantID string) string {
	merchant, err := s.merchants.FindByID(s.db, merchantID)
	if err == nil && merchant.ApiKey != "" {
		return merchant.ApiKey
	}
	return s.config.Billing.SecretKey
}

func (s *OutboxEventsService) attempt(event domain.Events, final bool) {
	if err := s.repo.Attempt(s.db, event.ID, final); err != nil {
		s.l.Error("count event attempt: "+err.Error(), "webhooks", false, "event_id", event.ID)
	}
}
