package domain

import "time"

const (
	EVENT_WEBHOOK = "webhook"
)

const (
	EVENT_STATUS_NEW    = "new"
	EVENT_STATUS_DONE   = "done"
	EVENT_STATUS_FAILED = "failed"
)

type Events struct {
	ID         uint   `gorm:"primaryKey"`
	RelationID uint   `gorm:"not null"` // transactions.id
	Type       string `gorm:"type:varchar(255)"`
	Payload    string
	Status     string `gorm:"index"` // new/done/failed
	Attempts   int
	CreatedAt  time.Time
}

// event payloads
type WebhookPayload struct {
	MerchantID string      `json:"merchant_id"`
	LinkID     string      `json:"link_id"`
	Url        string      `json:"url"`
	Info       WebhookInfo `json:"info"`
}
