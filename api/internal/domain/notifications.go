package domain

type Notifications struct {
	Model
	ID         uint             `gorm:"primaryKey"`
	MerchantID string           `gorm:"index;size:128;not null"`
	Type       NotificationType `gorm:"type:int8;not null"`
	Title      string           `gorm:"size:255"`
	Body       string           `gorm:"type:text"`
	InvoiceID  string           `gorm:"size:36"` // only for invoice notifications
	Read       bool             `gorm:"not null"`
}

type NotificationType uint8

const (
	NOTIFICATION_SYSTEM NotificationType = iota
	NOTIFICATION_UPGRADE_INVOICE
	NOTIFICATION_INVOICE_STATUS
	NOTIFICATION_PAYMENT_RECEIVED
	NOTIFICATION_ACCOUNT
)

var NotificationTypes = [...]string{"SYSTEM", "UPGRADE_INVOICE", "INVOICE_STATUS", "PAYMENT_RECEIVED", "ACCOUNT"}

func (t NotificationType) ToString() string {
	return NotificationTypes[t]
}
