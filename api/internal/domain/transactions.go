package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transactions struct {
	Model
	ID            uint            `gorm:"primaryKey"`
	TransactionID string          `gorm:"uniqueIndex;size:128;not null"` // wallet transaction id
	ReceiverID    string          `gorm:"index;size:128;not null"`
	SenderID      string          `gorm:"size:128"`
	LinkID        string          `gorm:"size:300"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null"`
	Fee           decimal.Decimal `gorm:"type:numeric;not null"`
	NetAmount     decimal.Decimal `gorm:"type:numeric;not null"`
	Category      Category        `gorm:"type:int8"`
	Description   string          `gorm:"type:text"`
	Status        TxStatus        `gorm:"type:int8;not null"`
	Timestamp     time.Time       `gorm:"index;not null"`
}

type TxStatus uint8

const (
	TX_COMPLETED TxStatus = iota
	TX_PENDING
	TX_FAILED
)

var TxStatuses = [...]string{"COMPLETED", "PENDING", "FAILED"}

func (s TxStatus) ToString() string {
	return TxStatuses[s]
}

type Category uint8

const (
	CATEGORY_OTHER Category = iota
	CATEGORY_FOOD_DRINK
	CATEGORY_SHOPPING
	CATEGORY_TRANSPORT
	CATEGORY_ENTERTAINMENT
	CATEGORY_BILL_UTILITIES
	CATEGORY_TRANSFER
)

var Categories = [...]string{"OTHER", "FOOD_DRINK", "SHOPPING", "TRANSPORT", "ENTERTAINMENT", "BILL_UTILITIES", "TRANSFER"}

func (c Category) ToString() string {
	return Categories[c]
}

// unknown categories fall back to OTHER
func StrToCategory(s string) Category {
	for i, name := range Categories {
		if s == name {
			return Category(i)
		}
	}
	return CATEGORY_OTHER
}

type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

type Analytics struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	TxCount       int             `json:"tx_count"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	DailyRevenue  []DailyRevenue  `json:"daily_revenue"`
}

type ChartPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}
