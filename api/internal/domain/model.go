package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are whole VND, clients read them as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Model struct {
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
