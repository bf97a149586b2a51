package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type Merchants struct {
	Model
	ID              uint            `gorm:"primaryKey"`
	MerchantID      string          `gorm:"uniqueIndex;size:128;not null"` // identity provider uid
	Email           string          `gorm:"size:320"`
	BusinessName    string          `gorm:"size:128;not null"`
	Sector          string          `gorm:"size:32;not null"`
	Balance         decimal.Decimal `gorm:"type:numeric;default:0"`
	CurrentPlan     Plan            `gorm:"type:int8;not null"`
	IsFrozen        bool            `gorm:"not null"`
	ApiKey          string          `gorm:"size:64;index"`
	ApiKeyCreatedAt *time.Time
	WalletUID       string `gorm:"size:128"`
}

type Plan uint8

const (
	PLAN_FREE Plan = iota
	PLAN_PRO
	PLAN_ENTERPRISE
)

var Plans = [...]string{"FREE", "PRO", "ENTERPRISE"}

func (p Plan) ToString() string {
	if int(p) >= len(Plans) {
		return "UNKNOWN"
	}
	return Plans[p]
}

// plans are ordered, a higher value is a bigger plan
func (p Plan) Above(other Plan) bool {
	return p > other
}

func StrToPlan(s string) (Plan, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, planName := range Plans {
		if s == planName {
			return Plan(i), true
		}
	}
	return PLAN_FREE, false
}

var Sectors = [...]string{"Retail", "F&B", "Technology", "Education", "Healthcare", "Finance", "Entertainment", "Other"}

func IsValidSector(s string) bool {
	for _, sector := range Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

const (
	ApiKeyPrefix   = "sk_live_"
	ApiKeyRandLen  = 48
	ApiKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// MaskApiKey keeps the first 12 and the last 4 characters.
func MaskApiKey(key string) string {
	if key == "" {
		return ""
	}
	if utf8.RuneCountInString(key) <= 16 {
		return strings.Repeat("•", utf8.RuneCountInString(key))
	}
	return key[:12] + strings.Repeat("•", 32) + key[len(key)-4:]
}

func (m *Merchants) HasWallet() bool {
	return m.WalletUID != ""
}
