package repository

import (
	"sharkpay/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MerchantsRepo struct {
}

func InitMerchantsRepo() *MerchantsRepo {
	return &MerchantsRepo{}
}

func (r *MerchantsRepo) FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error) {
	var merchant domain.Merchants
	return &merchant, tx.Where("merchant_id = ?", merchantID).First(&merchant).Error
}

// FindByIDForUpdate locks the merchant row until tx ends.
// Plan upgrades take this lock so a merchant never ends up with two open invoices.
func (r *MerchantsRepo) FindByIDForUpdate(tx *gorm.DB, merchantID string) (*domain.Merchants, error) {
	var merchant domain.Merchants
	return &merchant, tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("merchant_id = ?", merchantID).First(&merchant).Error
}

func (r *MerchantsRepo) Create(tx *gorm.DB, merchant *domain.Merchants) error {
	return tx.Create(merchant).Error
}

func (r *MerchantsRepo) Update(tx *gorm.DB, merchantID string, fields map[string]any) error {
	res := tx.Model(&domain.Merchants{}).Where("merchant_id = ?", merchantID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MerchantsRepo) AddBalance(tx *gorm.DB, merchantID string, amount decimal.Decimal) error {
	return r.Update(tx, merchantID, map[string]any{"balance": gorm.Expr("balance + ?", amount)})
}
