package repository

import (
	"sharkpay/api/internal/domain"

	"gorm.io/gorm"
)

type TransactionsRepo struct {
}

func InitTransactionsRepo() *TransactionsRepo {
	return &TransactionsRepo{}
}

func (r *TransactionsRepo) Create(tx *gorm.DB, transaction *domain.Transactions) error {
	return tx.Create(transaction).Error
}

func (r *TransactionsRepo) FindByTransactionID(tx *gorm.DB, transactionID string) (*domain.Transactions, error) {
	var transaction domain.Transactions
	return &transaction, tx.Where("transaction_id = ?", transactionID).First(&transaction).Error
}

func (r *TransactionsRepo) FindByID(tx *gorm.DB, id uint) (*domain.Transactions, error) {
	var transaction domain.Transactions
	return &transaction, tx.First(&transaction, id).Error
}

// newest first
func (r *TransactionsRepo) ListByReceiver(tx *gorm.DB, receiverID string, limit int, completedOnly bool) ([]domain.Transactions, error) {
	var transactions []domain.Transactions

	q := tx.Where("receiver_id = ?", receiverID)
	if completedOnly {
		q = q.Where("status = ?", domain.TX_COMPLETED)
	}
	return transactions, q.Order("timestamp desc, id desc").Limit(limit).Find(&transactions).Error
}
