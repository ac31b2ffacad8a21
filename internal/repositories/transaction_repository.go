package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

// Repositories take the transaction handle explicitly on every call so
// one webhook delivery can thread a single gorm transaction through all
// of its reads and writes.
type TransactionRepositoryInterface interface {
	FindByPaymentIntentID(ctx context.Context, tx *gorm.DB, paymentIntentID string) (*db_models.Transaction, error)
	Insert(ctx context.Context, tx *gorm.DB, txn *db_models.Transaction) error
	Save(ctx context.Context, tx *gorm.DB, txn *db_models.Transaction) error
}

type transactionRepository struct{}

func NewTransactionRepository() TransactionRepositoryInterface {
	return &transactionRepository{}
}

func (r *transactionRepository) FindByPaymentIntentID(ctx context.Context, tx *gorm.DB, paymentIntentID string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := tx.WithContext(ctx).First(&txn, "payment_intent_id = ?", paymentIntentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) Insert(ctx context.Context, tx *gorm.DB, txn *db_models.Transaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) Save(ctx context.Context, tx *gorm.DB, txn *db_models.Transaction) error {
	return tx.WithContext(ctx).Save(txn).Error
}
