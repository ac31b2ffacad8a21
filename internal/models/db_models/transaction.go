package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TxnTypeEvent        TransactionType = "EVENT"
	TxnTypeSubscription TransactionType = "SUBSCRIPTION"
)

type TransactionStatus string

const (
	TxnStatusSucceeded TransactionStatus = "SUCCEEDED"
	TxnStatusRefunded  TransactionStatus = "REFUNDED"
)

// Transaction mirrors one monetary movement reported by Stripe. The
// payment-intent id is the natural key: webhook handlers look it up
// before inserting, which is what makes redelivery safe.
type Transaction struct {
	BaseModel
	Type   TransactionType   `gorm:"index"`
	Status TransactionStatus `gorm:"index"`

	PaymentIntentID string `gorm:"uniqueIndex"`

	// Major units, e.g. 50.00 for a 5000-cent intent.
	Amount         float64
	TransferAmount float64
	Currency       string `gorm:"size:3"`
	PaymentMethod  string

	UserID uuid.UUID  `gorm:"index"` // payer
	HostID *uuid.UUID `gorm:"index"` // creator receiving the transfer

	EventID         *uuid.UUID `gorm:"index"`
	StripeProductID *string    `gorm:"index"`
	StripePriceID   *string    `gorm:"index"`

	RefundedAt *int64

	// Raw webhook payload, kept for audit/debug.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
