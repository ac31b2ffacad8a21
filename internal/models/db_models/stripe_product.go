package db_models

import "github.com/google/uuid"

// Local mirrors of Stripe product/price objects, keyed by the Stripe
// id. Deletion webhooks soft-flag them; rows are never removed.

type StripeProduct struct {
	BaseModel
	StripeProductID string    `gorm:"uniqueIndex"`
	OwnerID         uuid.UUID `gorm:"index"` // uuid.Nil for platform products
	Name            string
	Description     *string
	IsPlatform      bool `gorm:"default:false"`
	Active          bool `gorm:"default:true"`
	IsDeleted       bool `gorm:"default:false"`
}

type StripePrice struct {
	BaseModel
	StripePriceID   string `gorm:"uniqueIndex"`
	StripeProductID string `gorm:"index"`

	// Amount/currency/interval are immutable after creation; the
	// price.updated handler is only allowed to touch Active.
	UnitAmount int64
	Currency   string `gorm:"size:3"`
	Interval   string
	Active     bool `gorm:"default:true"`
	IsDeleted  bool `gorm:"default:false"`
}
