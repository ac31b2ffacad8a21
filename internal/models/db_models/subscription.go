package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusActive     SubscriptionStatus = "ACTIVE"
	SubStatusTrialing   SubscriptionStatus = "TRIALING"
	SubStatusPastDue    SubscriptionStatus = "PAST_DUE"
	SubStatusCanceled   SubscriptionStatus = "CANCELED"
	SubStatusUnpaid     SubscriptionStatus = "UNPAID"
	SubStatusIncomplete SubscriptionStatus = "INCOMPLETE"
)

// Subscription is a user's paid plan with another user (the creator).
// Rows appear on the first successful invoice payment, never at
// checkout-intent time; status moves only through webhook handlers.
type Subscription struct {
	BaseModel
	UserID  uuid.UUID `gorm:"index"` // subscriber
	OwnerID uuid.UUID `gorm:"index"` // plan owner

	StripeSubscriptionID string `gorm:"uniqueIndex"`
	StripeProductID      string `gorm:"index"`
	StripePriceID        string `gorm:"index"`

	Status             SubscriptionStatus `gorm:"index"`
	CurrentPeriodStart int64
	CurrentPeriodEnd   int64
	CancelAtPeriodEnd  bool `gorm:"default:false"`
	CanceledAt         *int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User  User `gorm:"foreignKey:UserID"`
	Owner User `gorm:"foreignKey:OwnerID"`
}
