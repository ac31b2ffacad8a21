package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlatformSubscription is the platform-plan sibling of Subscription.
// The tables are disjoint on purpose: webhook handlers pick one by the
// is_platform metadata flag before touching the database, so a platform
// price can never create a creator row or the other way around.
type PlatformSubscription struct {
	BaseModel
	UserID uuid.UUID `gorm:"index"`

	StripeSubscriptionID string `gorm:"uniqueIndex"`
	StripeProductID      string `gorm:"index"`
	StripePriceID        string `gorm:"index"`

	Status             SubscriptionStatus `gorm:"index"`
	CurrentPeriodStart int64
	CurrentPeriodEnd   int64
	CancelAtPeriodEnd  bool `gorm:"default:false"`
	CanceledAt         *int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User User `gorm:"foreignKey:UserID"`
}
