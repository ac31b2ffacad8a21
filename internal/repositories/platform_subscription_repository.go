package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

type PlatformSubscriptionRepositoryInterface interface {
	FindByStripeID(ctx context.Context, tx *gorm.DB, stripeSubscriptionID string) (*db_models.PlatformSubscription, error)
	Insert(ctx context.Context, tx *gorm.DB, sub *db_models.PlatformSubscription) error
	Save(ctx context.Context, tx *gorm.DB, sub *db_models.PlatformSubscription) error
}

type platformSubscriptionRepository struct{}

func NewPlatformSubscriptionRepository() PlatformSubscriptionRepositoryInterface {
	return &platformSubscriptionRepository{}
}

func (r *platformSubscriptionRepository) FindByStripeID(ctx context.Context, tx *gorm.DB, stripeSubscriptionID string) (*db_models.PlatformSubscription, error) {
	var sub db_models.PlatformSubscription
	err := tx.WithContext(ctx).First(&sub, "stripe_subscription_id = ?", stripeSubscriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *platformSubscriptionRepository) Insert(ctx context.Context, tx *gorm.DB, sub *db_models.PlatformSubscription) error {
	return tx.WithContext(ctx).Create(sub).Error
}

func (r *platformSubscriptionRepository) Save(ctx context.Context, tx *gorm.DB, sub *db_models.PlatformSubscription) error {
	return tx.WithContext(ctx).Save(sub).Error
}
