package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

type SubscriptionRepositoryInterface interface {
	FindByStripeID(ctx context.Context, tx *gorm.DB, stripeSubscriptionID string) (*db_models.Subscription, error)
	FindLatestActiveByUserAndProduct(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stripeProductID string) (*db_models.Subscription, error)
	ListActiveByProduct(ctx context.Context, tx *gorm.DB, stripeProductID string) ([]db_models.Subscription, error)
	Insert(ctx context.Context, tx *gorm.DB, sub *db_models.Subscription) error
	Save(ctx context.Context, tx *gorm.DB, sub *db_models.Subscription) error
}

type subscriptionRepository struct{}

func NewSubscriptionRepository() SubscriptionRepositoryInterface {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) FindByStripeID(ctx context.Context, tx *gorm.DB, stripeSubscriptionID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := tx.WithContext(ctx).First(&sub, "stripe_subscription_id = ?", stripeSubscriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// A user can hold several historical subscriptions to the same product;
// the refund cascade wants the most recent one that is still ACTIVE.
func (r *subscriptionRepository) FindLatestActiveByUserAndProduct(ctx context.Context, tx *gorm.DB, userID uuid.UUID, stripeProductID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := tx.WithContext(ctx).
		Where("user_id = ? AND stripe_product_id = ? AND status = ?",
			userID, stripeProductID, db_models.SubStatusActive).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListActiveByProduct(ctx context.Context, tx *gorm.DB, stripeProductID string) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := tx.WithContext(ctx).
		Where("stripe_product_id = ? AND status = ?", stripeProductID, db_models.SubStatusActive).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) Insert(ctx context.Context, tx *gorm.DB, sub *db_models.Subscription) error {
	return tx.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) Save(ctx context.Context, tx *gorm.DB, sub *db_models.Subscription) error {
	return tx.WithContext(ctx).Save(sub).Error
}
