package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

type ProductRepositoryInterface interface {
	FindProductByStripeID(ctx context.Context, tx *gorm.DB, stripeProductID string) (*db_models.StripeProduct, error)
	ListProductsByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]db_models.StripeProduct, error)
	InsertProduct(ctx context.Context, tx *gorm.DB, product *db_models.StripeProduct) error
	SaveProduct(ctx context.Context, tx *gorm.DB, product *db_models.StripeProduct) error

	FindPriceByStripeID(ctx context.Context, tx *gorm.DB, stripePriceID string) (*db_models.StripePrice, error)
	FindActivePriceByProduct(ctx context.Context, tx *gorm.DB, stripeProductID string) (*db_models.StripePrice, error)
	InsertPrice(ctx context.Context, tx *gorm.DB, price *db_models.StripePrice) error
	SavePrice(ctx context.Context, tx *gorm.DB, price *db_models.StripePrice) error
}

type productRepository struct{}

func NewProductRepository() ProductRepositoryInterface {
	return &productRepository{}
}

func (r *productRepository) FindProductByStripeID(ctx context.Context, tx *gorm.DB, stripeProductID string) (*db_models.StripeProduct, error) {
	var product db_models.StripeProduct
	err := tx.WithContext(ctx).First(&product, "stripe_product_id = ?", stripeProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListProductsByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]db_models.StripeProduct, error) {
	var products []db_models.StripeProduct
	err := tx.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, tx *gorm.DB, product *db_models.StripeProduct) error {
	return tx.WithContext(ctx).Create(product).Error
}

func (r *productRepository) SaveProduct(ctx context.Context, tx *gorm.DB, product *db_models.StripeProduct) error {
	return tx.WithContext(ctx).Save(product).Error
}

func (r *productRepository) FindPriceByStripeID(ctx context.Context, tx *gorm.DB, stripePriceID string) (*db_models.StripePrice, error) {
	var price db_models.StripePrice
	err := tx.WithContext(ctx).First(&price, "stripe_price_id = ?", stripePriceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

func (r *productRepository) FindActivePriceByProduct(ctx context.Context, tx *gorm.DB, stripeProductID string) (*db_models.StripePrice, error) {
	var price db_models.StripePrice
	err := tx.WithContext(ctx).
		Where("stripe_product_id = ? AND active = ? AND is_deleted = ?", stripeProductID, true, false).
		Order("created_at DESC").
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

func (r *productRepository) InsertPrice(ctx context.Context, tx *gorm.DB, price *db_models.StripePrice) error {
	return tx.WithContext(ctx).Create(price).Error
}

func (r *productRepository) SavePrice(ctx context.Context, tx *gorm.DB, price *db_models.StripePrice) error {
	return tx.WithContext(ctx).Save(price).Error
}
