package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

type UserRepositoryInterface interface {
	Insert(ctx context.Context, tx *gorm.DB, user *db_models.User) error
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*db_models.User, error)
	Save(ctx context.Context, tx *gorm.DB, user *db_models.User) error
	UpdateStripeAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, accountID string, status db_models.ConnectAccountStatus) error
}

type userRepository struct{}

func NewUserRepository() UserRepositoryInterface {
	return &userRepository{}
}

func (r *userRepository) Insert(ctx context.Context, tx *gorm.DB, user *db_models.User) error {
	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := tx.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*db_models.User, error) {
	var user db_models.User
	err := tx.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, tx *gorm.DB, user *db_models.User) error {
	return tx.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateStripeAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, accountID string, status db_models.ConnectAccountStatus) error {
	return tx.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"stripe_account_id":     accountID,
			"stripe_account_status": status,
		}).Error
}
