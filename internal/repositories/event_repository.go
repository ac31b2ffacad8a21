package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

type EventRepositoryInterface interface {
	Insert(ctx context.Context, tx *gorm.DB, event *db_models.Event) error
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*db_models.Event, error)
	List(ctx context.Context, tx *gorm.DB, page int, pageSize int) ([]db_models.Event, error)
}

type eventRepository struct{}

func NewEventRepository() EventRepositoryInterface {
	return &eventRepository{}
}

func (r *eventRepository) Insert(ctx context.Context, tx *gorm.DB, event *db_models.Event) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*db_models.Event, error) {
	var event db_models.Event
	err := tx.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, tx *gorm.DB, page int, pageSize int) ([]db_models.Event, error) {
	var events []db_models.Event
	err := tx.WithContext(ctx).
		Where("is_published = ?", true).
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).
		Order("starts_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
