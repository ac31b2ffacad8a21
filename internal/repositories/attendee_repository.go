package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
)

type AttendeeRepositoryInterface interface {
	InsertBulk(ctx context.Context, tx *gorm.DB, attendees []*db_models.EventAttendee) error
	LinkToTransaction(ctx context.Context, tx *gorm.DB, userID, eventID, transactionID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*db_models.EventAttendee, error)
	ListByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) ([]db_models.EventAttendee, error)
	SetCheckedIn(ctx context.Context, tx *gorm.DB, attendee *db_models.EventAttendee, checkedIn bool) error
}

type attendeeRepository struct{}

func NewAttendeeRepository() AttendeeRepositoryInterface {
	return &attendeeRepository{}
}

func (r *attendeeRepository) InsertBulk(ctx context.Context, tx *gorm.DB, attendees []*db_models.EventAttendee) error {
	return tx.WithContext(ctx).Create(attendees).Error
}

// LinkToTransaction backfills transaction_id on every attendee row for
// (user, event) that does not have one yet. Matching zero rows is fine:
// the attendee-creation path has not run and will link on its own.
// Re-running only ever matches rows still null, so it is idempotent.
func (r *attendeeRepository) LinkToTransaction(ctx context.Context, tx *gorm.DB, userID, eventID, transactionID uuid.UUID) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&db_models.EventAttendee{}).
		Where("user_id = ? AND event_id = ? AND transaction_id IS NULL", userID, eventID).
		Update("transaction_id", transactionID)
	return res.RowsAffected, res.Error
}

func (r *attendeeRepository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*db_models.EventAttendee, error) {
	var attendee db_models.EventAttendee
	err := tx.WithContext(ctx).First(&attendee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendee, nil
}

func (r *attendeeRepository) ListByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) ([]db_models.EventAttendee, error) {
	var attendees []db_models.EventAttendee
	err := tx.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Find(&attendees).Error
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

func (r *attendeeRepository) SetCheckedIn(ctx context.Context, tx *gorm.DB, attendee *db_models.EventAttendee, checkedIn bool) error {
	attendee.CheckedIn = checkedIn
	if checkedIn {
		now := time.Now().Unix()
		attendee.CheckedInAt = &now
	} else {
		attendee.CheckedInAt = nil
	}
	return tx.WithContext(ctx).Save(attendee).Error
}
