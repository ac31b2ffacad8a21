package db_models

import "github.com/google/uuid"

// EventAttendee rows for paid events may exist before the matching
// Transaction does: the checkout request path inserts them while the
// payment_intent webhook is still in flight. TransactionID stays null
// until either side of the race links it.
type EventAttendee struct {
	BaseModel
	EventID       uuid.UUID  `gorm:"index"`
	UserID        uuid.UUID  `gorm:"index"`
	TransactionID *uuid.UUID `gorm:"index"`
	GuestName     string

	CheckedIn   bool `gorm:"default:false"`
	CheckedInAt *int64

	Event       Event        `gorm:"foreignKey:EventID"`
	User        User         `gorm:"foreignKey:UserID"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
}
