package db_models

import "github.com/google/uuid"

type Event struct {
	BaseModel
	HostID      uuid.UUID `gorm:"index"`
	Title       string
	Description *string
	Location    string
	StartsAt    int64
	EndsAt      int64
	Capacity    int32

	// Ticket price in minor units. 0 means a free event (RSVP only).
	TicketPriceMinor int64
	Currency         string `gorm:"size:3"`
	IsPublished      bool   `gorm:"default:true"`

	Host      User            `gorm:"foreignKey:HostID"`
	Attendees []EventAttendee `gorm:"foreignKey:EventID"`
}
