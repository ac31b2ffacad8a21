package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
	"gathr/internal/models/request_models"
	"gathr/internal/repositories"
	"gathr/pkg/utils"
)

func newEventHarness(t *testing.T) (*gorm.DB, EventServiceInterface) {
	t.Helper()
	db := newTestDB(t)
	svc := NewEventService(db, repositories.NewEventRepository(), repositories.NewAttendeeRepository())
	return db, svc
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestCreateAndGetEvent(t *testing.T) {
	db, svc := newEventHarness(t)
	host := seedUser(t, db, "host")

	created, err := svc.CreateEvent(context.Background(), host.ID, &request_models.CreateEventRequest{
		Title:            "Launch Party",
		StartsAt:         1700000000,
		TicketPriceMinor: 2500,
		Currency:         "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, host.ID.String(), created.HostID)

	fetched, err := svc.GetEvent(context.Background(), mustUUID(t, created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Launch Party", fetched.Title)
	assert.EqualValues(t, 2500, fetched.TicketPriceMinor)
}

func TestRSVPOnlyForFreeEvents(t *testing.T) {
	db, svc := newEventHarness(t)
	host := seedUser(t, db, "host")
	guest := seedUser(t, db, "guest")

	paid := seedEvent(t, db, host.ID, 2500)
	_, err := svc.RSVP(context.Background(), guest.ID, paid.ID, "Ada")
	assert.ErrorIs(t, err, utils.ErrForbidden, "paid events go through checkout")

	free := seedEvent(t, db, host.ID, 0)
	resp, err := svc.RSVP(context.Background(), guest.ID, free.ID, "Ada")
	require.NoError(t, err)
	assert.Nil(t, resp.TransactionID, "free RSVPs carry no transaction")
}

func TestRSVPRespectsCapacity(t *testing.T) {
	db, svc := newEventHarness(t)
	host := seedUser(t, db, "host")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")

	event := &db_models.Event{
		HostID: host.ID, Title: "Tiny Meetup", Capacity: 1,
		Currency: "usd", IsPublished: true,
	}
	require.NoError(t, db.Create(event).Error)

	_, err := svc.RSVP(context.Background(), first.ID, event.ID, "")
	require.NoError(t, err)

	_, err = svc.RSVP(context.Background(), second.ID, event.ID, "")
	assert.ErrorIs(t, err, utils.ErrEventFull)
}

func TestCheckInOnlyByHost(t *testing.T) {
	db, svc := newEventHarness(t)
	host := seedUser(t, db, "host")
	guest := seedUser(t, db, "guest")
	event := seedEvent(t, db, host.ID, 0)

	attendee := &db_models.EventAttendee{EventID: event.ID, UserID: guest.ID}
	require.NoError(t, db.Create(attendee).Error)

	err := svc.CheckInAttendee(context.Background(), guest.ID, attendee.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, svc.CheckInAttendee(context.Background(), host.ID, attendee.ID))

	var refreshed db_models.EventAttendee
	require.NoError(t, db.First(&refreshed, "id = ?", attendee.ID).Error)
	assert.True(t, refreshed.CheckedIn)
	assert.NotNil(t, refreshed.CheckedInAt)
}
