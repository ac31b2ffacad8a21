package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
	"gathr/internal/models/request_models"
	"gathr/internal/models/response_models"
	"gathr/internal/repositories"
	"gathr/pkg/utils"
)

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, hostID uuid.UUID, req *request_models.CreateEventRequest) (*response_models.EventResponse, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*response_models.EventResponse, error)
	ListEvents(ctx context.Context, page int, pageSize int) ([]response_models.EventResponse, error)
	RSVP(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, guestName string) (*response_models.AttendeeResponse, error)
	CheckInAttendee(ctx context.Context, hostID uuid.UUID, attendeeID uuid.UUID) error
}

type eventService struct {
	db        *gorm.DB
	events    repositories.EventRepositoryInterface
	attendees repositories.AttendeeRepositoryInterface
}

func NewEventService(
	db *gorm.DB,
	events repositories.EventRepositoryInterface,
	attendees repositories.AttendeeRepositoryInterface,
) EventServiceInterface {
	return &eventService{db: db, events: events, attendees: attendees}
}

func (s *eventService) CreateEvent(ctx context.Context, hostID uuid.UUID, req *request_models.CreateEventRequest) (*response_models.EventResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	event := &db_models.Event{
		HostID:           hostID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		Capacity:         req.Capacity,
		TicketPriceMinor: req.TicketPriceMinor,
		Currency:         currency,
		IsPublished:      true,
	}
	if err := s.events.Insert(ctx, s.db, event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*response_models.EventResponse, error) {
	event, err := s.events.FindByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}
	return toEventResponse(event), nil
}

func (s *eventService) ListEvents(ctx context.Context, page int, pageSize int) ([]response_models.EventResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	events, err := s.events.List(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *toEventResponse(&events[i]))
	}
	return out, nil
}

// RSVP registers a single attendee for a free event. Paid events go
// through the payment flow, which creates attendee rows tied (sooner or
// later) to a ledger transaction.
func (s *eventService) RSVP(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, guestName string) (*response_models.AttendeeResponse, error) {
	event, err := s.events.FindByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}
	if event.TicketPriceMinor > 0 {
		return nil, utils.ErrForbidden
	}

	attendee := &db_models.EventAttendee{
		EventID:   eventID,
		UserID:    userID,
		GuestName: guestName,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if event.Capacity > 0 {
			var count int64
			if err := tx.WithContext(ctx).
				Model(&db_models.EventAttendee{}).
				Where("event_id = ?", eventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(event.Capacity) {
				return utils.ErrEventFull
			}
		}
		return s.attendees.InsertBulk(ctx, tx, []*db_models.EventAttendee{attendee})
	})
	if err != nil {
		return nil, err
	}

	return toAttendeeResponse(attendee), nil
}

func (s *eventService) CheckInAttendee(ctx context.Context, hostID uuid.UUID, attendeeID uuid.UUID) error {
	attendee, err := s.attendees.FindByID(ctx, s.db, attendeeID)
	if err != nil {
		return err
	}
	if attendee == nil {
		return utils.ErrAttendeeNotFound
	}

	event, err := s.events.FindByID(ctx, s.db, attendee.EventID)
	if err != nil {
		return err
	}
	if event == nil {
		return utils.ErrEventNotFound
	}
	if event.HostID != hostID {
		return utils.ErrForbidden
	}

	// Check-in state is independent of payment state: a refunded ticket
	// holder still checks in if the host lets them through the door.
	return s.attendees.SetCheckedIn(ctx, s.db, attendee, true)
}

func toEventResponse(e *db_models.Event) *response_models.EventResponse {
	return &response_models.EventResponse{
		ID:               e.ID.String(),
		HostID:           e.HostID.String(),
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		Capacity:         e.Capacity,
		TicketPriceMinor: e.TicketPriceMinor,
		Currency:         e.Currency,
	}
}

func toAttendeeResponse(a *db_models.EventAttendee) *response_models.AttendeeResponse {
	resp := &response_models.AttendeeResponse{
		ID:        a.ID.String(),
		EventID:   a.EventID.String(),
		UserID:    a.UserID.String(),
		GuestName: a.GuestName,
		CheckedIn: a.CheckedIn,
	}
	if a.TransactionID != nil {
		id := a.TransactionID.String()
		resp.TransactionID = &id
	}
	return resp
}
