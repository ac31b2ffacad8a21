package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gathr/internal/models/request_models"
	"gathr/internal/services"
	"gathr/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
}

func NewEventController(eventService services.EventServiceInterface) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body request_models.CreateEventRequest true "Event payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /events [post]
func (e *EventController) CreateEvent(c *gin.Context) {
	var req request_models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := e.eventService.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Event created successfully")
}

// GetEvent godoc
// @Summary Get an event by id
// @Tags Events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} utils.APIResponse
// @Router /events/{id} [get]
func (e *EventController) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	resp, err := e.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Event retrieved successfully")
}

// ListEvents godoc
// @Summary List published events
// @Tags Events
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /events [get]
func (e *EventController) ListEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	resp, err := e.eventService.ListEvents(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Events retrieved successfully")
}

// RSVP godoc
// @Summary RSVP to a free event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /events/{id}/rsvp [post]
func (e *EventController) RSVP(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.AttendeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := e.eventService.RSVP(c.Request.Context(), userID, eventID, req.GuestName)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "RSVP recorded successfully")
}

// CheckInAttendee godoc
// @Summary Check in an attendee
// @Tags Events
// @Produce json
// @Param attendeeId path string true "Attendee id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /attendees/{attendeeId}/check-in [post]
func (e *EventController) CheckInAttendee(c *gin.Context) {
	attendeeID, err := uuid.Parse(c.Param("attendeeId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid attendee id")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := e.eventService.CheckInAttendee(c.Request.Context(), userID, attendeeID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Attendee checked in successfully")
}
