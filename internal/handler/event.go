package handler

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"clubconnect/internal/dto"
	"clubconnect/internal/notifier"
	"clubconnect/internal/repo"
	"clubconnect/pkg/validator"
)

type EventHandler struct {
	events   EventManager
	notifier notifier.Notifier
	log      *zerolog.Logger
}

func NewEventHandler(events EventManager, n notifier.Notifier, log *zerolog.Logger) *EventHandler {
	return &EventHandler{events: events, notifier: n, log: log}
}

// CreateEvent stores the event and then announces it. A failed announcement
// is logged only; the event stays created.
func (h *EventHandler) CreateEvent(c *ginext.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error().Err(err).Msg("failed to parse create event request")
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c.Request.Context(), req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, verr.Error())
		return
	}

	ctx := c.Request.Context()
	event, err := h.events.CreateEvent(ctx, req.Event())
	switch {
	case errors.Is(err, repo.ErrConflict):
		dto.ConflictError(c, dto.EventDuplicate, "Event with the same ID already exists.")
		return
	case errors.Is(err, repo.ErrNotFound):
		dto.NotFoundError(c, dto.ClubNotFound, fmt.Sprintf("Club with ID %d does not exist.", *req.ClubID))
		return
	case err != nil:
		internalError(c, h.log, err, "failed to create event")
		return
	}

	if err := h.notifier.EventCreated(ctx, event); err != nil {
		h.log.Warn().Err(err).Int("event_id", event.EventID).Msg("failed to publish event notification")
	}

	dto.SuccessCreatedResponse(c, "Event created successfully and Club updated.")
}

func (h *EventHandler) GetEvent(c *ginext.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), eventID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		dto.NotFoundError(c, dto.EventNotFound, "Event not found.")
	case err != nil:
		internalError(c, h.log, err, "failed to get event")
	default:
		dto.SuccessResponse(c, event)
	}
}

func (h *EventHandler) ListEvents(c *ginext.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err, "failed to list events")
		return
	}
	dto.SuccessResponse(c, events)
}

func (h *EventHandler) ListEventsByTag(c *ginext.Context) {
	tag := c.Param("tag")
	events, err := h.events.ListEventsByTag(c.Request.Context(), tag)
	if err != nil {
		internalError(c, h.log, err, "failed to list events by tag")
		return
	}
	dto.SuccessResponse(c, events)
}

func (h *EventHandler) AddAttendee(c *ginext.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}
	attendeeID, ok := pathID(c, "attendeeId")
	if !ok {
		return
	}

	added, err := h.events.AddAttendee(c.Request.Context(), eventID, attendeeID)
	switch {
	case err != nil:
		internalError(c, h.log, err, "failed to add attendee")
	case !added:
		dto.NotFoundError(c, dto.EventNotFound, "Event not found or attendee could not be added.")
	default:
		dto.SuccessResponse(c, "Attendee added successfully.")
	}
}

func (h *EventHandler) RemoveAttendee(c *ginext.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}
	attendeeID, ok := pathID(c, "attendeeId")
	if !ok {
		return
	}

	removed, err := h.events.RemoveAttendee(c.Request.Context(), eventID, attendeeID)
	switch {
	case err != nil:
		internalError(c, h.log, err, "failed to remove attendee")
	case !removed:
		dto.NotFoundError(c, dto.AttendeeNotFound, "Event not found or attendee could not be removed.")
	default:
		dto.SuccessResponse(c, "Attendee removed successfully.")
	}
}

func (h *EventHandler) DeleteEvent(c *ginext.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	deleted, err := h.events.DeleteEvent(c.Request.Context(), eventID)
	switch {
	case err != nil:
		internalError(c, h.log, err, "failed to delete event")
	case !deleted:
		dto.NotFoundError(c, dto.EventNotFound, fmt.Sprintf("Event with ID %d does not exist.", eventID))
	default:
		dto.SuccessResponse(c, "Event deleted successfully and removed from the associated club.")
	}
}
