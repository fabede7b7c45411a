package handler

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"clubconnect/internal/dto"
	"clubconnect/internal/repo"
	"clubconnect/pkg/validator"
)

type ClubHandler struct {
	clubs ClubManager
	log   *zerolog.Logger
}

func NewClubHandler(clubs ClubManager, log *zerolog.Logger) *ClubHandler {
	return &ClubHandler{clubs: clubs, log: log}
}

func (h *ClubHandler) CreateClub(c *ginext.Context) {
	var req dto.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error().Err(err).Msg("failed to parse create club request")
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(c.Request.Context(), req); verr != nil {
		dto.BadResponseError(c, dto.FieldIncorrect, verr.Error())
		return
	}

	err := h.clubs.CreateClub(c.Request.Context(), req.Club())
	switch {
	case errors.Is(err, repo.ErrConflict):
		dto.ConflictError(c, dto.ClubDuplicate, "Club with the same ID already exists.")
	case err != nil:
		internalError(c, h.log, err, "failed to create club")
	default:
		dto.SuccessCreatedResponse(c, "Club created successfully.")
	}
}

func (h *ClubHandler) GetClub(c *ginext.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}

	club, err := h.clubs.GetClub(c.Request.Context(), clubID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		dto.NotFoundError(c, dto.ClubNotFound, "Club not found.")
	case err != nil:
		internalError(c, h.log, err, "failed to get club")
	default:
		dto.SuccessResponse(c, club)
	}
}

func (h *ClubHandler) ListClubs(c *ginext.Context) {
	clubs, err := h.clubs.ListClubs(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err, "failed to list clubs")
		return
	}
	if len(clubs) == 0 {
		dto.NoContentResponse(c)
		return
	}
	dto.SuccessResponse(c, clubs)
}

func (h *ClubHandler) DeleteClub(c *ginext.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}

	err := h.clubs.DeleteClub(c.Request.Context(), clubID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		dto.NotFoundError(c, dto.ClubNotFound, fmt.Sprintf("Club with ID %d does not exist.", clubID))
	case err != nil:
		internalError(c, h.log, err, "failed to delete club")
	default:
		dto.SuccessResponse(c, "Club and all its associated events deleted successfully.")
	}
}

func (h *ClubHandler) AddEvent(c *ginext.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	added, err := h.clubs.AddEventID(c.Request.Context(), clubID, eventID)
	switch {
	case err != nil:
		internalError(c, h.log, err, "failed to add event to club")
	case !added:
		dto.NotFoundError(c, dto.ClubNotFound, "Club not found or event could not be added.")
	default:
		dto.SuccessResponse(c, "Event added to club successfully.")
	}
}

func (h *ClubHandler) RemoveEvent(c *ginext.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	removed, err := h.clubs.RemoveEventID(c.Request.Context(), clubID, eventID)
	switch {
	case err != nil:
		internalError(c, h.log, err, "failed to remove event from club")
	case !removed:
		dto.NotFoundError(c, dto.EventLinkNotFound, "Club not found or event could not be removed.")
	default:
		dto.SuccessResponse(c, "Event removed from club successfully.")
	}
}

func (h *ClubHandler) ListEventIDs(c *ginext.Context) {
	clubID, ok := pathID(c, "clubId")
	if !ok {
		return
	}

	ids, err := h.clubs.ListEventIDs(c.Request.Context(), clubID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		dto.NotFoundError(c, dto.ClubNotFound, "No events found for the specified club.")
	case err != nil:
		internalError(c, h.log, err, "failed to list club events")
	default:
		dto.SuccessResponse(c, ids)
	}
}
