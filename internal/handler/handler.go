package handler

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"clubconnect/internal/dto"
	"clubconnect/internal/model"
)

type ClubManager interface {
	CreateClub(ctx context.Context, c model.Club) error
	GetClub(ctx context.Context, clubID int) (model.Club, error)
	ListClubs(ctx context.Context) ([]model.Club, error)
	DeleteClub(ctx context.Context, clubID int) error
	AddEventID(ctx context.Context, clubID, eventID int) (bool, error)
	RemoveEventID(ctx context.Context, clubID, eventID int) (bool, error)
	ListEventIDs(ctx context.Context, clubID int) (model.Set[int], error)
}

type EventManager interface {
	CreateEvent(ctx context.Context, e model.Event) (model.Event, error)
	GetEvent(ctx context.Context, eventID int) (model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListEventsByTag(ctx context.Context, tag string) ([]model.Event, error)
	AddAttendee(ctx context.Context, eventID, attendeeID int) (bool, error)
	RemoveAttendee(ctx context.Context, eventID, attendeeID int) (bool, error)
	DeleteEvent(ctx context.Context, eventID int) (bool, error)
}

// pathID parses an integer path parameter and answers 400 otherwise.
func pathID(c *ginext.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		dto.FieldBadFormatError(c, name)
		return 0, false
	}
	return id, true
}

func internalError(c *ginext.Context, log *zerolog.Logger, err error, msg string) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	dto.InternalServerError(c, err)
}
