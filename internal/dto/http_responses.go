package dto

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"clubconnect/internal/model"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	ClubNotFound      = "CLUB_NOT_FOUND"
	ClubDuplicate     = "CLUB_DUPLICATE"
	EventNotFound     = "EVENT_NOT_FOUND"
	EventDuplicate    = "EVENT_DUPLICATE"
	EventLinkNotFound = "EVENT_LINK_NOT_FOUND"
	AttendeeNotFound  = "ATTENDEE_NOT_FOUND"
)

type CreateClubRequest struct {
	ClubID      *int   `json:"clubId" validate:"required"`
	Name        string `json:"name" validate:"required,nonblank,singleline,max=255"`
	Description string `json:"description" validate:"max=4000"`
	EventIDs    []int  `json:"eventIds"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

func (r CreateClubRequest) Club() model.Club {
	return model.Club{
		ClubID:      *r.ClubID,
		Name:        r.Name,
		Description: r.Description,
		EventIDs:    model.NewSet(r.EventIDs...),
		ImageURL:    r.ImageURL,
	}
}

type CreateEventRequest struct {
	EventID     *int     `json:"eventId" validate:"required"`
	Name        string   `json:"name" validate:"required,nonblank,singleline,max=255"`
	Description string   `json:"description" validate:"max=4000"`
	ClubID      *int     `json:"clubId" validate:"required"`
	Tags        []string `json:"tags" validate:"dive,nonblank,singleline,max=64"`
	AttendeeIDs []int    `json:"attendeeIds"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}

func (r CreateEventRequest) Event() model.Event {
	return model.Event{
		EventID:     *r.EventID,
		Name:        r.Name,
		Description: r.Description,
		ClubID:      *r.ClubID,
		Tags:        model.NewSet(r.Tags...),
		AttendeeIDs: model.NewSet(r.AttendeeIDs...),
		ImageURL:    r.ImageURL,
	}
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func ErrorResponse(c *ginext.Context, status int, code, desc string) {
	c.JSON(status, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func BadResponseError(c *ginext.Context, code, desc string) {
	ErrorResponse(c, http.StatusBadRequest, code, desc)
}

// InternalServerError keeps the triggering message for diagnostics.
func InternalServerError(c *ginext.Context, err error) {
	desc := InternalError
	if err != nil {
		desc = InternalError + " " + err.Error()
	}
	ErrorResponse(c, http.StatusInternalServerError, ServiceUnavailable, desc)
}

func FieldBadFormatError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldBadFormat, "Field '"+fieldName+"' has bad format")
}

func NotFoundError(c *ginext.Context, code, desc string) {
	ErrorResponse(c, http.StatusNotFound, code, desc)
}

func ConflictError(c *ginext.Context, code, desc string) {
	ErrorResponse(c, http.StatusConflict, code, desc)
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Status: "ok",
		Data:   data,
	})
}

func NoContentResponse(c *ginext.Context) {
	c.Status(http.StatusNoContent)
}
