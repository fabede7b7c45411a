package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clubconnect/internal/metrics"
	"clubconnect/internal/model"
	"clubconnect/internal/repo"
)

type clubIndex interface {
	AddEventID(ctx context.Context, clubID, eventID int) (bool, error)
	RemoveEventID(ctx context.Context, clubID, eventID int) (bool, error)
}

type EventService struct {
	repo  repo.Repository
	clubs clubIndex
	log   *zerolog.Logger
}

// CreateEvent persists e and registers its id with the owning club.
//
// It fails with repo.ErrConflict when the event id is taken and with
// repo.ErrNotFound when e.ClubID names no club; in both cases nothing is
// written. Once the event is saved the call succeeds even if the club index
// update does not.
func (s *EventService) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	_, exists, err := s.repo.FindEvent(ctx, e.EventID)
	if err != nil {
		return model.Event{}, err
	}
	if exists {
		return model.Event{}, fmt.Errorf("event %d: %w", e.EventID, repo.ErrConflict)
	}

	_, clubExists, err := s.repo.FindClub(ctx, e.ClubID)
	if err != nil {
		return model.Event{}, err
	}
	if !clubExists {
		return model.Event{}, fmt.Errorf("club %d: %w", e.ClubID, repo.ErrNotFound)
	}

	if err := s.repo.SaveEvent(ctx, e); err != nil {
		return model.Event{}, err
	}

	ok, err := s.clubs.AddEventID(ctx, e.ClubID, e.EventID)
	switch {
	case err != nil:
		s.consistencyGap("create", e.EventID, e.ClubID, err)
	case !ok:
		s.consistencyGap("create", e.EventID, e.ClubID, fmt.Errorf("club %d: %w", e.ClubID, repo.ErrNotFound))
	}

	s.log.Info().Int("event_id", e.EventID).Int("club_id", e.ClubID).Msg("event created")
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID int) (model.Event, error) {
	e, ok, err := s.repo.FindEvent(ctx, eventID)
	if err != nil {
		return model.Event{}, err
	}
	if !ok {
		return model.Event{}, fmt.Errorf("event %d: %w", eventID, repo.ErrNotFound)
	}
	return e, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.repo.FindAllEvents(ctx)
}

// ListEventsByTag scans every event and keeps those tagged with tag.
func (s *EventService) ListEventsByTag(ctx context.Context, tag string) ([]model.Event, error) {
	events, err := s.repo.FindAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out, nil
}

// AddAttendee reports false when the event does not exist.
func (s *EventService) AddAttendee(ctx context.Context, eventID, attendeeID int) (bool, error) {
	e, ok, err := s.repo.FindEvent(ctx, eventID)
	if err != nil || !ok {
		return false, err
	}

	var added bool
	e.AttendeeIDs, added = e.AttendeeIDs.With(attendeeID)
	if !added {
		return true, nil
	}
	if err := s.repo.SaveEvent(ctx, e); err != nil {
		return false, err
	}
	s.log.Debug().Int("event_id", eventID).Int("attendee_id", attendeeID).Msg("attendee added")
	return true, nil
}

// RemoveAttendee reports false when the event does not exist or the attendee
// is not registered.
func (s *EventService) RemoveAttendee(ctx context.Context, eventID, attendeeID int) (bool, error) {
	e, ok, err := s.repo.FindEvent(ctx, eventID)
	if err != nil || !ok {
		return false, err
	}

	var removed bool
	e.AttendeeIDs, removed = e.AttendeeIDs.Without(attendeeID)
	if !removed {
		return false, nil
	}
	if err := s.repo.SaveEvent(ctx, e); err != nil {
		return false, err
	}
	s.log.Debug().Int("event_id", eventID).Int("attendee_id", attendeeID).Msg("attendee removed")
	return true, nil
}

// DeleteEvent removes the event and then drops its id from the owning club.
// A missing event is reported as false with no error so that cascades can
// call it blindly. A missing club, or a club that no longer lists the event,
// is not an error either.
func (s *EventService) DeleteEvent(ctx context.Context, eventID int) (bool, error) {
	e, ok, err := s.repo.FindEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return false, err
	}

	removed, err := s.clubs.RemoveEventID(ctx, e.ClubID, eventID)
	switch {
	case err != nil:
		s.consistencyGap("delete", eventID, e.ClubID, err)
	case !removed:
		s.log.Debug().Int("event_id", eventID).Int("club_id", e.ClubID).Msg("club missing or not listing event; index left as is")
	}

	s.log.Info().Int("event_id", eventID).Int("club_id", e.ClubID).Msg("event deleted")
	return true, nil
}

func (s *EventService) consistencyGap(kind string, eventID, clubID int, err error) {
	metrics.ConsistencyGaps.WithLabelValues(kind).Inc()
	s.log.Warn().Err(err).
		Str("kind", kind).
		Int("event_id", eventID).
		Int("club_id", clubID).
		Msg("club event index not updated")
}
