package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clubconnect/internal/model"
	"clubconnect/internal/repo"
)

type eventDeleter interface {
	DeleteEvent(ctx context.Context, eventID int) (bool, error)
}

type ClubService struct {
	repo   repo.Repository
	events eventDeleter
	log    *zerolog.Logger
}

// CreateClub stores c as given, including any caller-supplied event ids.
// It fails with repo.ErrConflict when the id is taken.
func (s *ClubService) CreateClub(ctx context.Context, c model.Club) error {
	_, exists, err := s.repo.FindClub(ctx, c.ClubID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("club %d: %w", c.ClubID, repo.ErrConflict)
	}
	if err := s.repo.SaveClub(ctx, c); err != nil {
		return err
	}
	s.log.Info().Int("club_id", c.ClubID).Msg("club created")
	return nil
}

func (s *ClubService) GetClub(ctx context.Context, clubID int) (model.Club, error) {
	c, ok, err := s.repo.FindClub(ctx, clubID)
	if err != nil {
		return model.Club{}, err
	}
	if !ok {
		return model.Club{}, fmt.Errorf("club %d: %w", clubID, repo.ErrNotFound)
	}
	return c, nil
}

func (s *ClubService) ListClubs(ctx context.Context) ([]model.Club, error) {
	return s.repo.FindAllClubs(ctx)
}

// DeleteClub deletes every event the club lists and then the club itself.
// Events go first: a crash midway leaves a club with a shorter event-id set,
// never events pointing at a missing club.
func (s *ClubService) DeleteClub(ctx context.Context, clubID int) error {
	c, err := s.GetClub(ctx, clubID)
	if err != nil {
		return err
	}

	for _, eventID := range c.EventIDs {
		if _, err := s.events.DeleteEvent(ctx, eventID); err != nil {
			return fmt.Errorf("cascade delete of event %d for club %d: %w", eventID, clubID, err)
		}
	}

	if err := s.repo.DeleteClub(ctx, clubID); err != nil {
		return err
	}
	s.log.Info().Int("club_id", clubID).Int("events", c.EventIDs.Len()).Msg("club deleted")
	return nil
}

// AddEventID inserts eventID into the club's event-id set. It reports false
// when the club does not exist. Adding an id that is already present succeeds
// without a write.
func (s *ClubService) AddEventID(ctx context.Context, clubID, eventID int) (bool, error) {
	c, ok, err := s.repo.FindClub(ctx, clubID)
	if err != nil || !ok {
		return false, err
	}

	var added bool
	c.EventIDs, added = c.EventIDs.With(eventID)
	if !added {
		return true, nil
	}
	if err := s.repo.SaveClub(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveEventID reports false when the club does not exist or does not list eventID.
func (s *ClubService) RemoveEventID(ctx context.Context, clubID, eventID int) (bool, error) {
	c, ok, err := s.repo.FindClub(ctx, clubID)
	if err != nil || !ok {
		return false, err
	}

	var removed bool
	c.EventIDs, removed = c.EventIDs.Without(eventID)
	if !removed {
		return false, nil
	}
	if err := s.repo.SaveClub(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ClubService) ListEventIDs(ctx context.Context, clubID int) (model.Set[int], error) {
	c, err := s.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return c.EventIDs, nil
}
