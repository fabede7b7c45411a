package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"clubconnect/internal/itemstore"
	"clubconnect/internal/model"
)

const (
	ClubsCollection  = "Clubs"
	EventsCollection = "Events"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	// ErrValidation marks a stored item that is missing a required attribute
	// or carries one of the wrong kind.
	ErrValidation       = itemstore.ErrMalformed
	ErrStoreUnavailable = itemstore.ErrUnavailable
)

type Repository interface {
	SaveClub(ctx context.Context, c model.Club) error
	FindClub(ctx context.Context, clubID int) (model.Club, bool, error)
	DeleteClub(ctx context.Context, clubID int) error
	FindAllClubs(ctx context.Context) ([]model.Club, error)

	SaveEvent(ctx context.Context, e model.Event) error
	FindEvent(ctx context.Context, eventID int) (model.Event, bool, error)
	DeleteEvent(ctx context.Context, eventID int) error
	FindAllEvents(ctx context.Context) ([]model.Event, error)
}

type repository struct {
	store itemstore.Store
	log   *zerolog.Logger
}

func NewRepository(store itemstore.Store, log *zerolog.Logger) (Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	return &repository{store: store, log: log}, nil
}

func (r *repository) SaveClub(ctx context.Context, c model.Club) error {
	if err := r.store.Put(ctx, ClubsCollection, clubKey(c.ClubID), EncodeClub(c)); err != nil {
		return fmt.Errorf("failed to save club %d: %w", c.ClubID, err)
	}
	return nil
}

func (r *repository) FindClub(ctx context.Context, clubID int) (model.Club, bool, error) {
	item, ok, err := r.store.Get(ctx, ClubsCollection, clubKey(clubID))
	if err != nil {
		return model.Club{}, false, fmt.Errorf("failed to get club %d: %w", clubID, err)
	}
	if !ok {
		r.log.Debug().Int("club_id", clubID).Msg("club not found")
		return model.Club{}, false, nil
	}
	c, err := DecodeClub(item)
	if err != nil {
		return model.Club{}, false, fmt.Errorf("failed to decode club %d: %w", clubID, err)
	}
	return c, true, nil
}

func (r *repository) DeleteClub(ctx context.Context, clubID int) error {
	if err := r.store.Delete(ctx, ClubsCollection, clubKey(clubID)); err != nil {
		return fmt.Errorf("failed to delete club %d: %w", clubID, err)
	}
	return nil
}

func (r *repository) FindAllClubs(ctx context.Context) ([]model.Club, error) {
	items, err := r.store.ScanAll(ctx, ClubsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan clubs: %w", err)
	}
	clubs := make([]model.Club, 0, len(items))
	for _, item := range items {
		c, err := DecodeClub(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode club: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, nil
}

func (r *repository) SaveEvent(ctx context.Context, e model.Event) error {
	if err := r.store.Put(ctx, EventsCollection, eventKey(e.EventID), EncodeEvent(e)); err != nil {
		return fmt.Errorf("failed to save event %d: %w", e.EventID, err)
	}
	return nil
}

func (r *repository) FindEvent(ctx context.Context, eventID int) (model.Event, bool, error) {
	item, ok, err := r.store.Get(ctx, EventsCollection, eventKey(eventID))
	if err != nil {
		return model.Event{}, false, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if !ok {
		r.log.Debug().Int("event_id", eventID).Msg("event not found")
		return model.Event{}, false, nil
	}
	e, err := DecodeEvent(item)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("failed to decode event %d: %w", eventID, err)
	}
	return e, true, nil
}

func (r *repository) DeleteEvent(ctx context.Context, eventID int) error {
	if err := r.store.Delete(ctx, EventsCollection, eventKey(eventID)); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	return nil
}

// FindAllEvents de-duplicates by event id; a scan may surface the same key twice
// while the table is being rewritten.
func (r *repository) FindAllEvents(ctx context.Context) ([]model.Event, error) {
	items, err := r.store.ScanAll(ctx, EventsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}
	seen := make(map[int]struct{}, len(items))
	events := make([]model.Event, 0, len(items))
	for _, item := range items {
		e, err := DecodeEvent(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		if _, dup := seen[e.EventID]; dup {
			continue
		}
		seen[e.EventID] = struct{}{}
		events = append(events, e)
	}
	return events, nil
}
