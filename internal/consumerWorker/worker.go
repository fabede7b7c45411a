package consumerWorker

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"clubconnect/internal/model"
	"clubconnect/internal/notifier"
	"clubconnect/internal/repo"
)

type Consumer interface {
	Consume(ctx context.Context, handler func([]byte) error) error
}

type EventGetter interface {
	GetEvent(ctx context.Context, eventID int) (model.Event, error)
}

type ClubGetter interface {
	GetClub(ctx context.Context, clubID int) (model.Club, error)
}

type Announcer interface {
	SendEventAnnouncement(club model.Club, event model.Event, recipients []string) error
}

// Reader relays event notifications from the queue to club mailing lists.
type Reader struct {
	rmq        Consumer
	events     EventGetter
	clubs      ClubGetter
	mail       Announcer
	recipients []string
	log        *zerolog.Logger
	done       chan struct{}
	cancel     context.CancelFunc
}

func NewReader(rmq Consumer, events EventGetter, clubs ClubGetter, mail Announcer, recipients []string, log *zerolog.Logger) *Reader {
	return &Reader{
		rmq:        rmq,
		events:     events,
		clubs:      clubs,
		mail:       mail,
		recipients: recipients,
		log:        log,
		done:       make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.log.Info().Msg("notification relay started")

	go func() {
		defer close(r.done)

		if err := r.rmq.Consume(cctx, func(body []byte) error {
			return r.handle(cctx, body)
		}); err != nil {
			r.log.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		r.log.Info().Msg("notification relay stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

// handle returns an error only for failures worth a redelivery. Malformed
// messages and events deleted in the meantime are dropped.
func (r *Reader) handle(ctx context.Context, body []byte) error {
	var msg notifier.EventNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		r.log.Error().Err(err).Str("body", string(body)).Msg("failed to unmarshal notification")
		return nil
	}
	eventID, err := strconv.Atoi(msg.EventID)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", msg.EventID).Msg("notification carries a non numeric event id")
		return nil
	}

	r.log.Info().Int("event_id", eventID).Str("club_id", msg.ClubID).Msg("received event notification")

	event, err := r.events.GetEvent(ctx, eventID)
	if errors.Is(err, repo.ErrNotFound) {
		r.log.Info().Int("event_id", eventID).Msg("event already gone; skipping announcement")
		return nil
	}
	if err != nil {
		return err
	}

	club, err := r.clubs.GetClub(ctx, event.ClubID)
	if errors.Is(err, repo.ErrNotFound) {
		r.log.Info().Int("club_id", event.ClubID).Msg("club already gone; skipping announcement")
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.mail.SendEventAnnouncement(club, event, r.recipients); err != nil {
		r.log.Warn().Err(err).Int("event_id", eventID).Msg("failed to send event announcement")
	}
	return nil
}
