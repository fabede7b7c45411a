// Package notifier announces newly created events on the message exchange.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"clubconnect/internal/metrics"
	"clubconnect/internal/model"
)

// EventNotification is the message published after an event is created.
type EventNotification struct {
	EventID string   `json:"eventId"`
	ClubID  string   `json:"clubId"`
	Tags    []string `json:"tags"`
}

func NewEventNotification(e model.Event) EventNotification {
	tags := e.Tags.Values()
	if tags == nil {
		tags = []string{}
	}
	return EventNotification{
		EventID: strconv.Itoa(e.EventID),
		ClubID:  strconv.Itoa(e.ClubID),
		Tags:    tags,
	}
}

type Publisher interface {
	Publish(ctx context.Context, message []byte) error
}

type Notifier interface {
	EventCreated(ctx context.Context, e model.Event) error
}

type notifier struct {
	pub Publisher
	log *zerolog.Logger
}

func New(pub Publisher, log *zerolog.Logger) Notifier {
	return &notifier{pub: pub, log: log}
}

func (n *notifier) EventCreated(ctx context.Context, e model.Event) error {
	payload, err := json.Marshal(NewEventNotification(e))
	if err != nil {
		metrics.NotificationsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal event notification: %w", err)
	}
	err = n.pub.Publish(ctx, payload)
	metrics.NotificationsPublished.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("publish event notification: %w", err)
	}
	n.log.Info().Int("event_id", e.EventID).Int("club_id", e.ClubID).Msg("event notification published")
	return nil
}

// Noop drops every notification. It stands in when no broker is configured.
type Noop struct {
	Log *zerolog.Logger
}

func (n Noop) EventCreated(_ context.Context, e model.Event) error {
	if n.Log != nil {
		n.Log.Debug().Int("event_id", e.EventID).Msg("notifications disabled; dropping event notification")
	}
	return nil
}
