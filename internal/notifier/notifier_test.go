package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubconnect/internal/model"
)

type fakePublisher struct {
	messages [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, message []byte) error {
	f.messages = append(f.messages, message)
	return f.err
}

func TestEventCreatedPublishesContract(t *testing.T) {
	pub := &fakePublisher{}
	log := zerolog.Nop()
	n := New(pub, &log)

	e := model.Event{EventID: 100, ClubID: 1, Name: "Meetup", Tags: model.NewSet("Music", "AI")}
	require.NoError(t, n.EventCreated(context.Background(), e))

	require.Len(t, pub.messages, 1)
	assert.JSONEq(t, `{"eventId":"100","clubId":"1","tags":["AI","Music"]}`, string(pub.messages[0]))
}

func TestEventCreatedWithoutTags(t *testing.T) {
	pub := &fakePublisher{}
	log := zerolog.Nop()
	n := New(pub, &log)

	require.NoError(t, n.EventCreated(context.Background(), model.Event{EventID: 5, ClubID: 2}))
	assert.JSONEq(t, `{"eventId":"5","clubId":"2","tags":[]}`, string(pub.messages[0]))
}

func TestEventCreatedPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	log := zerolog.Nop()
	n := New(pub, &log)

	err := n.EventCreated(context.Background(), model.Event{EventID: 5, ClubID: 2})
	assert.ErrorContains(t, err, "channel closed")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.EventCreated(context.Background(), model.Event{EventID: 1}))
}
