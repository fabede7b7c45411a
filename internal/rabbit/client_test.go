package rabbit

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeAcknowledger struct {
	trace []string
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.trace = append(f.trace, "ack")
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	if requeue {
		f.trace = append(f.trace, "nack requeue")
	} else {
		f.trace = append(f.trace, "nack drop")
	}
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.trace = append(f.trace, "reject")
	return nil
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name        string
		redelivered bool
		err         error
		want        []string
	}{
		{name: "handled", want: []string{"ack"}},
		{name: "handled on redelivery", redelivered: true, want: []string{"ack"}},
		{name: "first failure is requeued", err: errors.New("store down"), want: []string{"nack requeue"}},
		{name: "failure on redelivery is dropped", redelivered: true, err: errors.New("store down"), want: []string{"nack drop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := zerolog.Nop()
			c := &Client{log: &log}
			ack := &fakeAcknowledger{}

			c.settle(amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Redelivered: tt.redelivered}, tt.err)

			assert.Equal(t, tt.want, ack.trace)
		})
	}
}
