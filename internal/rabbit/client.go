package rabbit

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Config struct {
	URL        string
	Exchange   string
	Queue      string
	RoutingKey string
}

// Client owns one connection and one channel bound to a durable topic
// exchange and queue.
type Client struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	queue      string
	routingKey string
	log        *zerolog.Logger
}

func NewRabbit(cfg Config, log *zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to RabbitMQ")
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Error().Err(err).Msg("failed to open RabbitMQ channel")
		return nil, err
	}

	client := &Client{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		queue:      cfg.Queue,
		routingKey: cfg.RoutingKey,
		log:        log,
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		client.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	if _, err := ch.QueueDeclare(
		cfg.Queue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		client.Close()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.Queue, err)
	}

	if err := ch.QueueBind(
		cfg.Queue,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	); err != nil {
		client.Close()
		return nil, fmt.Errorf("bind queue %s: %w", cfg.Queue, err)
	}

	log.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.Queue).
		Str("routing_key", cfg.RoutingKey).
		Msg("RabbitMQ initialized")

	return client, nil
}

func (c *Client) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.log.Info().Msg("RabbitMQ connection closed")
}

// Publish sends a persistent JSON message to the exchange under the client's
// routing key.
func (c *Client) Publish(ctx context.Context, message []byte) error {
	err := c.channel.PublishWithContext(
		ctx,
		c.exchange,
		c.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         message,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to publish message to RabbitMQ")
		return err
	}
	c.log.Debug().Str("exchange", c.exchange).Str("routing_key", c.routingKey).Msg("message published")
	return nil
}

// Consume hands every delivery of the bound queue to handler. See settle for
// how results are acknowledged. The loop ends when ctx is done or the channel
// closes.
func (c *Client) Consume(ctx context.Context, handler func([]byte) error) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to start consuming messages")
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				c.settle(d, handler(d.Body))
			}
		}
	}()

	c.log.Info().Str("queue", c.queue).Msg("started consuming")
	return nil
}

// settle acks a handled delivery. A failed delivery is requeued once; a
// failure on redelivery drops it so a broken dependency cannot spin the queue.
func (c *Client) settle(d amqp.Delivery, err error) {
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			c.log.Error().Err(ackErr).Uint64("delivery_tag", d.DeliveryTag).Msg("failed to ack message")
		}
		return
	}

	requeue := !d.Redelivered
	c.log.Warn().Err(err).Bool("requeue", requeue).Uint64("delivery_tag", d.DeliveryTag).Msg("failed to process message")
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		c.log.Error().Err(nackErr).Uint64("delivery_tag", d.DeliveryTag).Msg("failed to nack message")
	}
}
