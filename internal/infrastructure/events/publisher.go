package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"resume-evaluator/internal/domain/event"

	"github.com/streadway/amqp"
)

type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

// Multi fans an event out to every publisher; the first error is returned
// after all have been tried.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt event.Event) error {
	var firstErr error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// AMQP publishes events as JSON to a durable topic exchange using the event
// type as routing key.
type AMQP struct {
	conn     *amqp.Connection
	exchange string
	logger   *log.Logger

	mu sync.Mutex
}

func NewAMQP(url, exchange string, logger *log.Logger) (*AMQP, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("empty amqp url")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &AMQP{conn: conn, exchange: exchange, logger: logger}, nil
}

func (a *AMQP) Publish(_ context.Context, evt event.Event) error {
	if a == nil || a.conn == nil {
		return nil
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ch, err := a.conn.Channel()
	if err != nil {
		if a.logger != nil {
			a.logger.Printf("[Events] amqp channel error type=%s err=%v", evt.Type, err)
		}
		return err
	}
	defer ch.Close()

	return ch.Publish(
		a.exchange,
		evt.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (a *AMQP) Close() error {
	if a == nil || a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
