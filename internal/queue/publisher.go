package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends change events to a fanout exchange so every instance
// of the server can push them to its own dashboards.  The broker
// connection is opened lazily and reopened after a failure.  Publishing
// never fails a request: errors are logged and the event is delivered to
// the local hub instead.
type Publisher struct {
	url      string
	exchange string
	local    *Hub

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher returns a publisher.  With an empty url events only reach
// the local hub.
func NewPublisher(url, exchange string, local *Hub) *Publisher {
	if exchange == "" {
		exchange = "dashboard.changes"
	}
	return &Publisher{url: url, exchange: exchange, local: local}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, err
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := declareExchange(ch, p.exchange); err != nil {
		_ = ch.Close()
		return nil, err
	}
	p.ch = ch
	return ch, nil
}

func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,     // name
		"fanout", // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	)
}

// Publish sends ev.  It returns the broker error, if any, after having
// fallen back to local delivery; callers are free to ignore it.
func (p *Publisher) Publish(ctx context.Context, ev ChangeEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if p.url == "" {
		p.deliverLocal(ev)
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal change event failed: %v", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err == nil {
		err = ch.PublishWithContext(ctx,
			p.exchange, // exchange
			"",         // routing key, ignored by fanout
			false,      // mandatory
			false,      // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    ev.At,
				Body:         body,
			})
	}
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v; delivering locally table=%s record_id=%s", err, ev.Table, ev.RecordID)
		p.ch = nil
		p.deliverLocal(ev)
		return err
	}
	return nil
}

func (p *Publisher) deliverLocal(ev ChangeEvent) {
	if p.local != nil {
		p.local.Deliver(ev)
	}
}

// Close releases the broker connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}
