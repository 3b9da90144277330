// Package service publishes activity events to RabbitMQ. Publishing is
// best effort: failures are logged and never surface to the HTTP caller.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/habit-tracker/internal/logger"
	q "github.com/iliyamo/habit-tracker/internal/queue"
)

// Publisher delivers one activity event.
type Publisher interface {
	Publish(ctx context.Context, ev q.ActivityEvent) error
}

// NoopPublisher drops every event. It is used when events are disabled.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, q.ActivityEvent) error { return nil }

// AMQPPublisher publishes to the durable activity queue over one lazily
// opened connection. A failed publish drops the connection so the next
// call redials.
type AMQPPublisher struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher returns a publisher for the broker at url. No
// connection is made until the first event.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// Publish marshals ev and sends it as a persistent message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ActivityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", q.ActivityQueue, false, false, pub); err != nil {
		p.reset()
		return err
	}
	return nil
}

// ensureChannel dials and declares the queue if there is no open channel.
// Callers hold p.mu.
func (p *AMQPPublisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.ActivityQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// Dispatcher hands events to a Publisher on background goroutines so the
// request that produced them is never delayed by the broker.
type Dispatcher struct {
	pub     Publisher
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps pub. A nil pub behaves like NoopPublisher.
func NewDispatcher(pub Publisher) *Dispatcher {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &Dispatcher{pub: pub, timeout: 5 * time.Second}
}

// Emit publishes ev asynchronously and logs any failure.
func (d *Dispatcher) Emit(ev q.ActivityEvent) {
	if d == nil {
		return
	}
	if _, ok := d.pub.(NoopPublisher); ok {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.pub.Publish(ctx, ev); err != nil {
			logger.Warn("publish activity event failed", "type", ev.Type, "habit_id", ev.HabitID, "err", err)
		}
	}()
}

// Wait blocks until every emitted event has been handed off.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}
