package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fintrack/fintrack-backend/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	publishTimeout = 5 * time.Second
	// queueSize bounds the events waiting for the broker; beyond it new
	// events are dropped
	queueSize = 256
)

// channel is the subset of *amqp091.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher relays domain events to a durable direct exchange. The routing
// key is the event type, e.g. "transaction.created". Publish only queues the
// event; a single goroutine delivers the queue in order so a slow broker never
// holds up a request.
type Publisher struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
	mu           sync.Mutex

	queue     chan websocket.Event
	drained   chan struct{}
	queueMu   sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// Ensure Publisher implements websocket.EventPublisher
var _ websocket.EventPublisher = (*Publisher)(nil)

// NewPublisher dials url and declares the exchange
func NewPublisher(url, exchangeName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchangeName)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchangeName string) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	p := &Publisher{
		channel:      ch,
		exchangeName: exchangeName,
		queue:        make(chan websocket.Event, queueSize),
		drained:      make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Publish implements websocket.EventPublisher. It never blocks: the event is
// queued for delivery, or dropped with a warning when the queue is full or the
// publisher is closed.
func (p *Publisher) Publish(event websocket.Event) {
	p.queueMu.RLock()
	defer p.queueMu.RUnlock()

	if p.closed {
		log.Warn().Str("event_type", event.Type).Msg("Event relay closed, dropping event")
		return
	}
	select {
	case p.queue <- event:
	default:
		log.Warn().
			Str("event_type", event.Type).
			Str("exchange", p.exchangeName).
			Msg("Event relay queue full, dropping event")
	}
}

func (p *Publisher) run() {
	defer close(p.drained)
	for event := range p.queue {
		if err := p.PublishContext(context.Background(), event); err != nil {
			log.Error().
				Err(err).
				Str("event_type", event.Type).
				Str("exchange", p.exchangeName).
				Msg("Failed to relay event")
		}
	}
}

// PublishContext publishes a single event as a persistent JSON message
func (p *Publisher) PublishContext(ctx context.Context, event websocket.Event) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		event.Type,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Str("event_type", event.Type).
		Str("exchange", p.exchangeName).
		Msg("Relayed event")

	return nil
}

// Close stops accepting events, delivers what is already queued and then
// closes the channel and the connection. Later calls return the first result.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		p.queueMu.Lock()
		p.closed = true
		close(p.queue)
		p.queueMu.Unlock()
		<-p.drained

		if p.channel != nil {
			p.channel.Close()
		}
		if p.conn != nil {
			p.closeErr = p.conn.Close()
		}
	})
	return p.closeErr
}
