package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/webstack-labs/account-service/internal/application/account"
)

const publishTimeout = 5 * time.Second

// Dispatcher hands registration events to the broker without ever blocking
// or failing the request that produced them. A bounded queue drains through
// a single worker; overflow and publish failures are logged and dropped.
type Dispatcher struct {
	pub   account.EventPublisher
	queue chan account.AccountCreatedEvent
	done  chan struct{}
	log   zerolog.Logger

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(pub account.EventPublisher, queueSize int, log zerolog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		pub:   pub,
		queue: make(chan account.AccountCreatedEvent, queueSize),
		done:  make(chan struct{}),
		log:   log,
	}
	go d.drain()
	return d
}

// AccountCreated enqueues the event. If the queue is full, or the dispatcher
// is already closed, the event is dropped on the floor, not the caller.
func (d *Dispatcher) AccountCreated(evt account.AccountCreatedEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.log.Warn().
			Str("account_id", evt.AccountID).
			Msg("dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- evt:
	default:
		d.log.Warn().
			Str("account_id", evt.AccountID).
			Msg("notify queue full, dropping event")
	}
}

// Close stops accepting events and waits for the worker to finish the queue.
// Safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) drain() {
	defer close(d.done)

	for evt := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := d.pub.PublishAccountCreated(ctx, evt)
		cancel()

		if err != nil {
			d.log.Error().Err(err).
				Str("account_id", evt.AccountID).
				Msg("account created event publish failed")
			continue
		}
		d.log.Debug().
			Str("account_id", evt.AccountID).
			Msg("account created event published")
	}
}
