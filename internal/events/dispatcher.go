package events

import (
	"context"
	"log"
)

// Publisher delivers one event to every channel it names. Implementations
// own their retry policy; the dispatcher never retries.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Dispatcher decouples lifecycle transitions from notification delivery.
// Dispatch enqueues before the use case returns, so a success response is
// never sent ahead of its event; the worker drains asynchronously and a
// delivery failure can never roll back a committed transition.
type Dispatcher struct {
	publisher Publisher
	queue     chan Event
}

func NewDispatcher(publisher Publisher) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		queue:     make(chan Event, 256),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.publisher.Publish(context.Background(), ev); err != nil {
			log.Printf("events: publish %s failed: %v", ev.Name, err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue must not block the booking path
		log.Printf("events: queue full, dropping %s", ev.Name)
	}
}
