package notify

import (
	"context"
	"log"
)

// Dispatcher decouples notification delivery from the request path: the
// booking commits first, then the event is queued for a worker
// goroutine. A full queue drops the event rather than blocking the API.
type Dispatcher struct {
	notifier Notifier
	queue    chan BookingCreatedEvent
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan BookingCreatedEvent, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.notifier.TrainerBookingCreated(context.Background(), ev); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev BookingCreatedEvent) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
