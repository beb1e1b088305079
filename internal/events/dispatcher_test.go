package events

import (
	"context"
	"testing"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type chanPublisher struct {
	ch chan Event
}

func (p *chanPublisher) Publish(ctx context.Context, ev Event) error {
	p.ch <- ev
	return nil
}

func TestDispatcherDelivers(t *testing.T) {
	pub := &chanPublisher{ch: make(chan Event, 1)}
	d := NewDispatcher(pub)

	d.Dispatch(Event{Name: "test.event", Channels: []string{"admin:feed"}})

	select {
	case ev := <-pub.ch:
		if ev.Name != "test.event" {
			t.Errorf("delivered %q, want test.event", ev.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestDispatchNeverBlocks(t *testing.T) {
	// no worker and no buffer: every Dispatch hits the full-queue path
	d := &Dispatcher{queue: make(chan Event)}

	done := make(chan struct{})
	go func() {
		d.Dispatch(Event{Name: "dropped.event"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}

func TestAppointmentCreatedEvent(t *testing.T) {
	ap := &models.Appointment{
		ID:          5,
		BookingID:   "b-1",
		CustomerID:  1,
		StylistID:   2,
		PortfolioID: 3,
		Status:      "pending",
		Amount:      100,
		Customer:    models.User{Name: "Dana"},
		Stylist:     models.User{Name: "Maya"},
		Portfolio:   models.Portfolio{Title: "Cut & Style"},
	}

	ev := AppointmentCreated(ap)

	if ev.Name != EventAppointmentCreated {
		t.Errorf("name = %q", ev.Name)
	}

	wantChannels := []string{"appointment:5", "customer:1", "stylist:2", AdminFeedChannel}
	if len(ev.Channels) != len(wantChannels) {
		t.Fatalf("channels = %v, want %v", ev.Channels, wantChannels)
	}
	for i, ch := range wantChannels {
		if ev.Channels[i] != ch {
			t.Errorf("channels[%d] = %q, want %q", i, ev.Channels[i], ch)
		}
	}

	p, ok := ev.Payload.(AppointmentCreatedPayload)
	if !ok {
		t.Fatalf("payload type %T", ev.Payload)
	}
	if p.AppointmentID != 5 || p.BookingID != "b-1" || p.Status != "pending" {
		t.Errorf("payload = %+v", p)
	}
	if p.CustomerName != "Dana" || p.StylistName != "Maya" || p.PortfolioTitle != "Cut & Style" {
		t.Errorf("payload names = %+v", p)
	}
}

func TestAppointmentStatusUpdatedEvent(t *testing.T) {
	ap := &models.Appointment{ID: 5, CustomerID: 1, StylistID: 2, Status: "approved"}

	ev := AppointmentStatusUpdated(ap, "pending")

	p, ok := ev.Payload.(AppointmentStatusUpdatedPayload)
	if !ok {
		t.Fatalf("payload type %T", ev.Payload)
	}
	if p.Status != "approved" || p.PreviousStatus != "pending" {
		t.Errorf("payload = %+v", p)
	}

	for _, ch := range ev.Channels {
		if ch == AdminFeedChannel {
			t.Error("status updates do not fan out to the admin feed")
		}
	}
}

func TestPaymentVerificationRequestedEvent(t *testing.T) {
	ap := &models.Appointment{ID: 5, BookingID: "b-1", CustomerID: 1}
	v := &models.PaymentVerification{AppointmentID: 5, Reference: "pix-1", RequestedAmount: 100}

	ev := PaymentVerificationRequested(ap, v)

	if ev.Name != EventPaymentVerificationRequested {
		t.Errorf("name = %q", ev.Name)
	}
	if len(ev.Channels) == 0 || ev.Channels[0] != AdminPaymentsChannel {
		t.Errorf("channels = %v, want %s first", ev.Channels, AdminPaymentsChannel)
	}

	p, ok := ev.Payload.(PaymentVerificationRequestedPayload)
	if !ok {
		t.Fatalf("payload type %T", ev.Payload)
	}
	if p.PaymentAmount != 100 || p.PaymentReference != "pix-1" || p.BookingID != "b-1" {
		t.Errorf("payload = %+v", p)
	}
}
