package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherInvokesHandlersInOrder(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventSLABreached, func(_ context.Context, _ Event) error {
		calls = append(calls, "other")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v, want [first second]", calls)
	}
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	errFirst := errors.New("smtp down")
	var secondRan bool
	d.Subscribe(EventSLABreached, func(_ context.Context, _ Event) error {
		return errFirst
	})
	d.Subscribe(EventSLABreached, func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSLABreached})
	if !errors.Is(err, errFirst) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
	if !secondRan {
		t.Fatal("a failing handler must not abort the rest")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventInquiryReceived}); err != nil {
		t.Fatalf("Publish with no subscribers: %v", err)
	}
}
