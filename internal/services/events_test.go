package services

import (
	"testing"
	"time"
)

func TestEventHub_New(t *testing.T) {
	hub := NewEventHub()
	if hub == nil {
		t.Fatal("NewEventHub should not return nil")
	}
	if hub.clients == nil {
		t.Error("clients map should be initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have 0 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_Subscribe(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client1")
	if ch == nil {
		t.Error("Subscribe should return a channel")
	}
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Subscribe("client2")
	if hub.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_Unsubscribe(t *testing.T) {
	hub := NewEventHub()

	hub.Subscribe("client1")
	hub.Subscribe("client2")

	hub.Unsubscribe("client1")
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("nonexistent")
	if hub.ClientCount() != 1 {
		t.Errorf("unsubscribing nonexistent should not affect count, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client2")
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_Publish(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client1")

	hub.Publish(Event{Type: "chat", Payload: map[string]string{"content": "hello"}})

	select {
	case received := <-ch:
		if received.Type != "chat" {
			t.Errorf("Type = %q, expected %q", received.Type, "chat")
		}
		payload, ok := received.Payload.(map[string]string)
		if !ok || payload["content"] != "hello" {
			t.Errorf("unexpected payload: %v", received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for event")
	}
}

func TestEventHub_PublishMultipleClients(t *testing.T) {
	hub := NewEventHub()

	ch1 := hub.Subscribe("client1")
	ch2 := hub.Subscribe("client2")

	hub.Publish(Event{Type: "activity"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			if received.Type != "activity" {
				t.Errorf("client%d: Type = %q, expected %q", i+1, received.Type, "activity")
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client%d: timed out waiting for event", i+1)
		}
	}
}

func TestEventHub_NonBlockingPublish(t *testing.T) {
	hub := NewEventHub()

	// A slow client must not block publishers once its buffer fills.
	hub.Subscribe("slow_client")

	for i := 0; i < 200; i++ {
		hub.Publish(Event{Type: "chat", Payload: i})
	}
}

func TestGetEventHub_Singleton(t *testing.T) {
	hub1 := GetEventHub()
	hub2 := GetEventHub()

	if hub1 != hub2 {
		t.Error("GetEventHub should return the same instance")
	}
}
