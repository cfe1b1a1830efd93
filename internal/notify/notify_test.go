package notify

import "testing"

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("Plant A")
	defer cancel()

	hub.Publish(Event{Topic: "production_updated", FactoryID: "Plant A"})

	select {
	case ev := <-ch:
		if ev.Topic != "production_updated" {
			t.Fatalf("topic = %q, want production_updated", ev.Topic)
		}
	default:
		t.Fatal("expected event in channel")
	}
}

func TestHub_EventsAreFactoryScoped(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("Plant A")
	defer cancel()

	hub.Publish(Event{Topic: "alert_created", FactoryID: "Plant B"})

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event for other factory: %+v", ev)
	default:
	}
}

func TestHub_CancelRemovesSubscription(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("Plant A")
	cancel()

	hub.Publish(Event{Topic: "inventory_updated", FactoryID: "Plant A"})

	select {
	case ev := <-ch:
		t.Fatalf("received event after cancel: %+v", ev)
	default:
	}
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe("Plant A")
	defer cancel()

	// Overfill the subscriber buffer; extra events must be dropped,
	// not block the publisher.
	for i := 0; i < 100; i++ {
		hub.Publish(Event{Topic: "workforce_updated", FactoryID: "Plant A"})
	}
}
