package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("game-1")
	other := b.Subscribe("game-2")

	b.Publish("game-1", Event{Type: "challenge_attempted", Score: 7, Outcome: "win"})

	select {
	case data := <-ch:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if ev.Type != "challenge_attempted" || ev.Score != 7 || ev.Outcome != "win" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	select {
	case <-other:
		t.Fatal("event leaked to another challenge's subscriber")
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("game-1")
	b.Unsubscribe("game-1", ch)

	b.Publish("game-1", Event{Type: "challenge_attempted"})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel still receives events")
	default:
	}
}

func TestBrokerDropsWhenSlow(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("game-1")
	// Fill the buffer and then some; Publish must never block.
	for i := 0; i < 2*cap(ch); i++ {
		b.Publish("game-1", Event{Type: "challenge_attempted", Score: i})
	}

	if len(ch) != cap(ch) {
		t.Fatalf("expected a full buffer, got %d/%d", len(ch), cap(ch))
	}
}
