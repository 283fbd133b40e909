package network

import (
	"testing"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
)

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()

	ch := b.Register("s1")
	if !b.HasSubscriber("s1") || b.SubscriberCount() != 1 {
		t.Fatal("Expected s1 to be registered")
	}

	if !b.SendTo("s1", api.ServerResponse{Type: "UPDATE", Tick: 3}) {
		t.Fatal("Expected message to be delivered")
	}
	if msg := <-ch; msg.Tick != 3 {
		t.Errorf("Expected tick 3, got %d", msg.Tick)
	}

	if b.SendTo("nobody", api.ServerResponse{}) {
		t.Error("Expected no delivery to unknown session")
	}

	// Повторная регистрация закрывает старый канал
	ch2 := b.Register("s1")
	if _, ok := <-ch; ok {
		t.Error("Expected old channel to be closed")
	}

	b.Unregister("s1")
	if _, ok := <-ch2; ok {
		t.Error("Expected channel to be closed after Unregister")
	}
	if b.HasSubscriber("s1") {
		t.Error("Expected s1 to be gone")
	}
}

func TestBroadcaster_FullChannelDrops(t *testing.T) {
	b := NewBroadcaster()
	b.Register("slow")

	delivered := 0
	for i := 0; i < 150; i++ {
		if b.SendTo("slow", api.ServerResponse{Tick: i}) {
			delivered++
		}
	}
	if delivered != 100 {
		t.Errorf("Expected 100 buffered messages, got %d", delivered)
	}
}
