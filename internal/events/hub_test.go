package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slotbook/internal/domains/reservation/model"
	"slotbook/internal/events"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := events.NewHub()

	first, cancelFirst := hub.Subscribe()
	second, cancelSecond := hub.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	reservation := model.Reservation{
		ID:         "res-1",
		HolderName: "Kim",
		SlotDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartHour:  9,
		EndHour:    11,
	}

	hub.Publish(events.Created(reservation))

	for _, ch := range []<-chan events.ReservationEvent{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, events.TypeCreated, got.Type)
			assert.Equal(t, "res-1", got.ID)
			assert.Equal(t, "Kim", got.HolderName)
			assert.Equal(t, "2024-06-10", got.SlotDate)
			assert.Equal(t, 9, got.StartHour)
			assert.Equal(t, 11, got.EndHour)
		default:
			t.Fatal("expected event on subscriber channel")
		}
	}
}

func TestHub_NoReplayForLateSubscribers(t *testing.T) {
	hub := events.NewHub()

	hub.Publish(events.Deleted("res-1"))

	ch, cancel := hub.Subscribe()
	defer cancel()

	select {
	case got := <-ch:
		t.Fatalf("late subscriber should not receive earlier events, got %v", got)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := events.NewHub()

	ch, cancel := hub.Subscribe()
	assert.Equal(t, 1, hub.SubscriberCount())

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// a second cancel is a no-op
	cancel()
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := events.NewHub()

	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < 100; i++ {
			hub.Publish(events.Deleted("res-1"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestDeletedCarriesOnlyID(t *testing.T) {
	event := events.Deleted("res-9")

	assert.Equal(t, events.TypeDeleted, event.Type)
	assert.Equal(t, "res-9", event.ID)
	assert.Empty(t, event.HolderName)
	assert.Empty(t, event.SlotDate)
	assert.False(t, event.OccurredAt.IsZero())
}
