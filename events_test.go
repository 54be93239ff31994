package mindlayout

import "testing"

func TestEventBusFiresInRegistrationOrder(t *testing.T) {
	b := newEventBus()
	var order []int
	b.On(EventNodeCreated, func(Event) { order = append(order, 1) })
	b.On(EventNodeCreated, func(Event) { order = append(order, 2) })
	b.On(EventNodeCreated, func(Event) { order = append(order, 3) })

	b.emit(Event{Kind: EventNodeCreated})

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestEventHandleRemoveStopsDelivery(t *testing.T) {
	b := newEventBus()
	fired := 0
	h := b.On(EventNodeDeleted, func(Event) { fired++ })
	b.emit(Event{Kind: EventNodeDeleted})
	h.Remove()
	b.emit(Event{Kind: EventNodeDeleted})
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestEventBusIgnoresOtherKinds(t *testing.T) {
	b := newEventBus()
	fired := false
	b.On(EventNodeCreated, func(Event) { fired = true })
	b.emit(Event{Kind: EventNodeDeleted})
	if fired {
		t.Error("handler for a different kind should not fire")
	}
}
