package core

import (
	"errors"
	"testing"
)

func withEventSystem(t *testing.T) {
	t.Helper()
	if !EventSystemInitialize() {
		t.Fatal("event system already initialized")
	}
	t.Cleanup(func() {
		_ = EventSystemShutdown()
	})
}

func TestEventFireStopsAtFirstHandler(t *testing.T) {
	withEventSystem(t)

	var calls []string
	first, second := "first", "second"
	EventRegister(EVENT_CODE_APPLICATION_QUIT, first, func(EventContext) bool {
		calls = append(calls, first)
		return true
	})
	EventRegister(EVENT_CODE_APPLICATION_QUIT, second, func(EventContext) bool {
		calls = append(calls, second)
		return false
	})

	if !EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Fatal("expected event to be handled")
	}
	if len(calls) != 1 || calls[0] != first {
		t.Errorf("calls = %v, want [first]", calls)
	}
}

func TestEventRegisterRejectsDuplicateListener(t *testing.T) {
	withEventSystem(t)

	listener := &struct{}{}
	fn := func(EventContext) bool { return false }
	if !EventRegister(EVENT_CODE_RESIZED, listener, fn) {
		t.Fatal("first registration failed")
	}
	if EventRegister(EVENT_CODE_RESIZED, listener, fn) {
		t.Error("duplicate registration succeeded")
	}
}

func TestEventUnregister(t *testing.T) {
	withEventSystem(t)

	listener := &struct{}{}
	fired := 0
	EventRegister(EVENT_CODE_MOUSE_MOVED, listener, func(EventContext) bool {
		fired++
		return false
	})
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_MOVED})
	if !EventUnregister(EVENT_CODE_MOUSE_MOVED, listener) {
		t.Fatal("unregister failed")
	}
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_MOVED})
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if EventUnregister(EVENT_CODE_MOUSE_MOVED, listener) {
		t.Error("second unregister succeeded")
	}
}

func TestEventsBeforeInitialize(t *testing.T) {
	if EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Error("fire succeeded before initialize")
	}
	if EventRegister(EVENT_CODE_APPLICATION_QUIT, nil, func(EventContext) bool { return true }) {
		t.Error("register succeeded before initialize")
	}
	if err := EventSystemShutdown(); !errors.Is(err, ErrEventSystemNotInitialized) {
		t.Errorf("shutdown err = %v, want ErrEventSystemNotInitialized", err)
	}
}
