package core

import "sync"

// EventContext carries the event code and its payload. Payload types are
// *KeyEvent, *MouseEvent and *SystemEvent depending on the code.
type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
	Action  KeyAction
}

type MouseEvent struct {
	Button Button
	PosX   float32
	PosY   float32
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Keyboard key held long enough for the OS to repeat it. Data: *KeyEvent
	EVENT_CODE_KEY_REPEATED EventCode = 0x04

	// Mouse button pressed. Data: *MouseEvent
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x05

	// Mouse button released. Data: *MouseEvent
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x06

	// Mouse moved. Data: *MouseEvent with PosX/PosY
	EVENT_CODE_MOUSE_MOVED EventCode = 0x07

	// Mouse wheel. Data: *MouseEvent with Scroll
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x08

	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x09

	// A scene file was reloaded from disk. Data: the reloaded scene.
	EVENT_CODE_SCENE_RELOADED EventCode = 0x0A

	// The point the cursor is recentered to changed. It is in the same
	// units as mouse moves, which may differ from the framebuffer size.
	// Data: *MouseEvent with PosX/PosY
	EVENT_CODE_CURSOR_CENTER_CHANGED EventCode = 0x0B

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

var eventMutex sync.Mutex
var isInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if isInitialized {
		return false
	}
	eventState = &eventSystemState{}
	isInitialized = true
	LogInfo("Event subsystem initialized.")
	return true
}

func EventSystemShutdown() error {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if !isInitialized {
		return ErrEventSystemNotInitialized
	}
	// Drop every registration; listeners clean themselves up.
	eventState = nil
	isInitialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 * @param code The event code to listen for.
 * @param listener The listener instance, used as identity for unregistering. Can be nil.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if !isInitialized || onEvent == nil {
		return false
	}
	entry := &eventState.registered[code]
	for _, e := range entry.events {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	entry.events = append(entry.events, &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns false.
 */
func EventUnregister(code EventCode, listener interface{}) bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if !isInitialized {
		return false
	}
	entry := &eventState.registered[code]
	for i, e := range entry.events {
		if e.listener == listener {
			entry.events = append(entry.events[:i], entry.events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * Listeners are invoked synchronously on the caller's goroutine.
 * @returns true if handled, otherwise false.
 */
func EventFire(context EventContext) bool {
	eventMutex.Lock()
	if !isInitialized {
		eventMutex.Unlock()
		return false
	}
	// Snapshot so callbacks may register/unregister without deadlocking.
	events := append([]*registeredEvent(nil), eventState.registered[context.Type].events...)
	eventMutex.Unlock()

	for _, e := range events {
		if e.callback(context) {
			return true
		}
	}
	return false
}
