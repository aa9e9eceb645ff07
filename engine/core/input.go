package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

type KeyAction uint8

const (
	KEY_ACTION_RELEASE KeyAction = iota
	KEY_ACTION_PRESS
	KEY_ACTION_REPEAT
)

func (a KeyAction) String() string {
	switch a {
	case KEY_ACTION_PRESS:
		return "press"
	case KEY_ACTION_REPEAT:
		return "repeat"
	default:
		return "release"
	}
}

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0xFF
)

var keyNames = map[string]KeyCode{
	"backspace": KEY_BACKSPACE,
	"tab":       KEY_TAB,
	"enter":     KEY_ENTER,
	"escape":    KEY_ESCAPE,
	"space":     KEY_SPACE,
	"left":      KEY_LEFT,
	"up":        KEY_UP,
	"right":     KEY_RIGHT,
	"down":      KEY_DOWN,
}

// KeyCodeFromName resolves names used in input scripts: single letters
// ("w", "W") and the named keys above.
func KeyCodeFromName(name string) (KeyCode, bool) {
	if len(name) == 1 {
		c := name[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			return KeyCode(c), true
		}
	}
	k, ok := keyNames[name]
	return k, ok
}

type MouseState struct {
	X       float32
	Y       float32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

type KeyboardState struct {
	Keys [256]bool
}

// Input state structure that holds current and previous states for keyboard and mouse
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

var inputMutex sync.Mutex
var inputInitialized bool = false
var inputState *InputState = nil

func InputInitialize() error {
	inputMutex.Lock()
	defer inputMutex.Unlock()
	inputState = &InputState{}
	inputInitialized = true
	LogInfo("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputMutex.Lock()
	defer inputMutex.Unlock()
	inputInitialized = false
	inputState = nil
	return nil
}

// InputUpdate copies current states to previous states. Call it last in a frame.
func InputUpdate(deltaTime float64) error {
	if !inputInitialized {
		return ErrInputNotInitialized
	}
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	inputState.MousePrevious = inputState.MouseCurrent
	return nil
}

// keyboard input
func InputIsKeyDown(key KeyCode) bool {
	if !inputInitialized {
		return false
	}
	return inputState.KeyboardCurrent.Keys[key]
}

func InputIsKeyUp(key KeyCode) bool {
	if !inputInitialized {
		return false
	}
	return !inputState.KeyboardCurrent.Keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	if !inputInitialized {
		return false
	}
	return inputState.KeyboardPrevious.Keys[key]
}

func InputWasKeyUp(key KeyCode) bool {
	if !inputInitialized {
		return false
	}
	return !inputState.KeyboardPrevious.Keys[key]
}

// InputProcessKey records the key state and fires the matching key event.
// Repeats always fire; press/release only fire when the state changed.
func InputProcessKey(key KeyCode, action KeyAction) error {
	if !inputInitialized {
		return ErrInputNotInitialized
	}
	pressed := action != KEY_ACTION_RELEASE
	if action != KEY_ACTION_REPEAT && inputState.KeyboardCurrent.Keys[key] == pressed {
		return nil
	}
	inputState.KeyboardCurrent.Keys[key] = pressed

	var code EventCode
	switch action {
	case KEY_ACTION_PRESS:
		code = EVENT_CODE_KEY_PRESSED
	case KEY_ACTION_REPEAT:
		code = EVENT_CODE_KEY_REPEATED
	default:
		code = EVENT_CODE_KEY_RELEASED
	}

	// Fire off an event for immediate processing.
	EventFire(EventContext{
		Type: code,
		Data: &KeyEvent{
			KeyCode: key,
			Action:  action,
		},
	})
	return nil
}

// mouse input
func InputIsButtonDown(button Button) bool {
	if !inputInitialized {
		return false
	}
	return inputState.MouseCurrent.Buttons[button]
}

func InputIsButtonUp(button Button) bool {
	if !inputInitialized {
		return false
	}
	return !inputState.MouseCurrent.Buttons[button]
}

func InputGetMousePosition() (float32, float32) {
	if !inputInitialized {
		return 0, 0
	}
	return inputState.MouseCurrent.X, inputState.MouseCurrent.Y
}

func InputProcessButton(button Button, pressed bool) error {
	if !inputInitialized {
		return ErrInputNotInitialized
	}
	if inputState.MouseCurrent.Buttons[button] != pressed {
		inputState.MouseCurrent.Buttons[button] = pressed

		var code EventCode
		if pressed {
			code = EVENT_CODE_BUTTON_PRESSED
		} else {
			code = EVENT_CODE_BUTTON_RELEASED
		}
		EventFire(EventContext{
			Type: code,
			Data: &MouseEvent{
				Button: button,
			},
		})
	}
	return nil
}

func InputProcessMouseMove(x, y float32) error {
	if !inputInitialized {
		return ErrInputNotInitialized
	}
	// Only process if actually different
	if inputState.MouseCurrent.X != x || inputState.MouseCurrent.Y != y {
		inputState.MouseCurrent.X = x
		inputState.MouseCurrent.Y = y

		EventFire(EventContext{
			Type: EVENT_CODE_MOUSE_MOVED,
			Data: &MouseEvent{
				PosX: x,
				PosY: y,
			},
		})
	}
	return nil
}

func InputProcessMouseWheel(zDelta int8) error {
	if !inputInitialized {
		return ErrInputNotInitialized
	}
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{
			Scroll: zDelta,
		},
	})
	return nil
}
