package core

import (
	"errors"
)

var (
	ErrEventSystemNotInitialized = errors.New("event system not initialized")
	ErrInputNotInitialized       = errors.New("input system not initialized")
)
