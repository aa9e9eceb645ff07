package engine

import (
	"github.com/spaghettifunk/isocubes/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// AssetsDir is watched for scene changes. Empty disables hot reload.
	AssetsDir string
	// ScenePath is the scene the game was built from; only its changes are reloaded.
	ScenePath string
	// RecenterCursor moves the cursor back to the window center after every frame.
	RecenterCursor bool
	CullBackFaces  bool
}
