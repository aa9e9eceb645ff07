package assets

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Loader interface {
	Load(path string) (interface{}, error) // `interface{}` here allows loaders to return various asset types
	Unload(asset interface{}) error
}

// SceneLoader decodes TOML scene files on top of DefaultScene.
type SceneLoader struct{}

func (sl *SceneLoader) Load(path string) (interface{}, error) {
	return LoadSceneFile(path)
}

func (sl *SceneLoader) Unload(asset interface{}) error {
	return nil
}

// LoadSceneFile reads and validates a scene. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scene %s: %w", path, ErrAssetNotFound)
		}
		return nil, err
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return scene, nil
}

func ParseScene(data []byte) (*Scene, error) {
	scene := DefaultScene()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(scene); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d column %d: %s: %w", row, col, derr.Error(), ErrInvalidScene)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}
