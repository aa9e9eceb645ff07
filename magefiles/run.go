//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the engine with the scene named by $SCENE, or the default scene.
func (Run) Engine() error {
	scene := os.Getenv("SCENE")
	if scene == "" {
		scene = defaultScene
	}
	fmt.Printf("Run engine with %s...\n", scene)
	if _, err := executeCmd("go", withArgs("run", ".", "-scene", scene), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders the headless scene and writes its snapshot.
func (Run) Headless() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-scene", "assets/scenes/headless.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
