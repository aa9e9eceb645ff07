/*
Isometric cubes: a mouse-look camera flying through a field of cubes
described by a TOML scene file.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/isocubes/engine"
	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/platform"
	"github.com/spaghettifunk/isocubes/engine/platform/desktop"
	"github.com/spaghettifunk/isocubes/testbed"
)

func main() {
	scenePath := flag.String("scene", "assets/scenes/default.toml", "scene file to load")
	flag.Parse()

	if err := run(*scenePath); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}

func run(scenePath string) error {
	scene, err := assets.LoadSceneFile(scenePath)
	if err != nil {
		return err
	}

	tb, err := testbed.NewCubeGame(scene, scenePath)
	if err != nil {
		return err
	}

	var p platform.Platform
	if scene.Application.Headless {
		p = platform.NewHeadlessPlatform(platform.HeadlessConfig{
			Frames:   scene.Application.Frames,
			Snapshot: scene.Application.Snapshot,
			Script:   platform.ScriptFromScene(scene.Script),
		})
	} else {
		p = desktop.New(scene.Application.Snapshot)
	}

	e, err := engine.New(tb.Game, p)
	if err != nil {
		return err
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	go func() {
		if _, ok := <-sigCh; ok {
			core.LogInfo("Signal received, quitting.")
			e.RequestQuit()
		}
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
