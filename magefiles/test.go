//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test. The desktop platform needs cgo and a display
// server to build, so it is vetted but not tested.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./engine/...", "./testbed/..."), withStream()); err != nil {
		return err
	}
	return nil
}
