package entity

import (
	"fmt"
	"sync"
)

// ComponentType is a stable tag identifying a concrete component kind.
// A GameObject holds at most one component per tag.
type ComponentType uint16

const InvalidComponentType ComponentType = 0

var (
	registryMutex  sync.Mutex
	componentNames = []string{"<invalid>"}
	componentTypes = map[string]ComponentType{}
)

// RegisterComponentType returns the tag for name, allocating one on first use.
// Registering the same name twice yields the same tag.
func RegisterComponentType(name string) ComponentType {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if t, ok := componentTypes[name]; ok {
		return t
	}
	t := ComponentType(len(componentNames))
	componentNames = append(componentNames, name)
	componentTypes[name] = t
	return t
}

func (t ComponentType) String() string {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if int(t) < len(componentNames) {
		return componentNames[t]
	}
	return fmt.Sprintf("ComponentType(%d)", uint16(t))
}

// Component is an attachable unit of behaviour or data. Implementations
// embed BaseComponent to get the owner back-reference.
type Component interface {
	Type() ComponentType
	Owner() *GameObject
	// Update is the per-frame hook. Components with nothing to do return nil.
	Update(deltaTime float64) error

	setOwner(owner *GameObject)
}

// BaseComponent holds the non-owning back-reference to the GameObject the
// component is attached to. It is stamped once by AddComponent.
type BaseComponent struct {
	owner *GameObject
}

func (b *BaseComponent) Owner() *GameObject {
	return b.owner
}

func (b *BaseComponent) setOwner(owner *GameObject) {
	b.owner = owner
}

func (b *BaseComponent) Update(deltaTime float64) error {
	return nil
}
