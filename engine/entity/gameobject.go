package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var (
	ErrDuplicateComponent = errors.New("component of this type already exists")
	ErrComponentOwned     = errors.New("component already attached to a game object")
	ErrNilComponent       = errors.New("component is nil")
)

const DefaultGameObjectName = "GameObject"

// GameObject owns a Transform and at most one component per ComponentType.
type GameObject struct {
	ID        uuid.UUID
	name      string
	transform *math.Transform

	components map[ComponentType]Component
	// attach order, for deterministic update and naming
	order []ComponentType
}

func NewGameObject(name string) *GameObject {
	if name == "" {
		name = DefaultGameObjectName
	}
	return &GameObject{
		ID:         uuid.New(),
		name:       name,
		transform:  math.TransformCreate(),
		components: make(map[ComponentType]Component),
	}
}

func (g *GameObject) Name() string {
	return g.name
}

func (g *GameObject) SetName(name string) {
	g.name = name
}

// Transform returns the object's transform for in-place mutation.
func (g *GameObject) Transform() *math.Transform {
	return g.transform
}

// AddComponent takes ownership of c and stamps its owner back-reference.
// It fails if a component of the same type is already attached, or if c
// already belongs to a GameObject.
func (g *GameObject) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	t := c.Type()
	if _, ok := g.components[t]; ok {
		return fmt.Errorf("add %s to %q: %w", t, g.name, ErrDuplicateComponent)
	}
	if c.Owner() != nil {
		return fmt.Errorf("add %s to %q: %w", t, g.name, ErrComponentOwned)
	}
	c.setOwner(g)
	g.components[t] = c
	g.order = append(g.order, t)
	return nil
}

func (g *GameObject) GetComponent(t ComponentType) (Component, bool) {
	c, ok := g.components[t]
	return c, ok
}

func (g *GameObject) HasComponent(t ComponentType) bool {
	_, ok := g.components[t]
	return ok
}

// ComponentOf looks up a component by tag and asserts its concrete type.
func ComponentOf[T Component](g *GameObject, t ComponentType) (T, bool) {
	var zero T
	c, ok := g.components[t]
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// Components returns the attached components in attach order.
func (g *GameObject) Components() []Component {
	out := make([]Component, 0, len(g.order))
	for _, t := range g.order {
		out = append(out, g.components[t])
	}
	return out
}

// ComponentNames comma-joins the component type names in attach order.
// An object with no components yields "".
func (g *GameObject) ComponentNames() string {
	names := make([]string, 0, len(g.order))
	for _, t := range g.order {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

// Update runs every component's per-frame hook in attach order and stops at the first error.
func (g *GameObject) Update(deltaTime float64) error {
	for _, t := range g.order {
		if err := g.components[t].Update(deltaTime); err != nil {
			return fmt.Errorf("update %s on %q: %w", t, g.name, err)
		}
	}
	return nil
}

func (g *GameObject) String() string {
	return fmt.Sprintf("GameObject: { Name: %s, Components: [%s] }", g.name, g.ComponentNames())
}
