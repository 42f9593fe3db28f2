// Package di provides a hierarchical dependency container.
//
// Values are cached by type and handed to objects that ask for them:
//
//	c := di.New(nil)
//	c.Cache(&Renderer{Quality: 100})
//
//	sprite := &Sprite{}
//	if err := c.Inject(sprite); err != nil { ... }
//
// where Sprite implements Injectable:
//
//	func (s *Sprite) InjectDependencies(c *di.Container) error {
//	    r, err := di.Resolve[*Renderer](c)
//	    s.renderer = r
//	    return err
//	}
//
// A child container created with New(parent) falls back to its parent for
// types it does not cache itself.
package di

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
)

// ErrNotCached is returned when no container in the chain holds a type.
var ErrNotCached = errors.New("di: dependency not cached")

// ErrAlreadyCached is returned when a container already holds a type.
var ErrAlreadyCached = errors.New("di: dependency already cached")

// Injectable is implemented by objects that pull their dependencies from a
// container.
type Injectable interface {
	InjectDependencies(c *Container) error
}

// Container stores values by type.
// It is safe for concurrent use.
type Container struct {
	parent *Container

	mu     sync.RWMutex
	values map[reflect.Type]any
}

// New creates a container. parent may be nil.
func New(parent *Container) *Container {
	return &Container{
		parent: parent,
		values: make(map[reflect.Type]any),
	}
}

// Parent returns the parent container, or nil.
func (c *Container) Parent() *Container {
	return c.parent
}

// Cache stores v under its dynamic type.
func (c *Container) Cache(v any) error {
	if v == nil {
		return gkerrors.New("E012").WithDetail("cannot cache a nil value")
	}
	return c.cache(reflect.TypeOf(v), v)
}

// CacheAs stores v under the static type T, so it can be resolved as an
// interface type.
func CacheAs[T any](c *Container, v T) error {
	return c.cache(reflect.TypeFor[T](), v)
}

func (c *Container) cache(t reflect.Type, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[t]; exists {
		return gkerrors.New("E011").
			WithDetailf("%s is already cached in this container", t).
			WithSuggestion("Cache it in a child container to shadow it").
			Wrap(ErrAlreadyCached)
	}
	c.values[t] = v
	return nil
}

func (c *Container) lookup(t reflect.Type) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.values[t]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve returns the value cached for T in c or its nearest ancestor.
func Resolve[T any](c *Container) (T, error) {
	t := reflect.TypeFor[T]()
	v, ok := c.lookup(t)
	if !ok {
		var zero T
		return zero, notCached(t)
	}
	out, _ := v.(T)
	return out, nil
}

// MustResolve is like Resolve but panics if T is not cached.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether T can be resolved from c.
func Has[T any](c *Container) bool {
	_, ok := c.lookup(reflect.TypeFor[T]())
	return ok
}

// Inject calls InjectDependencies on each target in order and stops at
// the first failure.
func (c *Container) Inject(targets ...Injectable) error {
	for _, target := range targets {
		if err := target.InjectDependencies(c); err != nil {
			return gkerrors.New("E012").
				WithDetailf("injecting %T", target).
				Wrap(err)
		}
	}
	return nil
}

// Fill returns a new R with every exported field set to the value cached
// for the field's type.
//
// Example:
//
//	type playerDeps struct {
//	    Renderer *Renderer
//	    Audio    *AudioPlayer
//	}
//
//	deps, err := di.Fill[playerDeps](c)
func Fill[R any](c *Container) (*R, error) {
	out := new(R)
	v := reflect.ValueOf(out).Elem()
	if v.Kind() != reflect.Struct {
		return nil, gkerrors.New("E012").
			WithDetailf("%s is not a struct", v.Type())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		dep, ok := c.lookup(field.Type)
		if !ok {
			return nil, notCached(field.Type)
		}
		if dep != nil {
			v.Field(i).Set(reflect.ValueOf(dep))
		}
	}
	return out, nil
}

func notCached(t reflect.Type) error {
	return gkerrors.New("E010").
		WithDetailf("no container in the chain holds %s", t).
		WithSuggestion(fmt.Sprintf("Cache a %s before injecting", t)).
		Wrap(ErrNotCached)
}
