package di

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

type renderer struct {
	quality int
}

type audioPlayer struct{}

type sprite struct {
	renderer *renderer
}

func (s *sprite) InjectDependencies(c *Container) error {
	r, err := Resolve[*renderer](c)
	if err != nil {
		return err
	}
	s.renderer = r
	return nil
}

type player struct {
	renderer *renderer
	audio    *audioPlayer
}

func (p *player) InjectDependencies(c *Container) error {
	deps, err := Fill[struct {
		Renderer *renderer
		Audio    *audioPlayer
	}](c)
	if err != nil {
		return err
	}
	p.renderer = deps.Renderer
	p.audio = deps.Audio
	return nil
}

type greeter interface {
	Greet() string
}

type english struct{}

func (english) Greet() string { return "hello" }

func TestCacheResolve(t *testing.T) {
	c := New(nil)
	r := &renderer{quality: 100}
	if err := c.Cache(r); err != nil {
		t.Fatalf("Cache: %v", err)
	}

	got, err := Resolve[*renderer](c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != r {
		t.Error("Resolve should return the cached pointer")
	}
	if !Has[*renderer](c) {
		t.Error("Has should report the cached type")
	}
	if Has[*audioPlayer](c) {
		t.Error("Has should not report uncached types")
	}
}

func TestResolveMissing(t *testing.T) {
	c := New(nil)

	_, err := Resolve[*renderer](c)
	if !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached, got %v", err)
	}
}

func TestCacheDuplicate(t *testing.T) {
	c := New(nil)
	_ = c.Cache(&renderer{})

	if err := c.Cache(&renderer{}); !errors.Is(err, ErrAlreadyCached) {
		t.Errorf("expected ErrAlreadyCached, got %v", err)
	}
}

func TestCacheNil(t *testing.T) {
	if err := New(nil).Cache(nil); err == nil {
		t.Error("expected error caching nil")
	}
}

func TestCacheAsInterface(t *testing.T) {
	c := New(nil)
	if err := CacheAs[greeter](c, english{}); err != nil {
		t.Fatalf("CacheAs: %v", err)
	}

	g, err := Resolve[greeter](c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if g.Greet() != "hello" {
		t.Errorf("Greet = %q", g.Greet())
	}
	if Has[english](c) {
		t.Error("value cached as an interface should not resolve by concrete type")
	}
}

func TestParentChain(t *testing.T) {
	parent := New(nil)
	r := &renderer{quality: 100}
	_ = parent.Cache(r)

	child := New(parent)
	if child.Parent() != parent {
		t.Error("Parent mismatch")
	}

	s := &sprite{}
	if err := child.Inject(s); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if s.renderer != r {
		t.Error("child should fall back to the parent's renderer")
	}

	// A child may shadow its parent.
	shadow := &renderer{quality: 1}
	if err := child.Cache(shadow); err != nil {
		t.Fatalf("shadowing should be allowed: %v", err)
	}
	if got := MustResolve[*renderer](child); got != shadow {
		t.Error("child should prefer its own value")
	}
	if got := MustResolve[*renderer](parent); got != r {
		t.Error("parent should be unaffected")
	}

	// Values cached in the child are not visible to the parent.
	_ = child.Cache(&audioPlayer{})
	if Has[*audioPlayer](parent) {
		t.Error("parent should not see child values")
	}
}

func TestInjectMultipleDependencies(t *testing.T) {
	parent := New(nil)
	_ = parent.Cache(&renderer{quality: 100})
	child := New(parent)
	_ = child.Cache(&audioPlayer{})

	p := &player{}
	if err := child.Inject(p); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if p.renderer == nil || p.audio == nil {
		t.Errorf("player not fully injected: %+v", p)
	}
}

func TestInjectFailure(t *testing.T) {
	c := New(nil)
	s1, s2 := &sprite{}, &sprite{}

	err := c.Inject(s1, s2)
	if !errors.Is(err, ErrNotCached) {
		t.Fatalf("expected ErrNotCached, got %v", err)
	}
	if s1.renderer != nil {
		t.Error("failed injection should leave the target untouched")
	}
}

func TestMustResolvePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustResolve should panic for missing types")
		}
	}()
	MustResolve[*renderer](New(nil))
}

func TestFillRejectsNonStruct(t *testing.T) {
	if _, err := Fill[int](New(nil)); err == nil {
		t.Error("expected error for non-struct")
	}
}

func TestFillSkipsUnexported(t *testing.T) {
	c := New(nil)
	_ = c.Cache(&renderer{})

	deps, err := Fill[struct {
		Renderer *renderer
		audio    *audioPlayer
	}](c)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if deps.Renderer == nil {
		t.Error("exported field should be filled")
	}
}

func TestConcurrentResolve(t *testing.T) {
	c := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := New(c)
			_ = CacheAs[fmt.Stringer](child, nil)
			_, _ = Resolve[*renderer](child)
		}()
	}
	_ = c.Cache(&renderer{})
	wg.Wait()

	if !Has[*renderer](c) {
		t.Error("renderer should be cached")
	}
}
