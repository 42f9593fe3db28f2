// Package examples holds narrated walkthroughs of the gamekit packages.
//
// Each example prints what it does to Env.Out as it goes, so running one
// is a guided tour of the package it covers.
package examples

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gamekit-dev/gamekit/internal/errors"
	"github.com/gamekit-dev/gamekit/pkg/bindable"
	"github.com/gamekit-dev/gamekit/pkg/storage"
)

const (
	separatorLine = "=========================================================="
	waitLine      = "==== [ Press enter to continue executing the code ] ===="
	continueLine  = "============= [ Continuing Execution ... ] =============="
)

// Env is what an example runs against.
type Env struct {
	// Out receives the narration.
	Out io.Writer

	// Storage is where examples that persist data create their folders.
	// Each example works in its own sub directory and removes it when done.
	Storage storage.Storage

	// Keep leaves example folders in Storage for inspection.
	Keep bool

	// Pause, if set, is called wherever the narration invites the reader
	// to go and look at something.
	Pause func()

	// Observer, if set, is attached to the bindables the examples create.
	Observer bindable.Observer
}

// Example is one narrated walkthrough.
type Example struct {
	Name    string
	Summary string
	Run     func(ctx context.Context, env *Env) error
}

var registry = []Example{
	{
		Name:    "bindable",
		Summary: "Observable values, listeners, and two-way bindings",
		Run:     runBindable,
	},
	{
		Name:    "config-manager",
		Summary: "Typed settings saved to a file and bound to bindables",
		Run:     runConfigManager,
	},
	{
		Name:    "storage",
		Summary: "Reading, writing, and nesting game data folders",
		Run:     runStorage,
	},
	{
		Name:    "lazy-list",
		Summary: "Mapping a slice on every access",
		Run:     runLazyList,
	},
	{
		Name:    "dependency-injection",
		Summary: "Caching objects and handing them to whoever needs them",
		Run:     runDependencyInjection,
	},
}

// All returns every example in presentation order.
func All() []Example {
	return append([]Example(nil), registry...)
}

// Names returns the example names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the example with the given name.
func Lookup(name string) (Example, error) {
	for _, e := range registry {
		if e.Name == name {
			return e, nil
		}
	}
	return Example{}, errors.New("E150").
		WithDetailf("%q is not an example", name).
		WithSuggestion("Available examples: " + strings.Join(Names(), ", "))
}

func (env *Env) println(a ...any) {
	fmt.Fprintln(env.Out, a...)
}

func (env *Env) printf(format string, a ...any) {
	fmt.Fprintf(env.Out, format, a...)
}

func (env *Env) separator() {
	env.println(separatorLine)
}

func (env *Env) wait() {
	if env.Pause == nil {
		return
	}
	env.println(waitLine)
	env.Pause()
	env.println(continueLine)
}

// workspace returns the example's folder inside env.Storage and a function
// that removes it.
func (env *Env) workspace(name string) (storage.Storage, func(ctx context.Context) error, error) {
	if env.Storage == nil {
		return nil, nil, errors.New("E031").WithDetail("no storage configured for examples")
	}
	dir, err := env.Storage.Sub(name)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func(ctx context.Context) error {
		if env.Keep {
			return nil
		}
		return env.Storage.DeleteDirectory(ctx, name)
	}
	return dir, cleanup, nil
}

func (env *Env) observe(b *bindable.Bindable[int]) *bindable.Bindable[int] {
	if env.Observer != nil {
		b.WithObserver(env.Observer)
	}
	return b
}
