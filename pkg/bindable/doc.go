// Package bindable provides observable value cells that can be linked
// together.
//
// A Bindable wraps a value. When the value changes, registered listeners
// are invoked. A bindable can be disabled to reject value changes, and
// bindables of the same type can be bound to each other so that a change
// to one reaches every cell in its binding graph.
//
// # Basic Use
//
//	health := bindable.New(100)
//	health.AddValueChangedListener(func(v int) {
//	    fmt.Println("health is now", v)
//	})
//	_ = health.SetValue(50)   // prints "health is now 50"
//
//	health.SetDisabled(true)
//	err := health.SetValue(10) // errors.Is(err, bindable.ErrInvalidState)
//
//	health.SetDefault()        // always allowed, prints "health is now 100"
//
// # Binding
//
// BindTo links two cells. The cell doing the binding adopts the other
// cell's value and disabled state and notifies its own listeners once.
// Afterwards a change to either cell reaches both:
//
//	gui := bindable.New(0)
//	gui.BindTo(health)
//	_ = health.SetValue(30) // gui.Value() == 30
//
// Propagation walks the binding graph breadth-first from the changed cell
// and visits each cell once, so cyclic graphs are safe. All cells in the
// graph are updated before any listener runs.
//
// # Thread Safety
//
// Bindables are not thread-safe. A binding graph must only be used from
// one goroutine at a time; callers that share cells across goroutines must
// hold one lock for the whole graph (see package liveview).
package bindable
