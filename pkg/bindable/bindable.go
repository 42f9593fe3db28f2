package bindable

import "fmt"

// Bindable is an observable value cell.
//
// The zero value is not usable; create bindables with New.
type Bindable[T any] struct {
	value        T
	defaultValue T
	disabled     bool

	// valueGen and disabledGen count assignments to value and disabled. A
	// notification pass stops at a cell once a newer assignment has
	// reached it.
	valueGen    uint64
	disabledGen uint64

	valueChanged    listenerList[T]
	disabledChanged listenerList[bool]

	// bindings are the partners this cell is linked to, in the order the
	// links were made. Links are non-owning and always mirrored on the
	// partner.
	bindings []*Bindable[T]

	// equal decides whether SetValue is a change. If nil, defaultEquals is used.
	equal func(T, T) bool

	observer Observer
}

// New creates an enabled bindable whose value and default are defaultValue.
func New[T any](defaultValue T) *Bindable[T] {
	return &Bindable[T]{
		value:        defaultValue,
		defaultValue: defaultValue,
	}
}

// WithEquals returns the bindable configured with a custom equality function.
func (b *Bindable[T]) WithEquals(fn func(T, T) bool) *Bindable[T] {
	b.equal = fn
	return b
}

// WithObserver returns the bindable configured to report changes to o.
func (b *Bindable[T]) WithObserver(o Observer) *Bindable[T] {
	b.observer = o
	return b
}

// Value returns the current value.
func (b *Bindable[T]) Value() T {
	return b.value
}

// SetValue changes the value and propagates it to every bound bindable.
// It fails with ErrInvalidState if the bindable is disabled. Setting a value
// equal to the current one does nothing.
func (b *Bindable[T]) SetValue(v T) error {
	if b.disabled {
		if b.observer != nil {
			b.observer.Rejected()
		}
		return disabledError(v)
	}
	b.propagateValue(v)
	return nil
}

// Default returns the value restored by SetDefault.
func (b *Bindable[T]) Default() T {
	return b.defaultValue
}

// SetDefaultValue changes the value restored by SetDefault.
// It does not change the current value.
func (b *Bindable[T]) SetDefaultValue(v T) {
	b.defaultValue = v
}

// IsDefault reports whether the current value equals the default.
func (b *Bindable[T]) IsDefault() bool {
	return b.equals(b.value, b.defaultValue)
}

// SetDefault restores the default value. Unlike SetValue it ignores the
// disabled state.
func (b *Bindable[T]) SetDefault() {
	b.propagateValue(b.defaultValue)
}

// Disabled reports whether value changes are rejected.
func (b *Bindable[T]) Disabled() bool {
	return b.disabled
}

// SetDisabled changes the disabled state of this bindable and every bound
// bindable. Disabled listeners fire even if the state did not change.
func (b *Bindable[T]) SetDisabled(disabled bool) {
	b.propagateDisabled(disabled, nil)
}

// TriggerChange fires the value listeners and then the disabled listeners
// of this bindable with its current state. Nothing is propagated.
func (b *Bindable[T]) TriggerChange() {
	b.valueChanged.fire(b.value)
	b.disabledChanged.fire(b.disabled)
}

// BindTo links b and other so that later changes to either reach both.
// b adopts the value and disabled state of other and fires its own
// listeners once for each; the listeners of other do not fire.
func (b *Bindable[T]) BindTo(other *Bindable[T]) {
	if other == nil || other == b {
		return
	}

	if b.equals(b.value, other.value) {
		b.valueChanged.fire(b.value)
	} else {
		b.assignValue(other.value, other)
	}
	if b.disabled == other.disabled {
		b.disabledChanged.fire(b.disabled)
	} else {
		b.propagateDisabled(other.disabled, other)
	}

	if !b.isBoundTo(other) {
		b.bindings = append(b.bindings, other)
		other.bindings = append(other.bindings, b)
	}
}

// GetBoundCopy returns a new bindable with the same default that is bound
// to b.
func (b *Bindable[T]) GetBoundCopy() *Bindable[T] {
	c := New(b.defaultValue)
	c.equal = b.equal
	c.observer = b.observer
	c.BindTo(b)
	return c
}

// Bindings returns the number of bindables directly bound to b.
func (b *Bindable[T]) Bindings() int {
	return len(b.bindings)
}

// IsBoundTo reports whether other is directly bound to b.
func (b *Bindable[T]) IsBoundTo(other *Bindable[T]) bool {
	return b.isBoundTo(other)
}

// AddValueChangedListener registers fn to be called with the new value
// after every change.
func (b *Bindable[T]) AddValueChangedListener(fn func(T)) ListenerID {
	return b.valueChanged.add(fn)
}

// RemoveValueChangedListener removes a value listener. Unknown ids are ignored.
func (b *Bindable[T]) RemoveValueChangedListener(id ListenerID) {
	b.valueChanged.remove(id)
}

// AddDisabledChangedListener registers fn to be called with the disabled
// state after every SetDisabled that reaches b.
func (b *Bindable[T]) AddDisabledChangedListener(fn func(bool)) ListenerID {
	return b.disabledChanged.add(fn)
}

// RemoveDisabledChangedListener removes a disabled listener. Unknown ids are ignored.
func (b *Bindable[T]) RemoveDisabledChangedListener(id ListenerID) {
	b.disabledChanged.remove(id)
}

// Listeners returns the number of registered value and disabled listeners.
func (b *Bindable[T]) Listeners() int {
	return b.valueChanged.len() + b.disabledChanged.len()
}

// UnbindEvents removes every listener. Bindings are kept.
func (b *Bindable[T]) UnbindEvents() {
	b.valueChanged.clear()
	b.disabledChanged.clear()
}

// UnbindBindings removes every binding of b, on both sides. Listeners are kept.
func (b *Bindable[T]) UnbindBindings() {
	for _, partner := range b.bindings {
		partner.removeBinding(b)
	}
	b.bindings = nil
}

// UnbindFrom removes the binding between b and other, if any.
func (b *Bindable[T]) UnbindFrom(other *Bindable[T]) {
	if other == nil {
		return
	}
	b.removeBinding(other)
	other.removeBinding(b)
}

// UnbindAll removes every listener and every binding.
func (b *Bindable[T]) UnbindAll() {
	b.UnbindEvents()
	b.UnbindBindings()
}

// String returns the value formatted with the default format.
func (b *Bindable[T]) String() string {
	return fmt.Sprint(b.value)
}

func (b *Bindable[T]) equals(x, y T) bool {
	if b.equal != nil {
		return b.equal(x, y)
	}
	return defaultEquals(x, y)
}

func (b *Bindable[T]) isBoundTo(other *Bindable[T]) bool {
	for _, partner := range b.bindings {
		if partner == other {
			return true
		}
	}
	return false
}

func (b *Bindable[T]) removeBinding(other *Bindable[T]) {
	for i, partner := range b.bindings {
		if partner == other {
			b.bindings = append(b.bindings[:i:i], b.bindings[i+1:]...)
			return
		}
	}
}
