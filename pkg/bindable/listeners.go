package bindable

import "sync/atomic"

// ListenerID identifies a registered listener so it can be removed later.
type ListenerID uint64

var listenerIDCounter uint64

func nextListenerID() ListenerID {
	return ListenerID(atomic.AddUint64(&listenerIDCounter, 1))
}

type listener[A any] struct {
	id ListenerID
	fn func(A)
}

// listenerList is an ordered list of callbacks.
type listenerList[A any] struct {
	items []listener[A]
}

func (l *listenerList[A]) add(fn func(A)) ListenerID {
	id := nextListenerID()
	l.items = append(l.items, listener[A]{id: id, fn: fn})
	return id
}

func (l *listenerList[A]) remove(id ListenerID) {
	for i, item := range l.items {
		if item.id == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return
		}
	}
}

func (l *listenerList[A]) clear() {
	l.items = nil
}

func (l *listenerList[A]) len() int {
	return len(l.items)
}

// fire invokes every listener registered when fire was called.
// Listeners added or removed by a callback take effect on the next fire.
func (l *listenerList[A]) fire(arg A) int {
	return l.fireWhile(arg, nil)
}

// fireWhile is fire, stopping early once current reports false. A nil
// current never stops.
func (l *listenerList[A]) fireWhile(arg A, current func() bool) int {
	if len(l.items) == 0 {
		return 0
	}
	snapshot := make([]listener[A], len(l.items))
	copy(snapshot, l.items)
	fired := 0
	for _, item := range snapshot {
		if current != nil && !current() {
			break
		}
		item.fn(arg)
		fired++
	}
	return fired
}
