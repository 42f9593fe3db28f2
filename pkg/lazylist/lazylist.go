// Package lazylist maps a slice through a function on access.
package lazylist

import "iter"

// List is a read-only view of a source slice where each element is
// transformed by a mapping function every time it is read. Results are not
// cached, and later writes to the source slice are visible.
type List[S, T any] struct {
	source []S
	fn     func(S) T
}

// New returns a List over source.
func New[S, T any](source []S, fn func(S) T) *List[S, T] {
	return &List[S, T]{source: source, fn: fn}
}

// Len returns the length of the source.
func (l *List[S, T]) Len() int {
	return len(l.source)
}

// At maps and returns the element at index i. It panics if i is out of
// range, like a slice index.
func (l *List[S, T]) At(i int) T {
	return l.fn(l.source[i])
}

// All yields each index with its mapped element.
func (l *List[S, T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range l.source {
			if !yield(i, l.fn(l.source[i])) {
				return
			}
		}
	}
}

// Values yields each mapped element.
func (l *List[S, T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, s := range l.source {
			if !yield(l.fn(s)) {
				return
			}
		}
	}
}
