package bindable

// closure returns b followed by every bindable reachable from it, in
// breadth-first order. Each bindable appears once. If skip is non-nil it is
// treated as already visited, which also hides everything only reachable
// through it.
func (b *Bindable[T]) closure(skip *Bindable[T]) []*Bindable[T] {
	visited := map[*Bindable[T]]struct{}{b: {}}
	if skip != nil {
		visited[skip] = struct{}{}
	}

	order := []*Bindable[T]{b}
	for i := 0; i < len(order); i++ {
		for _, partner := range order[i].bindings {
			if _, seen := visited[partner]; seen {
				continue
			}
			visited[partner] = struct{}{}
			order = append(order, partner)
		}
	}
	return order
}

func (b *Bindable[T]) propagateValue(v T) {
	if b.equals(b.value, v) {
		return
	}
	b.assignValue(v, nil)
}

// assignValue writes v to the whole closure before any listener runs, then
// notifies each bindable in visit order. A listener that changes the graph
// again supersedes this pass: cells the newer change reached are not
// notified of v afterwards.
func (b *Bindable[T]) assignValue(v T, skip *Bindable[T]) {
	cells := b.closure(skip)
	gens := make([]uint64, len(cells))
	for i, c := range cells {
		c.value = v
		c.valueGen++
		gens[i] = c.valueGen
	}

	fired := 0
	for i, c := range cells {
		gen := gens[i]
		fired += c.valueChanged.fireWhile(v, func() bool { return c.valueGen == gen })
	}
	if b.observer != nil {
		b.observer.Propagated(FieldValue, len(cells), fired)
	}
}

func (b *Bindable[T]) propagateDisabled(disabled bool, skip *Bindable[T]) {
	cells := b.closure(skip)
	gens := make([]uint64, len(cells))
	for i, c := range cells {
		c.disabled = disabled
		c.disabledGen++
		gens[i] = c.disabledGen
	}

	fired := 0
	for i, c := range cells {
		gen := gens[i]
		fired += c.disabledChanged.fireWhile(disabled, func() bool { return c.disabledGen == gen })
	}
	if b.observer != nil {
		b.observer.Propagated(FieldDisabled, len(cells), fired)
	}
}
