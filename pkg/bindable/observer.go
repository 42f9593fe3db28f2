package bindable

// Field identifies which part of a bindable a propagation changed.
type Field string

const (
	FieldValue    Field = "value"
	FieldDisabled Field = "disabled"
)

// Observer receives instrumentation events from bindables.
// Implementations must be cheap; they run inline with every change.
type Observer interface {
	// Propagated is called once per logical change with the number of
	// bindables updated and the number of listener callbacks fired.
	Propagated(field Field, cells, listeners int)

	// Rejected is called when SetValue fails because the bindable is disabled.
	Rejected()
}
