// Package errors provides structured, actionable error messages for gamekit.
//
// Every error carries a stable code (e.g., "E001") that maps to a
// registered template with a category, a short message and a longer
// explanation. Call sites add detail, a fix suggestion and the underlying
// cause with chained builders:
//
//	err := errors.New("E030").
//	    WithDetail("settings file game.yaml does not exist").
//	    WithSuggestion("Call Save before Load").
//	    Wrap(storage.ErrNotFound)
//
// Coded errors support errors.Is against both the wrapped sentinel and
// another coded error with the same code:
//
//	if errors.Is(err, storage.ErrNotFound) { ... }
//
// # Error Categories
//
//   - runtime: bindable and dependency container misuse
//   - settings: typed settings access and (de)serialization
//   - storage: backend and path failures
//   - config: gamekit.json problems
//   - cli: command line usage
package errors
