// Package settings stores typed game settings in a Storage file.
//
// Every setting lives in a bindable.Bindable, so callers can bind their own
// cells to it and see changes both ways:
//
//	type Key int
//
//	const (
//	    Deaths Key = iota
//	    Volume
//	)
//
//	func (k Key) String() string { ... }
//
//	m, _ := settings.New[Key](store)
//	settings.Set(m, Deaths, 3041)
//
//	counter := bindable.New(0)
//	settings.BindWith(m, Deaths, counter)
//	counter.SetValue(9001)
//
//	m.Save(ctx) // writes game.yaml
//
// The file format follows the file extension: .yaml/.yml, .toml or .json.
// Keys present in the file but not yet registered are kept and applied
// when the setting is first Set.
//
// A Manager is not safe for concurrent use.
package settings
